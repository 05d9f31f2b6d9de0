package utils

import (
	"context"
	"log/slog"

	"github.com/portcullis-hq/portcullis-backend/models"
)

type ContextKey int

const (
	ContextKeyProfile ContextKey = iota
	ContextKeyLogger
)

func StoreProfileInContext(ctx context.Context, profile models.Profile) context.Context {
	return context.WithValue(ctx, ContextKeyProfile, profile)
}

func ProfileFromContext(ctx context.Context) (models.Profile, bool) {
	profile, ok := ctx.Value(ContextKeyProfile).(models.Profile)
	return profile, ok
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
