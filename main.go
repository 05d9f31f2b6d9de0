package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portcullis-hq/portcullis-backend/api"
	"github.com/portcullis-hq/portcullis-backend/repositories"
	"github.com/portcullis-hq/portcullis-backend/repositories/idp"
	"github.com/portcullis-hq/portcullis-backend/usecases"
	"github.com/portcullis-hq/portcullis-backend/usecases/auth"
	"github.com/portcullis-hq/portcullis-backend/utils"
)

type appConfiguration struct {
	env       string
	port      string
	pgUrl     string
	apiKeyTtl time.Duration
}

func loadConfiguration() appConfiguration {
	return appConfiguration{
		env:       utils.GetStringEnv("ENV", "DEV"),
		port:      utils.GetStringEnv("PORT", "8080"),
		pgUrl:     utils.GetStringEnv("PG_URL", ""),
		apiKeyTtl: utils.GetDurationEnv("API_KEY_TTL", 365*24*time.Hour),
	}
}

func newOrganizationRepository(ctx context.Context, conf appConfiguration) (repositories.OrganizationRepository, error) {
	if conf.pgUrl == "" {
		return repositories.NewOrganizationRepositoryInMemory(), nil
	}
	pool, err := pgxpool.New(ctx, conf.pgUrl)
	if err != nil {
		return nil, err
	}
	return repositories.NewOrganizationRepositoryPostgresql(pool), nil
}

func main() {
	conf := loadConfiguration()
	logger := utils.NewLogger(conf.env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = utils.StoreLoggerInContext(ctx, logger)

	organizationRepository, err := newOrganizationRepository(ctx, conf)
	if err != nil {
		logger.ErrorContext(ctx, "could not initialize the organization repository", "error", err.Error())
		return
	}

	keyStore := repositories.NewInMemoryKeyStore()
	resolver := idp.NewPublicKeyResolver(
		idp.NewHttpKeySetProvider(&http.Client{Timeout: 10 * time.Second}),
		keyStore,
	)

	uc := usecases.Usecases{
		OrganizationRepository: organizationRepository,
		KeyStore:               keyStore,
		CredentialIssuer:       repositories.NewCredentialIssuer(keyStore, conf.apiKeyTtl),
		TokenVerifier:          auth.NewTokenVerifier(resolver),
	}

	authentication := utils.Authentication{Validator: uc.NewTokenUseCase()}
	router := initRouter(ctx, conf, api.New(uc), authentication)

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%s", conf.port),
		Handler: router,
	}

	go func() {
		logger.InfoContext(ctx, "starting server", "port", conf.port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorContext(ctx, "server stopped", "error", err.Error())
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "server shutdown failed", "error", err.Error())
	}
}
