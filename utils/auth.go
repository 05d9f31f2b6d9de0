package utils

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/usecases/auth"
)

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return "", errors.New("malformed authorization header")
	}
	return strings.TrimSpace(token), nil
}

type validator interface {
	ValidateCredential(ctx context.Context, credential models.Credential) (models.Profile, error)
}

type Authentication struct {
	Validator validator
}

// Middleware authenticates the bearer credential and stores the resulting
// profile in the request context. Policy decisions happen later, once the
// target organization is known.
func (a *Authentication) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := ParseAuthorizationBearerHeader(c.Request.Header)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		profile, err := a.Validator.ValidateCredential(ctx, models.Credential{
			Value:  token,
			Issuer: c.Request.Header.Get("X-Token-Issuer"),
		})
		if err != nil {
			// log the claimed issuer of the rejected credential without
			// trusting it; PeekClaims never verifies anything
			claims, _ := auth.PeekClaims(token)
			LoggerFromContext(ctx).DebugContext(ctx, "credential rejected",
				"error", err.Error(), "claimed_issuer", claims["iss"])
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Request = c.Request.WithContext(StoreProfileInContext(ctx, profile))
		c.Next()
	}
}
