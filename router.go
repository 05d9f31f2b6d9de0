package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/portcullis-hq/portcullis-backend/api"
	"github.com/portcullis-hq/portcullis-backend/utils"
)

func corsOption(env string) cors.Config {
	allowedOrigins := []string{"*"}
	if env == "DEV" {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://localhost:5173")
	}

	return cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Token-Issuer"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func initRouter(ctx context.Context, conf appConfiguration, handlers *api.API, authentication utils.Authentication) *gin.Engine {
	if conf.env != "DEV" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsOption(conf.env)))
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(utils.StoreLoggerInContext(c.Request.Context(), logger))
		c.Next()
	})

	r.GET("/liveness", func(c *gin.Context) { c.Status(http.StatusOK) })
	handlers.PublicRoutes(r)

	authed := r.Use(authentication.Middleware())
	handlers.Routes(authed)

	return r
}
