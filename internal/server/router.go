package server

import (
	"context"
	"net/http"
	"time"

	"catalog-assistant/internal/common/auth"
	"catalog-assistant/internal/common/config"
	"catalog-assistant/internal/common/database"
	"catalog-assistant/internal/common/logger"
	"catalog-assistant/internal/resolver"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Config   *config.Config
	Resolver *resolver.Resolver
	Sessions *auth.SessionStore
	Postgres *database.PostgresClient
	Redis    *database.RedisClient
	Logger   logger.Logger
}

// NewRouter builds the gin engine with the order-intent endpoint, health
// check, and Prometheus metrics.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())

	router.GET("/health", healthHandler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessionMW := NewSessionMiddleware(deps.Sessions, deps.Logger)
	intentHandler := NewOrderIntentHandler(deps.Resolver, deps.Logger)

	api := router.Group("/api")
	api.Use(sessionMW.RequireSession())
	{
		api.POST("/order-intent", intentHandler.Resolve)
	}

	return router
}

func healthHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"postgres": "ok", "redis": "ok"}
		healthy := true

		if err := deps.Postgres.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		}
		if err := deps.Redis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		status := http.StatusOK
		state := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":  state,
			"service": deps.Config.App.Name,
			"version": deps.Config.App.Version,
			"checks":  checks,
		})
	}
}
