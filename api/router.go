package api

import (
	"net/http"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/config"
)

// NewRouter builds the HTTP engine. Debug routes exist only outside production.
func NewRouter(cfg *config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecoveryWithWriter(nil, h.recovered))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true, Timeout: 2 * time.Second}))
	}
	r.Use(h.requestLog, SecurityHeaders(), cors.New(corsConfig(cfg.App.AllowedOrigins)))

	r.GET("/health", h.Health)

	api := r.Group(cfg.App.APIPrefix, h.withOwner)
	h.registerRoutes(api)
	if !cfg.App.IsProduction() {
		h.registerDebugRoutes(api)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"version":     h.app.Version,
		"environment": h.app.Environment,
	})
}
