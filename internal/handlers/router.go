// SPDX-License-Identifier: MIT
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thatcatcamp/palettekitty/internal/catalog"
	"github.com/thatcatcamp/palettekitty/internal/logging"
	"github.com/thatcatcamp/palettekitty/internal/middleware"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

// RouterConfig wires the API to its collaborators
type RouterConfig struct {
	Repo      *catalog.Repository
	Generator themes.Generator
	Logger    *slog.Logger
	Limiter   *middleware.RateLimiter // guards import and clear; nil disables
	HSTS      bool
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Generator == nil {
		cfg.Generator = themes.Harmony{}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.HSTS))
	r.Use(metricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := func(c *gin.Context) { c.Next() }
	if cfg.Limiter != nil {
		limited = middleware.RateLimit(cfg.Limiter, countRateLimited)
	}

	repo := cfg.Repo
	api := r.Group("/api")
	{
		api.GET("/palettes", ListPalettesHandler(repo))
		api.POST("/palettes", CreatePaletteHandler(repo))
		api.DELETE("/palettes", limited, ClearHandler(repo))
		api.GET("/palettes/:id", GetPaletteHandler(repo))
		api.PATCH("/palettes/:id", UpdatePaletteHandler(repo))
		api.DELETE("/palettes/:id", DeletePaletteHandler(repo))
		api.POST("/palettes/:id/duplicate", DuplicatePaletteHandler(repo))
		api.GET("/palettes/:id/css", PaletteCSSHandler(repo))
		api.GET("/export", ExportHandler(repo))
		api.POST("/import", limited, ImportHandler(repo))
		api.GET("/stats", StatsHandler(repo))
		api.POST("/generate", GenerateHandler(repo, cfg.Generator))
	}

	return r
}
