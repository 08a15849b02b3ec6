// Package main Scrapbook API
// @title Scrapbook API
// @version 1.0
// @description A personal content-collection API: posts under fixed categories with multi-term search
// @BasePath /
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	_ "github.com/jihyekwon/scrapbook/docs"
	"github.com/jihyekwon/scrapbook/internal/router"
	"github.com/jihyekwon/scrapbook/internal/server"
	"github.com/jihyekwon/scrapbook/internal/storage/factory"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health", server.NewOkHealthChecker()).
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Scrapbook API is running")
	})

	cfg, err := LoadAppConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	store, err := factory.NewStore(s.Context(), cfg.StoreConfig)
	if err != nil {
		slog.Error("Failed to create post store", "error", err)
		os.Exit(1)
	}

	router.NewPostRouter(s.Echo, store).Bind()
	router.NewSearchRouter(s.Echo, store).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
