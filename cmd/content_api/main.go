// Package main Content Scout API
// @title Content Scout API
// @version 1.0
// @description Federated content discovery and search over editorial pages and external sources
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	_ "github.com/mvasilj/content-scout/docs"
	"github.com/mvasilj/content-scout/internal/fetch"
	"github.com/mvasilj/content-scout/internal/ingest"
	"github.com/mvasilj/content-scout/internal/router"
	"github.com/mvasilj/content-scout/internal/search"
	"github.com/mvasilj/content-scout/internal/server"
	"github.com/mvasilj/content-scout/internal/storage/factory"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
		return
	}

	backends, err := factory.NewBackends(context.Background(), &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backends", "error", err)
		os.Exit(1)
		return
	}

	s := server.New(sCfg, backends.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Content Scout API is running")
	})

	engine := search.NewEngine(backends.Store, backends.Store, search.Config{})
	if backends.Mirror != nil {
		engine.UseMirror(backends.Mirror)
		slog.Info("Elasticsearch item mirror enabled")
	}

	syncer := ingest.NewSyncer(fetch.New(), backends.ItemSink(), fetch.DefaultTimeout)

	router.NewSearchRouter(s.Echo, engine).Bind()
	router.NewSyncRouter(s.Echo, backends.Store, syncer).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
		backends.Close()
	}()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
