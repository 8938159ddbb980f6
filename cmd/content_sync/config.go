package main

import (
	"log/slog"
	"os"

	"github.com/mvasilj/content-scout/internal/storage/factory"
	"github.com/mvasilj/content-scout/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type ContentSyncConfig struct {
	StorageConfig factory.StorageConfig
	// SourcesFile optionally names a YAML file to load sources from instead
	// of the store. The --sources flag overrides it.
	SourcesFile string
}

func (as *AppConfig) Load() (*ContentSyncConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/content_sync/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &ContentSyncConfig{
		StorageConfig: *storageCfg,
		SourcesFile:   os.Getenv("SOURCES_FILE"),
	}, nil
}
