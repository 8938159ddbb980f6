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

type ContentApiConfig struct {
	StorageConfig factory.StorageConfig
}

func (as *AppConfig) Load() (*ContentApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/content_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &ContentApiConfig{
		StorageConfig: *storageCfg,
	}, nil
}
