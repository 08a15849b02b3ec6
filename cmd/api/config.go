package main

import (
	"log/slog"

	"github.com/jihyekwon/scrapbook/internal/storage/factory"
	"github.com/jihyekwon/scrapbook/pkg/config/env"
)

type AppConfig struct {
	StoreConfig *factory.StoreConfig
}

func LoadAppConfig() (*AppConfig, error) {
	if err := env.LoadDotEnv("cmd/api/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	storeCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	return &AppConfig{StoreConfig: storeCfg}, nil
}
