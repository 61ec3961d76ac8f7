package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// config is read from DATAVIEW_* environment variables at startup.
type config struct {
	Addr         string `env:"DATAVIEW_ADDR"          envDefault:":9876"`
	EventsAddr   string `env:"DATAVIEW_EVENTS_ADDR"`
	BasePath     string `env:"DATAVIEW_BASE_PATH"     envDefault:"/admin"`
	DBPath       string `env:"DATAVIEW_DB_PATH"`
	Manifest     string `env:"DATAVIEW_MANIFEST"`
	PageSize     int    `env:"DATAVIEW_PAGE_SIZE"     envDefault:"10"`
	AnalyticsURL string `env:"DATAVIEW_ANALYTICS_URL"`
	AnalyticsKey string `env:"DATAVIEW_ANALYTICS_KEY"`
	OTelEnabled  bool   `env:"DATAVIEW_OTEL_ENABLED"  envDefault:"true"`
	OTelEndpoint string `env:"DATAVIEW_OTEL_ENDPOINT"`
	SeedDemo     bool   `env:"DATAVIEW_SEED_DEMO"     envDefault:"true"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PageSize <= 0 {
		return config{}, fmt.Errorf("DATAVIEW_PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	return cfg, nil
}
