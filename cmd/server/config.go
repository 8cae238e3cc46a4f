package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/stride-risk/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"window_size", cfg.Assessment.WindowSize,
		"retention_days", cfg.Assessment.RetentionDays)

	if cfg.Metrics.Enabled {
		slog.Debug("Metrics configuration",
			"otlp_endpoint", cfg.Metrics.OTLPEndpoint,
			"service_name", cfg.Metrics.ServiceName)
	}

	return cfg, nil
}
