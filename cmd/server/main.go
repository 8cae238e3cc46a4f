// Package main implements the entry point for the stride-risk server,
// which ingests daily running samples and serves injury-risk assessments.
package main

import (
	"context"
	"fmt"
	"log"
)

// main is the entry point for the stride-risk server.
// It loads configuration, sets up logging and metrics, wires the assessment
// service and starts the HTTP server.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run performs the startup sequence and blocks until the server stops.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	appLogger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
