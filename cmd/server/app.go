package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/stride-risk/internal/config"
	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/phrazzld/stride-risk/internal/domain/risk"
	"github.com/phrazzld/stride-risk/internal/events"
	"github.com/phrazzld/stride-risk/internal/platform/memory"
	"github.com/phrazzld/stride-risk/internal/platform/telemetry"
	"github.com/phrazzld/stride-risk/internal/service/assessment"
	"github.com/phrazzld/stride-risk/internal/store"
)

// HighRiskAlertHandler is an event handler that surfaces high-risk assessments
// in the logs so the presentation layer can pick them up.
type HighRiskAlertHandler struct {
	logger *slog.Logger
}

// NewHighRiskAlertHandler creates a handler that logs high-risk assessments.
func NewHighRiskAlertHandler(logger *slog.Logger) *HighRiskAlertHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HighRiskAlertHandler{
		logger: logger.With("component", "high_risk_alert_handler"),
	}
}

// HandleEvent inspects assessment.completed events and logs the high-risk ones.
func (h *HighRiskAlertHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeAssessmentCompleted {
		return nil
	}

	var payload events.AssessmentCompletedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.OverallRisk != domain.TierHigh {
		return nil
	}

	h.logger.WarnContext(ctx, "high injury risk detected",
		"event_id", event.ID,
		"user_id", payload.UserID,
		"risk_score", payload.RiskScore,
		"high_factors", payload.HighFactors,
		"matched_patterns", payload.MatchedPatterns)
	return nil
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	catalog     *risk.Catalog
	engine      risk.Engine
	sampleStore store.SampleStore

	assessmentService assessment.Service

	eventEmitter events.EventEmitter

	shutdownMetrics telemetry.ShutdownFunc
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.shutdownMetrics, err = telemetry.Setup(ctx, cfg.Metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	app.catalog, err = risk.NewDefaultCatalog()
	if err != nil {
		var integrityErr *risk.CatalogIntegrityError
		if errors.As(err, &integrityErr) {
			logger.Error("risk catalog failed integrity check",
				"unresolved", len(integrityErr.Unresolved))
		}
		app.shutdown()
		return nil, fmt.Errorf("failed to build risk catalog: %w", err)
	}

	app.engine, err = risk.NewEngine(app.catalog)
	if err != nil {
		app.shutdown()
		return nil, fmt.Errorf("failed to create risk engine: %w", err)
	}
	logger.Info("Risk engine initialized",
		"factor_count", len(app.catalog.Factors()),
		"pattern_count", len(app.catalog.Patterns()))

	retention := time.Duration(cfg.Assessment.RetentionDays) * 24 * time.Hour
	app.sampleStore = memory.NewSampleStore(retention, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(NewHighRiskAlertHandler(logger))
	app.eventEmitter = emitter

	instruments, err := telemetry.DefaultInstruments()
	if err != nil {
		app.shutdown()
		return nil, fmt.Errorf("failed to create metric instruments: %w", err)
	}

	app.assessmentService, err = assessment.NewService(
		app.engine,
		app.sampleStore,
		assessment.SettingsFromConfig(cfg.Assessment),
		logger,
		assessment.WithEmitter(app.eventEmitter),
		assessment.WithInstruments(instruments),
	)
	if err != nil {
		app.shutdown()
		return nil, fmt.Errorf("failed to create assessment service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// shutdown flushes and stops the metrics pipeline.
func (app *application) shutdown() {
	if app.shutdownMetrics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.shutdownMetrics(ctx); err != nil {
		app.logger.Error("Error shutting down metrics", "error", err)
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.shutdown()
	app.logger.Info("Application shutdown completed")
}
