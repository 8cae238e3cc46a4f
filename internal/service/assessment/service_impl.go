package assessment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/stride-risk/internal/config"
	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/phrazzld/stride-risk/internal/domain/risk"
	"github.com/phrazzld/stride-risk/internal/events"
	"github.com/phrazzld/stride-risk/internal/platform/logger"
	"github.com/phrazzld/stride-risk/internal/platform/telemetry"
	"github.com/phrazzld/stride-risk/internal/store"
)

// Defaults applied when Settings leaves a value unset.
const (
	DefaultWindowSize    = 7
	DefaultReassessAfter = 24 * time.Hour
)

// Settings controls window selection and scheduling.
type Settings struct {
	// WindowSize is the maximum number of most recent samples evaluated.
	WindowSize int
	// ReassessAfter is added to the assessment time to produce NextAssessmentAt.
	ReassessAfter time.Duration
}

// SettingsFromConfig converts the assessment configuration section.
func SettingsFromConfig(cfg config.AssessmentConfig) Settings {
	return Settings{
		WindowSize:    cfg.WindowSize,
		ReassessAfter: time.Duration(cfg.ReassessAfterHours) * time.Hour,
	}
}

// Option configures optional collaborators of the service.
type Option func(*defaultService)

// WithClock sets the wall clock used for retention anchoring and scheduling.
func WithClock(now func() time.Time) Option {
	return func(s *defaultService) {
		s.now = now
	}
}

// WithEmitter sets the emitter that receives ingestion and assessment events.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(s *defaultService) {
		s.emitter = emitter
	}
}

// WithInstruments sets the metric instruments the service records into.
func WithInstruments(instruments *telemetry.Instruments) Option {
	return func(s *defaultService) {
		s.instruments = instruments
	}
}

// Verify interface compliance at compile time
var _ Service = (*defaultService)(nil)

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	engine      risk.Engine
	samples     store.SampleStore
	settings    Settings
	now         func() time.Time
	emitter     events.EventEmitter
	instruments *telemetry.Instruments
	logger      *slog.Logger
}

// NewService creates a new assessment Service.
// If logger is nil, a default logger will be used.
func NewService(
	engine risk.Engine,
	samples store.SampleStore,
	settings Settings,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if samples == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		logger = slog.Default()
	}
	if settings.WindowSize <= 0 {
		settings.WindowSize = DefaultWindowSize
	}
	if settings.ReassessAfter <= 0 {
		settings.ReassessAfter = DefaultReassessAfter
	}

	s := &defaultService{
		engine:   engine,
		samples:  samples,
		settings: settings,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "assessment_service")),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.instruments == nil {
		instruments, err := telemetry.DefaultInstruments()
		if err != nil {
			return nil, err
		}
		s.instruments = instruments
	}

	return s, nil
}

// Ingest implements Service.Ingest
func (s *defaultService) Ingest(ctx context.Context, sample domain.DailySample) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sample.Validate(); err != nil {
		s.instruments.RecordRejected(ctx)
		log.Warn("rejected invalid sample",
			slog.String("user_id", sample.UserID),
			slog.String("error", err.Error()))
		return err
	}

	now := s.now()
	evicted, err := s.samples.Append(ctx, sample, now)
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			s.instruments.RecordRejected(ctx)
			return err
		}
		log.Error("failed to append sample",
			slog.String("user_id", sample.UserID),
			slog.String("error", err.Error()))
		return NewIngestError("failed to store sample", err)
	}

	s.instruments.RecordIngest(ctx, evicted)
	log.Debug("sample ingested",
		slog.String("user_id", sample.UserID),
		slog.Time("timestamp", sample.Timestamp),
		slog.Int("evicted", evicted))

	s.emit(ctx, events.TypeSampleIngested, events.SampleIngestedPayload{
		UserID:    sample.UserID,
		Timestamp: sample.Timestamp,
		Evicted:   evicted,
	}, now)

	return nil
}

// Assess implements Service.Assess
func (s *defaultService) Assess(ctx context.Context, userID string) (*domain.Assessment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrEmptyUserID)
	}

	now := s.now()
	window, err := s.samples.Recent(ctx, userID, s.settings.WindowSize)
	if err != nil {
		log.Error("failed to load assessment window",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, NewAssessError("failed to load samples", err)
	}

	var assessment *domain.Assessment
	if len(window) == 0 {
		assessment = s.defaultAssessment(userID, now)
	} else {
		eval := s.engine.Evaluate(window)
		assessment = &domain.Assessment{
			UserID:            userID,
			OverallRisk:       eval.OverallRisk,
			RiskScore:         eval.RiskScore,
			RiskFactorResults: eval.Results,
			Recommendations:   eval.Recommendations,
			MatchedPatterns:   eval.MatchedPatterns,
			AssessedAt:        now,
			NextAssessmentAt:  now.Add(s.settings.ReassessAfter),
		}
	}

	s.instruments.RecordAssessment(ctx, string(assessment.OverallRisk), assessment.RiskScore)
	log.Info("assessment completed",
		slog.String("user_id", userID),
		slog.Int("sample_count", len(window)),
		slog.String("overall_risk", string(assessment.OverallRisk)),
		slog.Int("risk_score", assessment.RiskScore))

	patternIDs := make([]domain.PatternID, 0, len(assessment.MatchedPatterns))
	for _, p := range assessment.MatchedPatterns {
		patternIDs = append(patternIDs, p.ID)
	}
	s.emit(ctx, events.TypeAssessmentCompleted, events.AssessmentCompletedPayload{
		UserID:          userID,
		OverallRisk:     assessment.OverallRisk,
		RiskScore:       assessment.RiskScore,
		HighFactors:     assessment.HighFactorIDs(),
		MatchedPatterns: patternIDs,
		SampleCount:     len(window),
		AssessedAt:      now,
	}, now)

	return assessment, nil
}

// History implements Service.History
func (s *defaultService) History(ctx context.Context, userID string) ([]domain.DailySample, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrEmptyUserID)
	}

	samples, err := s.samples.History(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load history",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, NewHistoryError("failed to load samples", err)
	}
	return samples, nil
}

// RiskFactors implements Service.RiskFactors
func (s *defaultService) RiskFactors() []domain.RiskFactor {
	return s.engine.Catalog().Factors()
}

// InjuryPatterns implements Service.InjuryPatterns
func (s *defaultService) InjuryPatterns() []domain.InjuryPattern {
	return s.engine.Catalog().Patterns()
}

// defaultAssessment is the result for a user with no retained samples.
func (s *defaultService) defaultAssessment(userID string, now time.Time) *domain.Assessment {
	return &domain.Assessment{
		UserID:            userID,
		OverallRisk:       domain.TierLow,
		RiskScore:         0,
		RiskFactorResults: []domain.RiskFactorResult{},
		Recommendations:   []string{risk.DefaultRecommendation},
		MatchedPatterns:   []domain.InjuryPattern{},
		AssessedAt:        now,
		NextAssessmentAt:  now.Add(s.settings.ReassessAfter),
	}
}

// emit publishes an event; delivery failures are logged and never fail the
// operation that produced the event.
func (s *defaultService) emit(ctx context.Context, eventType string, payload interface{}, now time.Time) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, payload, now)
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}
