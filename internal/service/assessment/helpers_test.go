package assessment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/phrazzld/stride-risk/internal/domain/risk"
	"github.com/phrazzld/stride-risk/internal/events"
	"github.com/phrazzld/stride-risk/internal/platform/memory"
	"github.com/phrazzld/stride-risk/internal/service/assessment"
	"github.com/phrazzld/stride-risk/internal/store"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// baselineSample returns a sample that, in a run of seven consecutive
// indices starting at 0, keeps every factor in the low tier.
func baselineSample(userID string, i int, ts time.Time) domain.DailySample {
	intensity := 50.0
	if i < 3 {
		intensity = 20
	}
	consecutive := 0
	if i >= 4 {
		consecutive = 1
	}
	return domain.DailySample{
		UserID:    userID,
		Timestamp: ts,
		Biomechanics: domain.Biomechanics{
			Cadence:             180,
			GroundContactTime:   240,
			VerticalOscillation: 8,
			Pronation:           domain.PronationNeutral,
			Symmetry:            3,
		},
		Training: domain.Training{
			WeeklyDistance:  5,
			WeeklyIntensity: intensity,
			RestDays:        2,
			ConsecutiveDays: consecutive,
		},
		Physiology: domain.Physiology{
			Fatigue:      30,
			SleepQuality: 85,
			HRV:          70,
			Stress:       30,
		},
		Environment: domain.Environment{
			Surface:   domain.SurfaceTrail,
			Weather:   domain.WeatherSunny,
			Elevation: 50,
		},
	}
}

// recordingHandler collects every emitted event.
type recordingHandler struct {
	events []*events.Event
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.Event) error {
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) ofType(eventType string) []*events.Event {
	var out []*events.Event
	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	service  assessment.Service
	store    *memory.SampleStore
	recorder *recordingHandler
}

func newFixture(t *testing.T, opts ...risk.Option) *fixture {
	t.Helper()

	engine, err := risk.NewDefaultEngine(opts...)
	require.NoError(t, err)

	samples := memory.NewSampleStore(store.DefaultRetention, discardLogger())
	recorder := &recordingHandler{}
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(recorder)

	svc, err := assessment.NewService(engine, samples,
		assessment.Settings{WindowSize: 7, ReassessAfter: 24 * time.Hour},
		discardLogger(),
		assessment.WithClock(fixedClock),
		assessment.WithEmitter(emitter),
	)
	require.NoError(t, err)

	return &fixture{service: svc, store: samples, recorder: recorder}
}

// MockSampleStore implements store.SampleStore with overridable behavior.
type MockSampleStore struct {
	AppendFn  func(ctx context.Context, sample domain.DailySample, now time.Time) (int, error)
	RecentFn  func(ctx context.Context, userID string, limit int) ([]domain.DailySample, error)
	HistoryFn func(ctx context.Context, userID string) ([]domain.DailySample, error)
}

func (m *MockSampleStore) Append(ctx context.Context, sample domain.DailySample, now time.Time) (int, error) {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, sample, now)
	}
	return 0, nil
}

func (m *MockSampleStore) Recent(ctx context.Context, userID string, limit int) ([]domain.DailySample, error) {
	if m.RecentFn != nil {
		return m.RecentFn(ctx, userID, limit)
	}
	return []domain.DailySample{}, nil
}

func (m *MockSampleStore) History(ctx context.Context, userID string) ([]domain.DailySample, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(ctx, userID)
	}
	return []domain.DailySample{}, nil
}
