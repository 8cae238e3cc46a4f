package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/phrazzld/stride-risk/internal/platform/logger"
	"github.com/phrazzld/stride-risk/internal/store"
)

// series is one user's samples, kept sorted by timestamp ascending.
type series struct {
	mu      sync.RWMutex
	samples []domain.DailySample
}

// SampleStore implements the store.SampleStore interface in memory.
// Each user has an independent lock, so ingestion for one user never blocks
// reads or writes for another.
type SampleStore struct {
	mu        sync.Mutex
	users     map[string]*series
	retention time.Duration
	logger    *slog.Logger
}

// NewSampleStore creates an in-memory sample store that keeps samples for the
// given retention window. A non-positive retention uses store.DefaultRetention.
// If logger is nil, a default logger will be used.
func NewSampleStore(retention time.Duration, logger *slog.Logger) *SampleStore {
	if retention <= 0 {
		retention = store.DefaultRetention
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SampleStore{
		users:     make(map[string]*series),
		retention: retention,
		logger:    logger.With(slog.String("component", "sample_store")),
	}
}

// Ensure SampleStore implements store.SampleStore interface
var _ store.SampleStore = (*SampleStore)(nil)

// Append implements store.SampleStore.Append
func (s *SampleStore) Append(ctx context.Context, sample domain.DailySample, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := sample.Validate(); err != nil {
		log.Warn("sample validation failed during append",
			slog.String("error", err.Error()),
			slog.String("user_id", sample.UserID))
		return 0, store.NewStoreError("sample", "append", "invalid sample",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	ser := s.seriesFor(sample.UserID)
	ser.mu.Lock()
	defer ser.mu.Unlock()

	// Insert after any sample sharing the same timestamp to keep arrival order.
	i := sort.Search(len(ser.samples), func(i int) bool {
		return ser.samples[i].Timestamp.After(sample.Timestamp)
	})
	ser.samples = slices.Insert(ser.samples, i, sample)

	cutoff := now.Add(-s.retention)
	keepFrom := sort.Search(len(ser.samples), func(i int) bool {
		return !ser.samples[i].Timestamp.Before(cutoff)
	})
	if keepFrom > 0 {
		ser.samples = slices.Clone(ser.samples[keepFrom:])
		log.Debug("evicted expired samples",
			slog.String("user_id", sample.UserID),
			slog.Int("evicted", keepFrom),
			slog.Int("retained", len(ser.samples)),
			slog.Time("cutoff", cutoff))
	}

	return keepFrom, nil
}

// Recent implements store.SampleStore.Recent
func (s *SampleStore) Recent(ctx context.Context, userID string, limit int) ([]domain.DailySample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ser := s.lookup(userID)
	if ser == nil || limit <= 0 {
		return []domain.DailySample{}, nil
	}

	ser.mu.RLock()
	defer ser.mu.RUnlock()

	n := min(limit, len(ser.samples))
	out := make([]domain.DailySample, 0, n)
	for i := len(ser.samples) - 1; i >= len(ser.samples)-n; i-- {
		out = append(out, ser.samples[i])
	}
	return out, nil
}

// History implements store.SampleStore.History
func (s *SampleStore) History(ctx context.Context, userID string) ([]domain.DailySample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ser := s.lookup(userID)
	if ser == nil {
		return []domain.DailySample{}, nil
	}

	ser.mu.RLock()
	defer ser.mu.RUnlock()
	return slices.Clone(ser.samples), nil
}

// seriesFor returns the user's series, creating it on first use. Series are
// never removed so a writer can never hold a detached one.
func (s *SampleStore) seriesFor(userID string) *series {
	s.mu.Lock()
	defer s.mu.Unlock()

	ser, ok := s.users[userID]
	if !ok {
		ser = &series{}
		s.users[userID] = ser
	}
	return ser
}

func (s *SampleStore) lookup(userID string) *series {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID]
}
