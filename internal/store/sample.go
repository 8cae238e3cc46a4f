package store

import (
	"context"
	"time"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// DefaultRetention is how long a sample stays queryable after an ingest.
const DefaultRetention = 30 * 24 * time.Hour

// SampleStore defines the interface for per-user daily sample time series.
//
// Implementations must make Append atomic per user: the append and the
// eviction it triggers are observed together or not at all, and no read for
// the same user interleaves with them. Reads for the same user may run
// concurrently with each other.
type SampleStore interface {
	// Append stores the sample and then evicts every sample of the same user
	// whose timestamp is before now minus the retention window. The anchor is
	// the wall-clock time of the call, not the sample's own timestamp, so a
	// stale sample can be evicted by the very call that appended it.
	//
	// Returns the number of evicted samples. Returns an error wrapping
	// ErrInvalidEntity if the sample fails domain validation; nothing is
	// stored in that case.
	Append(ctx context.Context, sample domain.DailySample, now time.Time) (int, error)

	// Recent returns up to limit samples of the user ordered by timestamp,
	// most recent first. An unknown user yields an empty slice, not an error.
	Recent(ctx context.Context, userID string, limit int) ([]domain.DailySample, error)

	// History returns every retained sample of the user in chronological order.
	History(ctx context.Context, userID string) ([]domain.DailySample, error)
}
