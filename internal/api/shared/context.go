package shared

import (
	"context"
	"encoding/hex"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
)

// ContextKey is the type for request-scoped context values.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries a caller-supplied trace ID in and the effective
	// trace ID out.
	TraceIDHeader = "X-Trace-ID"
)

var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// IsValidTraceID reports whether a caller-supplied trace ID may be reused.
func IsValidTraceID(traceID string) bool {
	return traceIDPattern.MatchString(traceID)
}

// generateTraceID returns a random 32-character hex string.
func generateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID, using time-based ID",
			slog.String("error", err.Error()))
		id = uuid.Must(uuid.NewUUID())
	}
	return hex.EncodeToString(id[:])
}
