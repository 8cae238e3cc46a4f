package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Event types emitted by the assessment service.
const (
	TypeSampleIngested      = "sample.ingested"
	TypeAssessmentCompleted = "assessment.completed"
)

// Event is a notification about something that happened in the system.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type names what happened, e.g. TypeSampleIngested
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload, stamped
// with createdAt.
func NewEvent(eventType string, payload interface{}, createdAt time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: createdAt,
	}, nil
}

// SampleIngestedPayload is the payload of a TypeSampleIngested event.
type SampleIngestedPayload struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Evicted   int       `json:"evicted"`
}

// AssessmentCompletedPayload is the payload of a TypeAssessmentCompleted event.
type AssessmentCompletedPayload struct {
	UserID          string             `json:"user_id"`
	OverallRisk     domain.Tier        `json:"overall_risk"`
	RiskScore       int                `json:"risk_score"`
	HighFactors     []domain.FactorID  `json:"high_factors"`
	MatchedPatterns []domain.PatternID `json:"matched_patterns"`
	SampleCount     int                `json:"sample_count"`
	AssessedAt      time.Time          `json:"assessed_at"`
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
