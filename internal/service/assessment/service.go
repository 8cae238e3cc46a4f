// Package assessment orchestrates the injury-risk pipeline for a user: it
// ingests daily samples into the sample store, selects the assessment window,
// runs the risk engine over it and packages the result with its schedule.
package assessment

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Service provides sample ingestion and on-demand risk assessment.
type Service interface {
	// Ingest validates and stores a daily sample, then evicts the user's
	// samples that fell out of the retention window.
	//
	// Returns:
	//   - nil: the sample is stored
	//   - *domain.ValidationError: the sample is malformed; nothing is stored
	//   - *ServiceError: the store failed
	Ingest(ctx context.Context, sample domain.DailySample) error

	// Assess evaluates the user's most recent samples and returns a fresh
	// assessment. A user with no retained samples gets the default low-risk
	// assessment. The result is derived on every call and never cached, so
	// repeated calls at the same instant over the same samples are identical.
	Assess(ctx context.Context, userID string) (*domain.Assessment, error)

	// History returns every retained sample of the user in chronological order.
	History(ctx context.Context, userID string) ([]domain.DailySample, error)

	// RiskFactors returns the factor catalog in catalog order.
	RiskFactors() []domain.RiskFactor

	// InjuryPatterns returns the injury pattern catalog in catalog order.
	InjuryPatterns() []domain.InjuryPattern
}

// Common error types for the assessment service
var (
	// ErrNilEngine is returned when the service is constructed without an engine.
	ErrNilEngine = errors.New("risk engine cannot be nil")

	// ErrNilStore is returned when the service is constructed without a sample store.
	ErrNilStore = errors.New("sample store cannot be nil")
)

// ServiceError wraps errors from the assessment service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "ingest", "assess")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewIngestError returns a new ServiceError for the ingest operation.
func NewIngestError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "ingest", Message: message, Err: err}
}

// NewAssessError returns a new ServiceError for the assess operation.
func NewAssessError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "assess", Message: message, Err: err}
}

// NewHistoryError returns a new ServiceError for the history operation.
func NewHistoryError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "history", Message: message, Err: err}
}
