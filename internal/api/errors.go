package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/stride-risk/internal/api/shared"
	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/phrazzld/stride-risk/internal/service/assessment"
	"github.com/phrazzld/stride-risk/internal/store"
)

// ErrEmptyRequestBody is returned when an ingest request carries no body.
var ErrEmptyRequestBody = shared.ErrEmptyBody

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var serviceErr *assessment.ServiceError
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrValidation), errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid sample data"

	case errors.As(err, &serviceErr):
		switch serviceErr.Operation {
		case "ingest":
			return "Failed to store sample"
		case "assess":
			return "Failed to assess injury risk"
		case "history":
			return "Failed to load sample history"
		}
		return "An unexpected error occurred"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns request or domain validation failures into a
// client-facing message naming the offending field by its JSON path.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", shared.FieldPath(fe.Namespace()), getValidationTagMessage(fe.Tag()))
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) && domainErr.Field != "" {
		return fmt.Sprintf("Invalid %s: %s", domainErr.Field, domainErr.Message)
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "gte", "gt":
		return "value too small"
	case "lte", "lt":
		return "value too large"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and safe message for err. When the
// error maps to a server error, fallbackMessage (if set) replaces the generic
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
