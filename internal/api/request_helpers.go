package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// userIDParam is the chi route parameter naming the user.
const userIDParam = "userID"

// getPathUserID extracts the user ID from the URL path parameters.
//
// Returns:
//   - (userID, nil): the trimmed, non-empty user ID
//   - ("", error): a *domain.ValidationError if the parameter is missing or blank
func getPathUserID(r *http.Request) (string, error) {
	userID := strings.TrimSpace(chi.URLParam(r, userIDParam))
	if userID == "" {
		return "", domain.NewValidationError("user_id", "is required", domain.ErrEmptyUserID)
	}
	return userID, nil
}
