package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/stride-risk/internal/api/shared"
	"github.com/phrazzld/stride-risk/internal/platform/logger"
	"github.com/phrazzld/stride-risk/internal/service/assessment"
)

// AssessmentHandler handles risk assessment and catalog HTTP requests
type AssessmentHandler struct {
	service assessment.Service
	logger  *slog.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler
func NewAssessmentHandler(service assessment.Service, logger *slog.Logger) *AssessmentHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("assessment service cannot be nil for AssessmentHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AssessmentHandler{
		service: service,
		logger:  logger.With(slog.String("component", "assessment_handler")),
	}
}

// GetAssessment handles GET /users/{userID}/assessment requests.
// Every call evaluates the user's current samples; nothing is cached.
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := getPathUserID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.service.Assess(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assess injury risk")
		return
	}

	log.Debug("assessment served",
		slog.String("user_id", userID),
		slog.String("overall_risk", string(result.OverallRisk)),
		slog.Int("risk_score", result.RiskScore))
	shared.RespondWithJSON(w, r, http.StatusOK, assessmentToResponse(result))
}

// ListRiskFactors handles GET /risk-factors requests.
func (h *AssessmentHandler) ListRiskFactors(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.RiskFactors())
}

// ListInjuryPatterns handles GET /injury-patterns requests.
func (h *AssessmentHandler) ListInjuryPatterns(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.InjuryPatterns())
}
