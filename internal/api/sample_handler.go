package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/stride-risk/internal/api/shared"
	"github.com/phrazzld/stride-risk/internal/platform/logger"
	"github.com/phrazzld/stride-risk/internal/service/assessment"
)

// SampleHandler handles daily sample HTTP requests
type SampleHandler struct {
	service assessment.Service
	logger  *slog.Logger
}

// NewSampleHandler creates a new SampleHandler
func NewSampleHandler(service assessment.Service, logger *slog.Logger) *SampleHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("assessment service cannot be nil for SampleHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SampleHandler{
		service: service,
		logger:  logger.With(slog.String("component", "sample_handler")),
	}
}

// IngestSample handles POST /samples requests.
// It validates the sample, stores it and returns the stored sample.
func (h *SampleHandler) IngestSample(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req IngestSampleRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		message := "Invalid request format"
		if errors.Is(err, ErrEmptyRequestBody) {
			message = "Request body is required"
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, message)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		log.Warn("validation error", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	sample := req.ToDomain()
	if err := h.service.Ingest(r.Context(), sample); err != nil {
		HandleAPIError(w, r, err, "Failed to store sample")
		return
	}

	log.Debug("sample ingested",
		slog.String("user_id", sample.UserID),
		slog.Time("timestamp", sample.Timestamp))
	shared.RespondWithJSON(w, r, http.StatusCreated, sample)
}

// GetHistory handles GET /users/{userID}/samples requests.
// It returns every retained sample of the user in chronological order.
func (h *SampleHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUserID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	samples, err := h.service.History(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load sample history")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{
		UserID:  userID,
		Count:   len(samples),
		Samples: samples,
	})
}
