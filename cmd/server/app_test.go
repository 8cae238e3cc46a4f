package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/stride-risk/internal/config"
	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/phrazzld/stride-risk/internal/events"
	"github.com/phrazzld/stride-risk/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Assessment: config.AssessmentConfig{
			WindowSize:         7,
			RetentionDays:      30,
			ReassessAfterHours: 24,
		},
		Metrics: config.MetricsConfig{ServiceName: "stride-risk-test"},
	}
}

func newTestApp(t *testing.T) (*application, *logger.TestLogBuffer) {
	t.Helper()

	testLogger, logBuf := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), testConfig(), testLogger)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app, logBuf
}

func samplePayload(userID string, ts time.Time, risky bool) map[string]interface{} {
	body := map[string]interface{}{
		"user_id":   userID,
		"timestamp": ts.Format(time.RFC3339),
		"biomechanics": map[string]interface{}{
			"cadence":              180,
			"ground_contact_time":  240,
			"vertical_oscillation": 8,
			"pronation":            "neutral",
			"symmetry":             3,
		},
		"training": map[string]interface{}{
			"weekly_distance":  5,
			"weekly_intensity": 20,
			"rest_days":        2,
			"consecutive_days": 0,
		},
		"physiology": map[string]interface{}{
			"fatigue":       30,
			"sleep_quality": 85,
			"hrv":           70,
			"stress":        30,
		},
		"environment": map[string]interface{}{
			"surface":   "trail",
			"weather":   "sunny",
			"elevation": 50,
		},
	}
	if risky {
		body["biomechanics"].(map[string]interface{})["cadence"] = 150
		body["biomechanics"].(map[string]interface{})["symmetry"] = 20
		body["physiology"] = map[string]interface{}{
			"fatigue":       90,
			"sleep_quality": 40,
			"hrv":           30,
			"stress":        85,
		}
	}
	return body
}

func serve(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewApplication(t *testing.T) {
	t.Run("wires all dependencies", func(t *testing.T) {
		app, logBuf := newTestApp(t)

		assert.NotNil(t, app.catalog)
		assert.NotNil(t, app.engine)
		assert.NotNil(t, app.sampleStore)
		assert.NotNil(t, app.assessmentService)
		assert.NotNil(t, app.eventEmitter)
		assert.NotNil(t, app.shutdownMetrics)
		assert.Len(t, app.catalog.Factors(), 14)
		assert.Len(t, app.catalog.Patterns(), 5)

		logger.AssertLogContains(t, logBuf, "Application initialized successfully")
	})

	t.Run("nil config", func(t *testing.T) {
		app, err := newApplication(context.Background(), nil, nil)
		assert.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		app, err := newApplication(context.Background(), testConfig(), nil)
		require.NoError(t, err)
		assert.NotNil(t, app.logger)
	})
}

func TestRouter(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		app, _ := newTestApp(t)

		w := serve(t, app.setupRouter(), http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("trace header is set", func(t *testing.T) {
		app, _ := newTestApp(t)

		w := serve(t, app.setupRouter(), http.MethodGet, "/api/risk-factors", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	})

	t.Run("catalogs", func(t *testing.T) {
		app, _ := newTestApp(t)
		router := app.setupRouter()

		var factors []map[string]interface{}
		w := serve(t, router, http.MethodGet, "/api/risk-factors", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&factors))
		assert.Len(t, factors, 14)

		var patterns []map[string]interface{}
		w = serve(t, router, http.MethodGet, "/api/injury-patterns", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&patterns))
		assert.Len(t, patterns, 5)
	})

	t.Run("unknown route", func(t *testing.T) {
		app, _ := newTestApp(t)

		w := serve(t, app.setupRouter(), http.MethodGet, "/api/unknown", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestIngestAndAssess(t *testing.T) {
	t.Run("assessment without samples", func(t *testing.T) {
		app, _ := newTestApp(t)

		w := serve(t, app.setupRouter(), http.MethodGet, "/api/users/new-runner/assessment", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "low", resp["overall_risk"])
		assert.EqualValues(t, 0, resp["risk_score"])
		assert.Empty(t, resp["risk_factors"])
	})

	t.Run("ingest then assess", func(t *testing.T) {
		app, _ := newTestApp(t)
		router := app.setupRouter()
		now := time.Now().UTC()

		for i := 0; i < 3; i++ {
			ts := now.Add(-time.Duration(3-i) * time.Hour)
			w := serve(t, router, http.MethodPost, "/api/samples", samplePayload("runner-1", ts, false))
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		w := serve(t, router, http.MethodGet, "/api/users/runner-1/samples", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var history map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
		assert.EqualValues(t, 3, history["count"])

		w = serve(t, router, http.MethodGet, "/api/users/runner-1/assessment", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "runner-1", resp["user_id"])
		assert.Len(t, resp["risk_factors"], 14)
		assert.NotEmpty(t, resp["recommendations"])
	})

	t.Run("invalid sample is rejected", func(t *testing.T) {
		app, _ := newTestApp(t)
		router := app.setupRouter()

		body := samplePayload("runner-1", time.Now().UTC(), false)
		body["physiology"].(map[string]interface{})["fatigue"] = 150

		w := serve(t, router, http.MethodPost, "/api/samples", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = serve(t, router, http.MethodGet, "/api/users/runner-1/samples", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var history map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
		assert.EqualValues(t, 0, history["count"])
	})

	t.Run("high risk assessment is logged", func(t *testing.T) {
		app, logBuf := newTestApp(t)
		router := app.setupRouter()

		w := serve(t, router, http.MethodPost, "/api/samples", samplePayload("runner-2", time.Now().UTC(), true))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = serve(t, router, http.MethodGet, "/api/users/runner-2/assessment", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, "high", resp["overall_risk"])

		entry, found := logger.FindLogEntry(t, logBuf, "high injury risk detected")
		require.True(t, found)
		assert.Equal(t, "runner-2", entry["user_id"])
		assert.Equal(t, "WARN", entry["level"])
	})
}

func TestHighRiskAlertHandler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

	newCompleted := func(t *testing.T, tier domain.Tier) *events.Event {
		t.Helper()
		event, err := events.NewEvent(events.TypeAssessmentCompleted, events.AssessmentCompletedPayload{
			UserID:      "runner-1",
			OverallRisk: tier,
			RiskScore:   72,
			HighFactors: []domain.FactorID{domain.FactorHighFatigue, domain.FactorPoorSleep},
			AssessedAt:  now,
		}, now)
		require.NoError(t, err)
		return event
	}

	t.Run("logs high risk", func(t *testing.T) {
		testLogger, logBuf := logger.GetTestLogger(t)
		handler := NewHighRiskAlertHandler(testLogger)

		require.NoError(t, handler.HandleEvent(ctx, newCompleted(t, domain.TierHigh)))

		entry, found := logger.FindLogEntry(t, logBuf, "high injury risk detected")
		require.True(t, found)
		assert.Equal(t, "runner-1", entry["user_id"])
		assert.EqualValues(t, 72, entry["risk_score"])
		assert.Equal(t, "high_risk_alert_handler", entry["component"])
	})

	t.Run("ignores lower tiers", func(t *testing.T) {
		testLogger, logBuf := logger.GetTestLogger(t)
		handler := NewHighRiskAlertHandler(testLogger)

		require.NoError(t, handler.HandleEvent(ctx, newCompleted(t, domain.TierMedium)))

		_, found := logger.FindLogEntry(t, logBuf, "high injury risk detected")
		assert.False(t, found)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		testLogger, logBuf := logger.GetTestLogger(t)
		handler := NewHighRiskAlertHandler(testLogger)

		event, err := events.NewEvent(events.TypeSampleIngested, events.SampleIngestedPayload{
			UserID:    "runner-1",
			Timestamp: now,
		}, now)
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(ctx, event))
		assert.Empty(t, logBuf.String())
	})

	t.Run("malformed payload", func(t *testing.T) {
		testLogger, _ := logger.GetTestLogger(t)
		handler := NewHighRiskAlertHandler(testLogger)

		event := &events.Event{
			Type:      events.TypeAssessmentCompleted,
			Payload:   json.RawMessage(`{"overall_risk": 5}`),
			CreatedAt: now,
		}

		assert.Error(t, handler.HandleEvent(ctx, event))
	})
}
