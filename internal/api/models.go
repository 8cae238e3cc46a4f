package api

import (
	"time"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Numeric measurements are pointers so an absent field is distinguishable
// from an explicit zero.

// BiomechanicsRequest is the biomechanics section of an ingest request.
type BiomechanicsRequest struct {
	Cadence             *float64 `json:"cadence"              validate:"required"`
	GroundContactTime   *float64 `json:"ground_contact_time"  validate:"required"`
	VerticalOscillation *float64 `json:"vertical_oscillation" validate:"required"`
	Pronation           string   `json:"pronation"            validate:"required"`
	Symmetry            *float64 `json:"symmetry"             validate:"required"`
}

// TrainingRequest is the training section of an ingest request.
type TrainingRequest struct {
	WeeklyDistance  *float64 `json:"weekly_distance"  validate:"required"`
	WeeklyIntensity *float64 `json:"weekly_intensity" validate:"required"`
	RestDays        *int     `json:"rest_days"        validate:"required"`
	ConsecutiveDays *int     `json:"consecutive_days" validate:"required"`
}

// PhysiologyRequest is the physiology section of an ingest request.
type PhysiologyRequest struct {
	Fatigue      *float64 `json:"fatigue"       validate:"required"`
	SleepQuality *float64 `json:"sleep_quality" validate:"required"`
	HRV          *float64 `json:"hrv"           validate:"required"`
	Stress       *float64 `json:"stress"        validate:"required"`
}

// EnvironmentRequest is the environment section of an ingest request.
type EnvironmentRequest struct {
	Surface   string   `json:"surface"   validate:"required"`
	Weather   string   `json:"weather"   validate:"required"`
	Elevation *float64 `json:"elevation" validate:"required"`
}

// IngestSampleRequest represents the request body for ingesting a daily sample.
// Presence is checked here; ranges and enum values are checked by the domain.
type IngestSampleRequest struct {
	UserID       string               `json:"user_id"      validate:"required"`
	Timestamp    *time.Time           `json:"timestamp"    validate:"required"`
	Biomechanics *BiomechanicsRequest `json:"biomechanics" validate:"required"`
	Training     *TrainingRequest     `json:"training"     validate:"required"`
	Physiology   *PhysiologyRequest   `json:"physiology"   validate:"required"`
	Environment  *EnvironmentRequest  `json:"environment"  validate:"required"`
}

// ToDomain converts a validated request into a domain sample. It must only be
// called after the request passed validation.
func (r *IngestSampleRequest) ToDomain() domain.DailySample {
	return domain.DailySample{
		UserID:    r.UserID,
		Timestamp: r.Timestamp.UTC(),
		Biomechanics: domain.Biomechanics{
			Cadence:             *r.Biomechanics.Cadence,
			GroundContactTime:   *r.Biomechanics.GroundContactTime,
			VerticalOscillation: *r.Biomechanics.VerticalOscillation,
			Pronation:           domain.Pronation(r.Biomechanics.Pronation),
			Symmetry:            *r.Biomechanics.Symmetry,
		},
		Training: domain.Training{
			WeeklyDistance:  *r.Training.WeeklyDistance,
			WeeklyIntensity: *r.Training.WeeklyIntensity,
			RestDays:        *r.Training.RestDays,
			ConsecutiveDays: *r.Training.ConsecutiveDays,
		},
		Physiology: domain.Physiology{
			Fatigue:      *r.Physiology.Fatigue,
			SleepQuality: *r.Physiology.SleepQuality,
			HRV:          *r.Physiology.HRV,
			Stress:       *r.Physiology.Stress,
		},
		Environment: domain.Environment{
			Surface:   domain.Surface(r.Environment.Surface),
			Weather:   domain.Weather(r.Environment.Weather),
			Elevation: *r.Environment.Elevation,
		},
	}
}

// RiskFactorResultResponse is one evaluated factor in an assessment response.
type RiskFactorResultResponse struct {
	FactorID     domain.FactorID       `json:"factor_id"`
	Name         string                `json:"name"`
	Category     domain.FactorCategory `json:"category"`
	Weight       float64               `json:"weight"`
	UserValue    float64               `json:"user_value"`
	Tier         domain.Tier           `json:"tier"`
	Contribution float64               `json:"contribution"`
}

// InjuryPatternSummary is a matched pattern in an assessment response.
type InjuryPatternSummary struct {
	ID             domain.PatternID `json:"id"`
	Name           string           `json:"name"`
	Severity       domain.Severity  `json:"severity"`
	BodyPart       domain.BodyPart  `json:"body_part"`
	PreventionTips []string         `json:"prevention_tips"`
}

// AssessmentResponse represents the response data for an assessment.
type AssessmentResponse struct {
	UserID           string                     `json:"user_id"`
	OverallRisk      domain.Tier                `json:"overall_risk"`
	RiskScore        int                        `json:"risk_score"`
	RiskFactors      []RiskFactorResultResponse `json:"risk_factors"`
	Recommendations  []string                   `json:"recommendations"`
	MatchedPatterns  []InjuryPatternSummary     `json:"matched_patterns"`
	AssessedAt       time.Time                  `json:"assessed_at"`
	NextAssessmentAt time.Time                  `json:"next_assessment_at"`
}

// HistoryResponse lists a user's retained samples in chronological order.
type HistoryResponse struct {
	UserID  string               `json:"user_id"`
	Count   int                  `json:"count"`
	Samples []domain.DailySample `json:"samples"`
}

// assessmentToResponse converts a domain.Assessment to an AssessmentResponse
func assessmentToResponse(a *domain.Assessment) AssessmentResponse {
	factors := make([]RiskFactorResultResponse, 0, len(a.RiskFactorResults))
	for _, r := range a.RiskFactorResults {
		factors = append(factors, RiskFactorResultResponse{
			FactorID:     r.Factor.ID,
			Name:         r.Factor.Name,
			Category:     r.Factor.Category,
			Weight:       r.Factor.Weight,
			UserValue:    r.UserValue,
			Tier:         r.Tier,
			Contribution: r.Contribution,
		})
	}

	patterns := make([]InjuryPatternSummary, 0, len(a.MatchedPatterns))
	for _, p := range a.MatchedPatterns {
		patterns = append(patterns, InjuryPatternSummary{
			ID:             p.ID,
			Name:           p.Name,
			Severity:       p.Severity,
			BodyPart:       p.BodyPart,
			PreventionTips: p.PreventionTips,
		})
	}

	recommendations := a.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	return AssessmentResponse{
		UserID:           a.UserID,
		OverallRisk:      a.OverallRisk,
		RiskScore:        a.RiskScore,
		RiskFactors:      factors,
		Recommendations:  recommendations,
		MatchedPatterns:  patterns,
		AssessedAt:       a.AssessedAt,
		NextAssessmentAt: a.NextAssessmentAt,
	}
}
