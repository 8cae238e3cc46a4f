package domain

import "time"

// Assessment is the result of evaluating a user's recent samples. It is
// derived on every query and never stored.
type Assessment struct {
	UserID            string             `json:"user_id"`
	OverallRisk       Tier               `json:"overall_risk"`
	RiskScore         int                `json:"risk_score"`
	RiskFactorResults []RiskFactorResult `json:"risk_factor_results"`
	Recommendations   []string           `json:"recommendations"`
	MatchedPatterns   []InjuryPattern    `json:"matched_patterns"`
	AssessedAt        time.Time          `json:"assessed_at"`
	NextAssessmentAt  time.Time          `json:"next_assessment_at"`
}

// HighFactorIDs returns the IDs of all factors classified as high, in result order.
func (a *Assessment) HighFactorIDs() []FactorID {
	ids := make([]FactorID, 0, len(a.RiskFactorResults))
	for _, r := range a.RiskFactorResults {
		if r.Tier == TierHigh {
			ids = append(ids, r.Factor.ID)
		}
	}
	return ids
}
