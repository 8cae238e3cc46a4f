package domain

// FactorID identifies a risk factor in the catalog.
type FactorID string

// Risk factor identifiers
const (
	FactorHighImpact         FactorID = "high_impact"
	FactorAsymmetry          FactorID = "asymmetry"
	FactorOverstriding       FactorID = "overstriding"
	FactorLowCadence         FactorID = "low_cadence"
	FactorHighWeeklyDistance FactorID = "high_weekly_distance"
	FactorInsufficientRest   FactorID = "insufficient_rest"
	FactorConsecutiveDays    FactorID = "consecutive_days"
	FactorHighIntensity      FactorID = "high_intensity"
	FactorHighFatigue        FactorID = "high_fatigue"
	FactorPoorSleep          FactorID = "poor_sleep"
	FactorLowHRV             FactorID = "low_hrv"
	FactorHighStress         FactorID = "high_stress"
	FactorHardSurface        FactorID = "hard_surface"
	FactorElevationChange    FactorID = "elevation_change"
)

// FactorCategory groups risk factors by the kind of signal they read.
type FactorCategory string

// Possible factor categories
const (
	CategoryBiomechanical FactorCategory = "biomechanical"
	CategoryTraining      FactorCategory = "training"
	CategoryPhysiological FactorCategory = "physiological"
	CategoryEnvironmental FactorCategory = "environmental"
)

// Polarity tells the evaluator in which direction a metric becomes risky.
type Polarity string

// Possible polarities
const (
	HigherIsWorse Polarity = "higher_is_worse"
	LowerIsWorse  Polarity = "lower_is_worse"
)

// Tier is the classification of a single factor's current value.
// Overall assessments reuse the same three levels.
type Tier string

// Possible tiers
const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// RiskFactor is an immutable, catalog-owned definition of one weighted risk
// signal together with the thresholds used to classify it.
type RiskFactor struct {
	ID              FactorID       `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Weight          float64        `json:"weight"`
	Category        FactorCategory `json:"category"`
	Polarity        Polarity       `json:"polarity"`
	MediumThreshold float64        `json:"medium_threshold"`
	HighThreshold   float64        `json:"high_threshold"`
}

// RiskFactorResult is the per-query evaluation of one factor.
type RiskFactorResult struct {
	Factor       RiskFactor `json:"factor"`
	UserValue    float64    `json:"user_value"`
	Tier         Tier       `json:"tier"`
	Contribution float64    `json:"contribution"`
}

// IsValidTier checks if the given tier is one of the known levels.
func IsValidTier(tier Tier) bool {
	switch tier {
	case TierLow, TierMedium, TierHigh:
		return true
	default:
		return false
	}
}
