package risk

import "github.com/phrazzld/stride-risk/internal/domain"

// MetricFunc reads a single numeric metric from a window of samples.
// Implementations must be pure: the same window always yields the same value.
type MetricFunc func(window []domain.DailySample) float64

// restIntensityCutoff marks a sample as a rest day when its intensity is below it.
const restIntensityCutoff = 30

// UnmeasuredMetric is the default strategy for factors that have no sensor
// derivation yet (high impact and overstriding). It always reports 0, which
// keeps those factors in the low tier until a real strategy is injected.
func UnmeasuredMetric(_ []domain.DailySample) float64 {
	return 0
}

// DefaultMetrics returns the built-in metric strategy for each factor.
func DefaultMetrics() map[domain.FactorID]MetricFunc {
	return map[domain.FactorID]MetricFunc{
		domain.FactorHighImpact:   UnmeasuredMetric,
		domain.FactorOverstriding: UnmeasuredMetric,
		domain.FactorAsymmetry: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Biomechanics.Symmetry })
		},
		domain.FactorLowCadence: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Biomechanics.Cadence })
		},
		domain.FactorHighWeeklyDistance: func(w []domain.DailySample) float64 {
			return sum(w, func(s domain.DailySample) float64 { return s.Training.WeeklyDistance })
		},
		domain.FactorInsufficientRest: func(w []domain.DailySample) float64 {
			return count(w, func(s domain.DailySample) bool {
				return s.Training.WeeklyIntensity < restIntensityCutoff
			})
		},
		domain.FactorConsecutiveDays: func(w []domain.DailySample) float64 {
			return count(w, func(s domain.DailySample) bool { return s.Training.ConsecutiveDays > 0 })
		},
		domain.FactorHighIntensity: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Training.WeeklyIntensity })
		},
		domain.FactorHighFatigue: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Physiology.Fatigue })
		},
		domain.FactorPoorSleep: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Physiology.SleepQuality })
		},
		domain.FactorLowHRV: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Physiology.HRV })
		},
		domain.FactorHighStress: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Physiology.Stress })
		},
		domain.FactorHardSurface: func(w []domain.DailySample) float64 {
			if len(w) == 0 {
				return 0
			}
			road := count(w, func(s domain.DailySample) bool {
				return s.Environment.Surface == domain.SurfaceRoad
			})
			return road / float64(len(w))
		},
		domain.FactorElevationChange: func(w []domain.DailySample) float64 {
			return mean(w, func(s domain.DailySample) float64 { return s.Environment.Elevation })
		},
	}
}

func sum(w []domain.DailySample, field func(domain.DailySample) float64) float64 {
	var total float64
	for _, s := range w {
		total += field(s)
	}
	return total
}

// mean is 0 for an empty window.
func mean(w []domain.DailySample, field func(domain.DailySample) float64) float64 {
	if len(w) == 0 {
		return 0
	}
	return sum(w, field) / float64(len(w))
}

func count(w []domain.DailySample, pred func(domain.DailySample) bool) float64 {
	var n int
	for _, s := range w {
		if pred(s) {
			n++
		}
	}
	return float64(n)
}
