package risk

import (
	"fmt"
	"time"

	"github.com/phrazzld/stride-risk/internal/domain"
)

var baseTime = time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

// baselineSample returns a sample that, in a window of seven built by
// baselineWindow, keeps every default-metric factor in the low tier.
func baselineSample(i int) domain.DailySample {
	intensity := 50.0
	if i < 3 {
		intensity = 20
	}
	consecutive := 0
	if i >= 4 {
		consecutive = 1
	}
	return domain.DailySample{
		UserID:    "runner-1",
		Timestamp: baseTime.AddDate(0, 0, i),
		Biomechanics: domain.Biomechanics{
			Cadence:             180,
			GroundContactTime:   240,
			VerticalOscillation: 8,
			Pronation:           domain.PronationNeutral,
			Symmetry:            3,
		},
		Training: domain.Training{
			WeeklyDistance:  5,
			WeeklyIntensity: intensity,
			RestDays:        2,
			ConsecutiveDays: consecutive,
		},
		Physiology: domain.Physiology{
			Fatigue:      30,
			SleepQuality: 85,
			HRV:          70,
			Stress:       30,
		},
		Environment: domain.Environment{
			Surface:   domain.SurfaceTrail,
			Weather:   domain.WeatherSunny,
			Elevation: 50,
		},
	}
}

func baselineWindow(n int, mutate func(i int, s *domain.DailySample)) []domain.DailySample {
	window := make([]domain.DailySample, n)
	for i := range window {
		window[i] = baselineSample(i)
		if mutate != nil {
			mutate(i, &window[i])
		}
	}
	return window
}

func resultFor(results []domain.RiskFactorResult, id domain.FactorID) (domain.RiskFactorResult, bool) {
	for _, r := range results {
		if r.Factor.ID == id {
			return r, true
		}
	}
	return domain.RiskFactorResult{}, false
}

type weightTier struct {
	weight float64
	tier   domain.Tier
}

// syntheticResults builds results from explicit (weight, tier) pairs.
func syntheticResults(pairs ...weightTier) []domain.RiskFactorResult {
	results := make([]domain.RiskFactorResult, len(pairs))
	for i, p := range pairs {
		results[i] = domain.RiskFactorResult{
			Factor:       domain.RiskFactor{ID: domain.FactorID(fmt.Sprintf("f%d", i)), Weight: p.weight},
			Tier:         p.tier,
			Contribution: Contribution(p.weight, p.tier),
		}
	}
	return results
}

// allWeightsSum is the sum of every default factor weight.
const allWeightsSum = 2.59
