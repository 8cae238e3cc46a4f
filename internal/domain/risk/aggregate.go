package risk

import (
	"math"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Overall classification thresholds.
const (
	highTierCountForHigh   = 3
	highContributionCutoff = 60.0

	highTierCountForMedium   = 1
	mediumTierCountForMedium = 3
	mediumContributionCutoff = 35.0
)

// TierMultiplier returns the fraction of a factor's weight that counts toward
// the score at the given tier.
func TierMultiplier(tier domain.Tier) float64 {
	switch tier {
	case domain.TierHigh:
		return 1.0
	case domain.TierMedium:
		return 0.6
	default:
		return 0.2
	}
}

// Contribution converts a (weight, tier) pair into a 0-100 contribution.
func Contribution(weight float64, tier domain.Tier) float64 {
	return weight * TierMultiplier(tier) * 100
}

// TotalContribution sums the contributions of all results.
func TotalContribution(results []domain.RiskFactorResult) float64 {
	var total float64
	for _, r := range results {
		total += r.Contribution
	}
	return total
}

// RiskScore clamps the total contribution to [0,100] and rounds it.
func RiskScore(total float64) int {
	return int(math.Round(math.Max(0, math.Min(100, total))))
}

// ClassifyOverall maps the results to an overall risk level.
func ClassifyOverall(results []domain.RiskFactorResult) domain.Tier {
	var highs, mediums int
	for _, r := range results {
		switch r.Tier {
		case domain.TierHigh:
			highs++
		case domain.TierMedium:
			mediums++
		}
	}
	total := TotalContribution(results)

	switch {
	case highs >= highTierCountForHigh || total > highContributionCutoff:
		return domain.TierHigh
	case highs >= highTierCountForMedium ||
		mediums >= mediumTierCountForMedium ||
		total > mediumContributionCutoff:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}
