package risk

import "github.com/phrazzld/stride-risk/internal/domain"

// minHighFactorsForPattern is how many of a pattern's factors must be high for it to match.
const minHighFactorsForPattern = 2

// MatchPatterns returns, in catalog order, the patterns with at least two
// associated factors at the high tier.
func MatchPatterns(
	patterns []domain.InjuryPattern,
	results []domain.RiskFactorResult,
) []domain.InjuryPattern {
	high := make(map[domain.FactorID]struct{}, len(results))
	for _, r := range results {
		if r.Tier == domain.TierHigh {
			high[r.Factor.ID] = struct{}{}
		}
	}

	matched := make([]domain.InjuryPattern, 0)
	for _, p := range patterns {
		overlap := 0
		for _, id := range p.AssociatedFactorIDs {
			if _, ok := high[id]; ok {
				overlap++
			}
		}
		if overlap >= minHighFactorsForPattern {
			matched = append(matched, p)
		}
	}
	return matched
}
