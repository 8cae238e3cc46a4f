package risk

import (
	"maps"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Evaluator computes each factor's metric from a sample window and classifies
// it into a tier using the factor's thresholds and polarity.
type Evaluator struct {
	metrics map[domain.FactorID]MetricFunc
}

// NewEvaluator creates an Evaluator over the given metric strategies.
// Strategies missing from the map fall back to the unknown-factor default.
func NewEvaluator(metrics map[domain.FactorID]MetricFunc) *Evaluator {
	return &Evaluator{metrics: maps.Clone(metrics)}
}

// Evaluate returns the user value and tier for one factor over the window.
// A factor without a registered strategy yields (0, low).
func (e *Evaluator) Evaluate(
	factor domain.RiskFactor,
	window []domain.DailySample,
) (float64, domain.Tier) {
	metric, ok := e.metrics[factor.ID]
	if !ok {
		return 0, domain.TierLow
	}
	value := metric(window)
	return value, Classify(factor, value)
}

// Classify maps a metric value to a tier. Higher-is-worse factors escalate
// when the value is strictly above a threshold, lower-is-worse factors when it
// is strictly below.
func Classify(factor domain.RiskFactor, value float64) domain.Tier {
	worse := func(threshold float64) bool {
		if factor.Polarity == domain.LowerIsWorse {
			return value < threshold
		}
		return value > threshold
	}

	switch {
	case worse(factor.HighThreshold):
		return domain.TierHigh
	case worse(factor.MediumThreshold):
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}
