package risk

import "github.com/phrazzld/stride-risk/internal/domain"

// Evaluation is the engine's output for one sample window.
type Evaluation struct {
	Results           []domain.RiskFactorResult
	TotalContribution float64
	RiskScore         int
	OverallRisk       domain.Tier
	MatchedPatterns   []domain.InjuryPattern
	Recommendations   []string
}

// HighCount returns how many results are in the high tier.
func (e *Evaluation) HighCount() int {
	n := 0
	for _, r := range e.Results {
		if r.Tier == domain.TierHigh {
			n++
		}
	}
	return n
}

// Engine defines the interface for the risk rule engine.
type Engine interface {
	// Evaluate runs every catalog factor over the window and aggregates the
	// results. It is total: any window, including an empty one, is accepted.
	Evaluate(window []domain.DailySample) *Evaluation

	// Catalog returns the catalog the engine evaluates.
	Catalog() *Catalog
}

// Option configures an engine at construction.
type Option func(*defaultEngine)

// WithMetric replaces the metric strategy for one factor. It is how sensor
// derived metrics for high impact and overstriding get plugged in, and how
// tests supply deterministic fakes.
func WithMetric(id domain.FactorID, fn MetricFunc) Option {
	return func(e *defaultEngine) {
		e.metrics[id] = fn
	}
}

// defaultEngine is the standard implementation of the Engine interface
type defaultEngine struct {
	catalog   *Catalog
	metrics   map[domain.FactorID]MetricFunc
	evaluator *Evaluator
}

// NewEngine creates an engine over the given catalog with the default metric
// strategies, as modified by opts.
func NewEngine(catalog *Catalog, opts ...Option) (Engine, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	e := &defaultEngine{
		catalog: catalog,
		metrics: DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.evaluator = NewEvaluator(e.metrics)

	return e, nil
}

// NewDefaultEngine creates an engine over the built-in catalog.
func NewDefaultEngine(opts ...Option) (Engine, error) {
	catalog, err := NewDefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewEngine(catalog, opts...)
}

// Catalog implements the Engine interface
func (e *defaultEngine) Catalog() *Catalog {
	return e.catalog
}

// Evaluate implements the Engine interface
func (e *defaultEngine) Evaluate(window []domain.DailySample) *Evaluation {
	factors := e.catalog.Factors()
	results := make([]domain.RiskFactorResult, 0, len(factors))
	for _, f := range factors {
		value, tier := e.evaluator.Evaluate(f, window)
		results = append(results, domain.RiskFactorResult{
			Factor:       f,
			UserValue:    value,
			Tier:         tier,
			Contribution: Contribution(f.Weight, tier),
		})
	}

	total := TotalContribution(results)
	return &Evaluation{
		Results:           results,
		TotalContribution: total,
		RiskScore:         RiskScore(total),
		OverallRisk:       ClassifyOverall(results),
		MatchedPatterns:   MatchPatterns(e.catalog.Patterns(), results),
		Recommendations:   GenerateRecommendations(results),
	}
}
