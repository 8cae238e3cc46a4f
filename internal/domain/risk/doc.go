// Package risk implements the injury-risk rule engine: a fixed catalog of
// weighted risk factors, the metric strategies that read them from a window of
// daily samples, tier classification, score aggregation, injury-pattern
// matching and recommendation generation.
//
// Everything in this package is pure and deterministic. The catalog is
// immutable once built and safe to share between goroutines.
package risk
