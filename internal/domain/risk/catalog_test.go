package risk

import (
	"errors"
	"testing"

	"github.com/phrazzld/stride-risk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := NewDefaultCatalog()
	require.NoError(t, err, "built-in catalog must be consistent")

	assert.Len(t, catalog.Factors(), FactorCount)
	assert.Len(t, catalog.Patterns(), PatternCount)

	var weights float64
	for _, f := range catalog.Factors() {
		assert.GreaterOrEqual(t, f.Weight, 0.0, "weight of %s", f.ID)
		assert.LessOrEqual(t, f.Weight, 1.0, "weight of %s", f.ID)
		weights += f.Weight
	}
	assert.InDelta(t, allWeightsSum, weights, 1e-9)
}

func TestDefaultCatalogThresholds(t *testing.T) {
	t.Parallel()

	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)

	testCases := []struct {
		id       domain.FactorID
		weight   float64
		polarity domain.Polarity
		medium   float64
		high     float64
	}{
		{domain.FactorHighImpact, 0.25, domain.HigherIsWorse, 1.5, 1.8},
		{domain.FactorAsymmetry, 0.20, domain.HigherIsWorse, 8, 15},
		{domain.FactorOverstriding, 0.18, domain.HigherIsWorse, 0.5, 0.7},
		{domain.FactorLowCadence, 0.15, domain.LowerIsWorse, 170, 160},
		{domain.FactorHighWeeklyDistance, 0.22, domain.HigherIsWorse, 50, 80},
		{domain.FactorInsufficientRest, 0.20, domain.LowerIsWorse, 3, 2},
		{domain.FactorConsecutiveDays, 0.18, domain.HigherIsWorse, 3, 5},
		{domain.FactorHighIntensity, 0.16, domain.HigherIsWorse, 65, 80},
		{domain.FactorHighFatigue, 0.24, domain.HigherIsWorse, 50, 70},
		{domain.FactorPoorSleep, 0.20, domain.LowerIsWorse, 75, 60},
		{domain.FactorLowHRV, 0.18, domain.LowerIsWorse, 55, 40},
		{domain.FactorHighStress, 0.16, domain.HigherIsWorse, 50, 70},
		{domain.FactorHardSurface, 0.15, domain.HigherIsWorse, 0.4, 0.7},
		{domain.FactorElevationChange, 0.12, domain.HigherIsWorse, 100, 200},
	}

	factors := catalog.Factors()
	require.Len(t, factors, len(testCases))
	for i, tc := range testCases {
		t.Run(string(tc.id), func(t *testing.T) {
			f := factors[i]
			assert.Equal(t, tc.id, f.ID, "catalog order")
			assert.Equal(t, tc.weight, f.Weight)
			assert.Equal(t, tc.polarity, f.Polarity)
			assert.Equal(t, tc.medium, f.MediumThreshold)
			assert.Equal(t, tc.high, f.HighThreshold)
		})
	}
}

func TestNewCatalogRejectsUnresolvedPatternReferences(t *testing.T) {
	t.Parallel()

	patterns := DefaultInjuryPatterns()
	patterns[3].AssociatedFactorIDs = []domain.FactorID{
		domain.FactorAsymmetry,
		domain.FactorElevationChange,
		"trail_surface",
		"fatigue",
	}

	catalog, err := NewCatalog(DefaultRiskFactors(), patterns)
	require.Error(t, err)
	assert.Nil(t, catalog)
	assert.True(t, errors.Is(err, ErrCatalogIntegrity))

	var integrityErr *CatalogIntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, []UnresolvedReference{
		{PatternID: domain.PatternAnkleSprain, FactorID: "trail_surface"},
		{PatternID: domain.PatternAnkleSprain, FactorID: "fatigue"},
	}, integrityErr.Unresolved)
	assert.Contains(t, err.Error(), "ankle_sprain->trail_surface")
}

func TestNewCatalogRejectsInvalidFactors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func([]domain.RiskFactor) []domain.RiskFactor
	}{
		{
			name: "duplicate id",
			mutate: func(f []domain.RiskFactor) []domain.RiskFactor {
				return append(f, f[0])
			},
		},
		{
			name: "weight above one",
			mutate: func(f []domain.RiskFactor) []domain.RiskFactor {
				f[0].Weight = 1.5
				return f
			},
		},
		{
			name: "unknown polarity",
			mutate: func(f []domain.RiskFactor) []domain.RiskFactor {
				f[1].Polarity = "sideways"
				return f
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.mutate(DefaultRiskFactors()), DefaultInjuryPatterns())
			var integrityErr *CatalogIntegrityError
			assert.True(t, errors.As(err, &integrityErr), "expected CatalogIntegrityError, got %v", err)
		})
	}
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)

	factors := catalog.Factors()
	factors[0].Weight = 0.99
	patterns := catalog.Patterns()
	patterns[0].AssociatedFactorIDs[0] = "tampered"
	patterns[0].Symptoms[0] = "tampered"

	f, ok := catalog.Factor(domain.FactorHighImpact)
	require.True(t, ok)
	assert.Equal(t, 0.25, f.Weight)

	fresh := catalog.Patterns()
	assert.Equal(t, domain.FactorHighImpact, fresh[0].AssociatedFactorIDs[0])
	assert.NotEqual(t, "tampered", fresh[0].Symptoms[0])

	_, ok = catalog.Factor("unknown")
	assert.False(t, ok)
}
