package risk

import (
	"fmt"
	"slices"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Catalog sizes. The engine is calibrated against exactly this many entries.
const (
	FactorCount  = 14
	PatternCount = 5
)

// Catalog is the immutable set of risk factors and injury patterns the engine
// evaluates. Accessors return copies, so callers can never mutate it.
type Catalog struct {
	factors  []domain.RiskFactor
	byID     map[domain.FactorID]int
	patterns []domain.InjuryPattern
}

// NewCatalog builds a catalog from the given definitions and checks that every
// pattern only references known factor IDs. Any violation is reported as a
// *CatalogIntegrityError.
func NewCatalog(factors []domain.RiskFactor, patterns []domain.InjuryPattern) (*Catalog, error) {
	c := &Catalog{
		factors:  make([]domain.RiskFactor, 0, len(factors)),
		byID:     make(map[domain.FactorID]int, len(factors)),
		patterns: make([]domain.InjuryPattern, 0, len(patterns)),
	}

	for _, f := range factors {
		if _, dup := c.byID[f.ID]; dup {
			return nil, &CatalogIntegrityError{Reason: fmt.Sprintf("duplicate factor id %q", f.ID)}
		}
		if f.Weight < 0 || f.Weight > 1 {
			return nil, &CatalogIntegrityError{
				Reason: fmt.Sprintf("factor %q weight %.2f outside [0,1]", f.ID, f.Weight),
			}
		}
		if f.Polarity != domain.HigherIsWorse && f.Polarity != domain.LowerIsWorse {
			return nil, &CatalogIntegrityError{
				Reason: fmt.Sprintf("factor %q has unknown polarity %q", f.ID, f.Polarity),
			}
		}
		c.byID[f.ID] = len(c.factors)
		c.factors = append(c.factors, f)
	}

	var unresolved []UnresolvedReference
	for _, p := range patterns {
		for _, id := range p.AssociatedFactorIDs {
			if _, ok := c.byID[id]; !ok {
				unresolved = append(unresolved, UnresolvedReference{PatternID: p.ID, FactorID: id})
			}
		}
		c.patterns = append(c.patterns, clonePattern(p))
	}
	if len(unresolved) > 0 {
		return nil, &CatalogIntegrityError{
			Reason:     "patterns reference unknown risk factors",
			Unresolved: unresolved,
		}
	}

	return c, nil
}

// NewDefaultCatalog builds the built-in 14-factor, 5-pattern catalog.
func NewDefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultRiskFactors(), DefaultInjuryPatterns())
}

// Factors returns the risk factors in catalog order.
func (c *Catalog) Factors() []domain.RiskFactor {
	return slices.Clone(c.factors)
}

// Patterns returns the injury patterns in catalog order.
func (c *Catalog) Patterns() []domain.InjuryPattern {
	out := make([]domain.InjuryPattern, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = clonePattern(p)
	}
	return out
}

// Factor looks up a risk factor by ID.
func (c *Catalog) Factor(id domain.FactorID) (domain.RiskFactor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.RiskFactor{}, false
	}
	return c.factors[i], true
}

func clonePattern(p domain.InjuryPattern) domain.InjuryPattern {
	p.AssociatedFactorIDs = slices.Clone(p.AssociatedFactorIDs)
	p.Symptoms = slices.Clone(p.Symptoms)
	p.PreventionTips = slices.Clone(p.PreventionTips)
	return p
}

// DefaultRiskFactors returns the built-in risk factor definitions.
func DefaultRiskFactors() []domain.RiskFactor {
	return []domain.RiskFactor{
		{
			ID:              domain.FactorHighImpact,
			Name:            "Alto impacto",
			Description:     "Forças de impacto elevadas a cada passada",
			Weight:          0.25,
			Category:        domain.CategoryBiomechanical,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 1.5,
			HighThreshold:   1.8,
		},
		{
			ID:              domain.FactorAsymmetry,
			Name:            "Assimetria",
			Description:     "Diferença entre os lados esquerdo e direito da passada",
			Weight:          0.20,
			Category:        domain.CategoryBiomechanical,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 8,
			HighThreshold:   15,
		},
		{
			ID:              domain.FactorOverstriding,
			Name:            "Passada excessiva",
			Description:     "Pé aterrissando muito à frente do centro de massa",
			Weight:          0.18,
			Category:        domain.CategoryBiomechanical,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 0.5,
			HighThreshold:   0.7,
		},
		{
			ID:              domain.FactorLowCadence,
			Name:            "Cadência baixa",
			Description:     "Poucos passos por minuto",
			Weight:          0.15,
			Category:        domain.CategoryBiomechanical,
			Polarity:        domain.LowerIsWorse,
			MediumThreshold: 170,
			HighThreshold:   160,
		},
		{
			ID:              domain.FactorHighWeeklyDistance,
			Name:            "Volume semanal alto",
			Description:     "Quilometragem acumulada acima da capacidade de adaptação",
			Weight:          0.22,
			Category:        domain.CategoryTraining,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 50,
			HighThreshold:   80,
		},
		{
			ID:              domain.FactorInsufficientRest,
			Name:            "Descanso insuficiente",
			Description:     "Poucos dias de baixa intensidade na semana",
			Weight:          0.20,
			Category:        domain.CategoryTraining,
			Polarity:        domain.LowerIsWorse,
			MediumThreshold: 3,
			HighThreshold:   2,
		},
		{
			ID:              domain.FactorConsecutiveDays,
			Name:            "Dias consecutivos",
			Description:     "Sequência longa de dias de treino sem pausa",
			Weight:          0.18,
			Category:        domain.CategoryTraining,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 3,
			HighThreshold:   5,
		},
		{
			ID:              domain.FactorHighIntensity,
			Name:            "Intensidade alta",
			Description:     "Intensidade média de treino elevada",
			Weight:          0.16,
			Category:        domain.CategoryTraining,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 65,
			HighThreshold:   80,
		},
		{
			ID:              domain.FactorHighFatigue,
			Name:            "Fadiga alta",
			Description:     "Nível de fadiga percebida elevado",
			Weight:          0.24,
			Category:        domain.CategoryPhysiological,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 50,
			HighThreshold:   70,
		},
		{
			ID:              domain.FactorPoorSleep,
			Name:            "Sono ruim",
			Description:     "Qualidade de sono abaixo do necessário para recuperação",
			Weight:          0.20,
			Category:        domain.CategoryPhysiological,
			Polarity:        domain.LowerIsWorse,
			MediumThreshold: 75,
			HighThreshold:   60,
		},
		{
			ID:              domain.FactorLowHRV,
			Name:            "VFC baixa",
			Description:     "Variabilidade da frequência cardíaca reduzida",
			Weight:          0.18,
			Category:        domain.CategoryPhysiological,
			Polarity:        domain.LowerIsWorse,
			MediumThreshold: 55,
			HighThreshold:   40,
		},
		{
			ID:              domain.FactorHighStress,
			Name:            "Estresse alto",
			Description:     "Nível de estresse elevado",
			Weight:          0.16,
			Category:        domain.CategoryPhysiological,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 50,
			HighThreshold:   70,
		},
		{
			ID:              domain.FactorHardSurface,
			Name:            "Superfície dura",
			Description:     "Proporção de treinos em asfalto",
			Weight:          0.15,
			Category:        domain.CategoryEnvironmental,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 0.4,
			HighThreshold:   0.7,
		},
		{
			ID:              domain.FactorElevationChange,
			Name:            "Variação de altimetria",
			Description:     "Ganho de elevação médio por treino",
			Weight:          0.12,
			Category:        domain.CategoryEnvironmental,
			Polarity:        domain.HigherIsWorse,
			MediumThreshold: 100,
			HighThreshold:   200,
		},
	}
}

// DefaultInjuryPatterns returns the built-in injury pattern definitions.
func DefaultInjuryPatterns() []domain.InjuryPattern {
	return []domain.InjuryPattern{
		{
			ID:          domain.PatternRunnerKnee,
			Name:        "Joelho de corredor",
			Description: "Dor ao redor da patela causada por sobrecarga repetitiva",
			AssociatedFactorIDs: []domain.FactorID{
				domain.FactorHighImpact,
				domain.FactorOverstriding,
				domain.FactorHighWeeklyDistance,
				domain.FactorInsufficientRest,
			},
			Symptoms: []string{
				"Dor ao redor ou atrás da patela",
				"Dor ao descer escadas",
				"Estalos no joelho",
			},
			PreventionTips: []string{
				"Fortaleça quadríceps e glúteos",
				"Aumente a cadência para reduzir a passada",
				"Progrida o volume gradualmente",
			},
			Severity: domain.SeverityMedium,
			BodyPart: domain.BodyPartKnee,
		},
		{
			ID:          domain.PatternPatellarTendonitis,
			Name:        "Tendinite patelar",
			Description: "Inflamação do tendão que liga a patela à tíbia",
			AssociatedFactorIDs: []domain.FactorID{
				domain.FactorHighImpact,
				domain.FactorHighIntensity,
				domain.FactorConsecutiveDays,
				domain.FactorHardSurface,
			},
			Symptoms: []string{
				"Dor abaixo da patela",
				"Rigidez ao acordar",
				"Dor ao saltar ou agachar",
			},
			PreventionTips: []string{
				"Inclua exercícios excêntricos para o quadríceps",
				"Alterne treinos intensos com dias leves",
				"Prefira superfícies mais macias",
			},
			Severity: domain.SeverityMedium,
			BodyPart: domain.BodyPartKnee,
		},
		{
			ID:          domain.PatternShinSplints,
			Name:        "Canelite",
			Description: "Dor ao longo da borda interna da tíbia",
			AssociatedFactorIDs: []domain.FactorID{
				domain.FactorHighWeeklyDistance,
				domain.FactorInsufficientRest,
				domain.FactorHardSurface,
				domain.FactorOverstriding,
			},
			Symptoms: []string{
				"Dor na parte interna da canela",
				"Sensibilidade ao toque na tíbia",
				"Dor que piora durante a corrida",
			},
			PreventionTips: []string{
				"Reduza o volume semanal temporariamente",
				"Corra em superfícies mais macias",
				"Fortaleça a musculatura da panturrilha",
			},
			Severity: domain.SeverityMedium,
			BodyPart: domain.BodyPartShin,
		},
		{
			ID:          domain.PatternAnkleSprain,
			Name:        "Entorse de tornozelo",
			Description: "Lesão dos ligamentos do tornozelo por torção",
			AssociatedFactorIDs: []domain.FactorID{
				domain.FactorAsymmetry,
				domain.FactorElevationChange,
				domain.FactorHighFatigue,
			},
			Symptoms: []string{
				"Dor e inchaço no tornozelo",
				"Hematoma na lateral do pé",
				"Instabilidade ao apoiar o pé",
			},
			PreventionTips: []string{
				"Treine equilíbrio e propriocepção",
				"Evite terrenos irregulares quando estiver cansado",
				"Use calçados com boa estabilidade",
			},
			Severity: domain.SeverityHigh,
			BodyPart: domain.BodyPartAnkle,
		},
		{
			ID:          domain.PatternPlantarFasciitis,
			Name:        "Fascite plantar",
			Description: "Inflamação da fáscia na sola do pé",
			AssociatedFactorIDs: []domain.FactorID{
				domain.FactorHighImpact,
				domain.FactorHardSurface,
				domain.FactorOverstriding,
				domain.FactorInsufficientRest,
			},
			Symptoms: []string{
				"Dor no calcanhar ao dar os primeiros passos",
				"Dor após longos períodos em pé",
				"Rigidez na sola do pé",
			},
			PreventionTips: []string{
				"Alongue a fáscia plantar e a panturrilha",
				"Troque tênis desgastados",
				"Evite aumentar o volume em asfalto de forma brusca",
			},
			Severity: domain.SeverityMedium,
			BodyPart: domain.BodyPartFoot,
		},
	}
}
