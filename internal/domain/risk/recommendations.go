package risk

import "github.com/phrazzld/stride-risk/internal/domain"

// MaxRecommendations caps the list returned by GenerateRecommendations.
const MaxRecommendations = 5

// DefaultRecommendation is the single recommendation returned when a user has
// no samples to assess.
const DefaultRecommendation = "Continue monitorando seus padrões de corrida"

var factorRecommendations = map[domain.FactorID][2]string{
	domain.FactorHighImpact: {
		"Aumente a cadência em 5-10% para reduzir o impacto",
		"Considere tênis com maior amortecimento",
	},
	domain.FactorAsymmetry: {
		"Inclua exercícios de fortalecimento unilateral",
		"Procure um fisioterapeuta para avaliar a assimetria da passada",
	},
	domain.FactorHighWeeklyDistance: {
		"Reduza o volume semanal em 10-20%",
		"Aumente a quilometragem no máximo 10% por semana",
	},
	domain.FactorInsufficientRest: {
		"Inclua pelo menos 2 dias de descanso por semana",
		"Priorize recuperação ativa entre treinos intensos",
	},
	domain.FactorHighFatigue: {
		"Reduza a intensidade dos treinos nos próximos dias",
		"Melhore a qualidade do sono e a hidratação",
	},
}

var fallbackRecommendations = []string{
	"Mantenha seu plano de treino atual",
	"Continue acompanhando seus indicadores regularmente",
}

// GenerateRecommendations walks the high-tier results in order and collects
// the recommendations of each handled factor. When nothing qualifies the
// generic fallback is used. The result never exceeds MaxRecommendations.
func GenerateRecommendations(results []domain.RiskFactorResult) []string {
	recs := make([]string, 0, MaxRecommendations)
	for _, r := range results {
		if r.Tier != domain.TierHigh {
			continue
		}
		if pair, ok := factorRecommendations[r.Factor.ID]; ok {
			recs = append(recs, pair[0], pair[1])
		}
	}

	if len(recs) == 0 {
		recs = append(recs, fallbackRecommendations...)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
