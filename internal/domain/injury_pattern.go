package domain

// PatternID identifies an injury pattern in the catalog.
type PatternID string

// Injury pattern identifiers
const (
	PatternRunnerKnee         PatternID = "runner_knee"
	PatternPatellarTendonitis PatternID = "patellar_tendonitis"
	PatternShinSplints        PatternID = "shin_splints"
	PatternAnkleSprain        PatternID = "ankle_sprain"
	PatternPlantarFasciitis   PatternID = "plantar_fasciitis"
)

// Severity grades how serious an injury pattern is.
type Severity string

// Possible severities
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// BodyPart is the anatomical region an injury pattern affects.
type BodyPart string

// Possible body parts
const (
	BodyPartKnee  BodyPart = "knee"
	BodyPartShin  BodyPart = "shin"
	BodyPartAnkle BodyPart = "ankle"
	BodyPartFoot  BodyPart = "foot"
)

// InjuryPattern is a named injury linked to the risk factors that predict it.
type InjuryPattern struct {
	ID                  PatternID  `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	AssociatedFactorIDs []FactorID `json:"associated_factor_ids"`
	Symptoms            []string   `json:"symptoms"`
	PreventionTips      []string   `json:"prevention_tips"`
	Severity            Severity   `json:"severity"`
	BodyPart            BodyPart   `json:"body_part"`
}
