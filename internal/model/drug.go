package model

import "time"

// Interaction severity levels, ordered from least to most serious.
const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeveritySevere   = "severe"
)

// Drug represents a reference drug record.
type Drug struct {
	ID                int64     `json:"-"`
	DrugID            string    `json:"drug_id"`
	Name              string    `json:"name"`
	GenericName       string    `json:"generic_name"`
	BrandNames        []string  `json:"brand_names"`
	DrugClass         string    `json:"drug_class"`
	MechanismOfAction string    `json:"mechanism_of_action"`
	Indications       []string  `json:"indications"`
	Contraindications []string  `json:"contraindications"`
	DosageForms       []string  `json:"dosage_forms"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DrugInteraction represents a known pairwise interaction in the reference catalog.
type DrugInteraction struct {
	ID                        int64
	InteractionID             string
	Drug1ID                   int64
	Drug2ID                   int64
	Drug1Name                 string
	Drug2Name                 string
	Severity                  string
	Description               string
	Mechanism                 string
	ClinicalEffects           []string
	ManagementRecommendations string
	EvidenceLevel             string
	CreatedAt                 time.Time
}

// DosageRule is an age-banded dosage recommendation for a drug.
type DosageRule struct {
	ID                    int64
	DrugID                int64
	AgeGroup              string
	MinAge                int
	MaxAge                int
	Indication            string
	DosageAmount          string
	Frequency             string
	Route                 string
	Duration              string
	SpecialConsiderations string
}

// Alternative is a substitute medication suggestion for a drug.
type Alternative struct {
	ID                     int64
	OriginalDrugID         int64
	AlternativeDrugID      int64
	AlternativeName        string
	ReasonForAlternative   string
	EfficacyComparison     string
	SafetyProfile          string
	TherapeuticEquivalence string
}

// MedicationRef is a free-form medication reference supplied by a caller.
type MedicationRef struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// CheckInteractionsRequest represents a drug interaction check request.
type CheckInteractionsRequest struct {
	Medications []MedicationRef `json:"medications" validate:"required,min=2,dive"`
	PatientAge  *int            `json:"patient_age,omitempty" validate:"omitempty,min=0,max=120"`
}

// InteractionFinding is a single detected interaction between two medications.
type InteractionFinding struct {
	Drug1          string `json:"drug1"`
	Drug2          string `json:"drug2"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// AlternativeOption is an alternative medication suggestion in a recommendation.
type AlternativeOption struct {
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Efficacy string `json:"efficacy"`
}

// Recommendation is a single advisory item attached to a check result.
type Recommendation struct {
	Type           string              `json:"type"`
	Medication     string              `json:"medication,omitempty"`
	OriginalDrug   string              `json:"original_drug,omitempty"`
	Recommendation string              `json:"recommendation,omitempty"`
	Alternatives   []AlternativeOption `json:"alternatives,omitempty"`
}

// SeverityBreakdown counts detected interactions per severity level.
type SeverityBreakdown struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
	Severe   int `json:"severe"`
}

// CheckInteractionsResponse is the result of a drug interaction check.
type CheckInteractionsResponse struct {
	Interactions           []InteractionFinding `json:"interactions"`
	Recommendations        []Recommendation     `json:"recommendations"`
	OverallRiskScore       int                  `json:"overall_risk_score"`
	TotalInteractionsFound int                  `json:"total_interactions_found"`
	SeverityBreakdown      SeverityBreakdown    `json:"severity_breakdown"`
}

// InteractionCheck is a persisted record of one interaction check.
type InteractionCheck struct {
	ID                string               `json:"id"`
	UserID            int64                `json:"-"`
	Medications       []MedicationRef      `json:"medications"`
	PatientAge        *int                 `json:"patient_age,omitempty"`
	InteractionsFound []InteractionFinding `json:"interactions_found"`
	Recommendations   []Recommendation     `json:"recommendations"`
	RiskScore         int                  `json:"risk_score"`
	CheckedAt         time.Time            `json:"checked_at"`
}

// SearchResult is a single medication search hit.
type SearchResult struct {
	Name        string `json:"name"`
	GenericName string `json:"generic_name"`
	DrugID      string `json:"drug_id"`
}

// SearchResponse wraps medication search hits.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
