package model

import (
	"encoding/json"
	"time"
)

// Analysis types recorded for every analyzer request.
const (
	AnalysisInteraction    = "interaction"
	AnalysisDosage         = "dosage"
	AnalysisSideEffect     = "side_effect"
	AnalysisTextExtraction = "text_extraction"
)

// Analysis is a persisted record of one analyzer invocation.
type Analysis struct {
	ID              string
	UserID          int64
	AnalysisType    string
	InputData       json.RawMessage
	ResultData      json.RawMessage
	ConfidenceScore float64
	ProcessingTime  float64 // seconds
	CreatedAt       time.Time
}

// AnalyzeInteractionRequest represents an interaction analysis request.
type AnalyzeInteractionRequest struct {
	Medications []MedicationRef `json:"medications" validate:"required,min=2,dive"`
	PatientAge  *int            `json:"patient_age,omitempty" validate:"omitempty,min=0,max=120"`
}

// PairAnalysis is the analyzer output for one medication pair.
type PairAnalysis struct {
	Drug1           string   `json:"drug1"`
	Drug2           string   `json:"drug2"`
	Severity        string   `json:"severity"`
	Mechanism       string   `json:"mechanism"`
	ClinicalEffects []string `json:"clinical_effects"`
	Recommendations []string `json:"recommendations"`
	Monitoring      string   `json:"monitoring"`
}

// AnalyzeInteractionResponse is the result of an interaction analysis.
type AnalyzeInteractionResponse struct {
	Pairs           int            `json:"pairs"`
	Analyses        []PairAnalysis `json:"analyses"`
	OverallSeverity string         `json:"overall_severity"`
	Confidence      float64        `json:"confidence"`
}

// DosageRequest represents a dosage recommendation request.
type DosageRequest struct {
	DrugName          string   `json:"drug_name" validate:"required"`
	PatientAge        int      `json:"patient_age" validate:"min=0,max=120"`
	PatientWeight     *float64 `json:"patient_weight,omitempty" validate:"omitempty,gt=0"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
}

// DosageResponse is the result of a dosage recommendation.
type DosageResponse struct {
	DrugName        string   `json:"drug_name"`
	AgeGroup        string   `json:"age_group"`
	RecommendedDose string   `json:"recommended_dose"`
	Frequency       string   `json:"frequency"`
	Route           string   `json:"route"`
	Adjustments     []string `json:"adjustments"`
	Warnings        []string `json:"warnings"`
	Monitoring      []string `json:"monitoring"`
}

// PatientContext carries patient details for side effect prediction.
type PatientContext struct {
	Age               int      `json:"age,omitempty"`
	Weight            float64  `json:"weight,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
}

// SideEffectRequest represents a side effect analysis request.
type SideEffectRequest struct {
	Medications    []MedicationRef `json:"medications" validate:"required,min=1,dive"`
	PatientProfile PatientContext  `json:"patient_profile"`
}

// SideEffectResponse is the result of a side effect analysis.
type SideEffectResponse struct {
	RiskScore          int      `json:"risk_score"`
	CommonSideEffects  []string `json:"common_side_effects"`
	SeriousSideEffects []string `json:"serious_side_effects"`
	PatientRisks       []string `json:"patient_specific_risks"`
	Precautions        []string `json:"precautions"`
}

// ExtractRequest represents a medication text extraction request.
type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractedMedication is one medication mention found in free text.
type ExtractedMedication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Route     string `json:"route,omitempty"`
}

// ExtractResponse is the result of a medication text extraction.
type ExtractResponse struct {
	Medications []ExtractedMedication `json:"medications"`
	Confidence  float64               `json:"confidence"`
}
