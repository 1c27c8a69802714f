package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalytics/nexus-go/internal/model"
	"github.com/pharmalytics/nexus-go/internal/repository"
)

var ErrDrugNameRequired = errors.New("drug_name is required")

// AnalysisStore persists analyzer invocation records.
type AnalysisStore interface {
	Create(ctx context.Context, a *model.Analysis) error
}

// DosageCatalog is the slice of the drug catalog the analyzers consult.
type DosageCatalog interface {
	FindByName(ctx context.Context, name string) (*model.Drug, error)
	FindDosageRule(ctx context.Context, drugID int64, age int) (*model.DosageRule, error)
}

// AnalysisService runs the clinical rule engines and records every invocation.
type AnalysisService struct {
	store   AnalysisStore
	catalog DosageCatalog
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(store AnalysisStore, catalog DosageCatalog) *AnalysisService {
	return &AnalysisService{store: store, catalog: catalog}
}

// AnalyzeInteraction runs the class rule engine over every medication pair.
func (s *AnalysisService) AnalyzeInteraction(ctx context.Context, userID int64, req model.AnalyzeInteractionRequest) (model.AnalyzeInteractionResponse, error) {
	if len(req.Medications) < 2 {
		return model.AnalyzeInteractionResponse{}, ErrTooFewMedications
	}
	started := time.Now()

	analyses := []model.PairAnalysis{}
	overall := "none"
	totalPairs := 0

	for i := 0; i < len(req.Medications); i++ {
		for j := i + 1; j < len(req.Medications); j++ {
			totalPairs++
			name1 := req.Medications[i].Name
			name2 := req.Medications[j].Name

			rule, ok := classRuleFor(name1, name2)
			if !ok {
				continue
			}

			recommendations := []string{rule.recommendation}
			if req.PatientAge != nil && *req.PatientAge >= 65 {
				recommendations = append(recommendations, "elderly patient: start at the lowest effective doses and reassess frequently")
			}

			analyses = append(analyses, model.PairAnalysis{
				Drug1:           titleName(name1),
				Drug2:           titleName(name2),
				Severity:        rule.severity,
				Mechanism:       rule.mechanism,
				ClinicalEffects: rule.clinicalEffects,
				Recommendations: recommendations,
				Monitoring:      rule.monitoring,
			})
			overall = maxSeverity(overall, rule.severity)
		}
	}

	confidence := round2(0.5 + 0.45*float64(len(analyses))/float64(totalPairs))

	resp := model.AnalyzeInteractionResponse{
		Pairs:           totalPairs,
		Analyses:        analyses,
		OverallSeverity: overall,
		Confidence:      confidence,
	}

	if err := s.record(ctx, userID, model.AnalysisInteraction, req, resp, confidence, started); err != nil {
		return model.AnalyzeInteractionResponse{}, err
	}
	return resp, nil
}

// DosageRecommendation produces an age-banded dosing suggestion, preferring
// catalog dosage rules and falling back to general rules of thumb.
func (s *AnalysisService) DosageRecommendation(ctx context.Context, userID int64, req model.DosageRequest) (model.DosageResponse, error) {
	if strings.TrimSpace(req.DrugName) == "" {
		return model.DosageResponse{}, ErrDrugNameRequired
	}
	started := time.Now()

	resp := model.DosageResponse{
		DrugName:        titleName(req.DrugName),
		AgeGroup:        ageGroup(req.PatientAge),
		RecommendedDose: "per prescribing information",
		Frequency:       "per prescribing information",
		Route:           "oral",
		Adjustments:     []string{},
		Warnings:        []string{},
		Monitoring:      monitoringFor(req.DrugName),
	}

	confidence := 0.6
	rule, err := s.catalogRule(ctx, req.DrugName, req.PatientAge)
	if err != nil {
		return model.DosageResponse{}, err
	}
	if rule != nil {
		resp.AgeGroup = rule.AgeGroup
		resp.RecommendedDose = rule.DosageAmount
		resp.Frequency = rule.Frequency
		resp.Route = rule.Route
		if rule.SpecialConsiderations != "" {
			resp.Warnings = append(resp.Warnings, rule.SpecialConsiderations)
		}
		confidence = 0.9
	}

	if req.PatientAge >= 65 {
		resp.Adjustments = append(resp.Adjustments, "reduce initial dose by 50% in elderly patients and titrate slowly")
	}
	if req.PatientAge < 12 {
		adj := "dose by body weight; verify against a pediatric reference"
		if req.PatientWeight != nil {
			adj = fmt.Sprintf("dose by body weight (%.1f kg); verify against a pediatric reference", *req.PatientWeight)
		}
		resp.Adjustments = append(resp.Adjustments, adj)
	}

	for _, cond := range req.MedicalConditions {
		c := strings.ToLower(cond)
		switch {
		case strings.Contains(c, "renal") || strings.Contains(c, "kidney"):
			resp.Warnings = append(resp.Warnings, "adjust dose for renal impairment")
		case strings.Contains(c, "hepatic") || strings.Contains(c, "liver"):
			resp.Warnings = append(resp.Warnings, "adjust dose for hepatic impairment")
		case strings.Contains(c, "pregnan"):
			resp.Warnings = append(resp.Warnings, "verify pregnancy safety category before prescribing")
		}
	}

	if err := s.record(ctx, userID, model.AnalysisDosage, req, resp, confidence, started); err != nil {
		return model.DosageResponse{}, err
	}
	return resp, nil
}

// SideEffects predicts adverse effects for a medication list and patient.
func (s *AnalysisService) SideEffects(ctx context.Context, userID int64, req model.SideEffectRequest) (model.SideEffectResponse, error) {
	if len(req.Medications) == 0 {
		return model.SideEffectResponse{}, ErrTooFewMedications
	}
	started := time.Now()

	resp := model.SideEffectResponse{
		CommonSideEffects:  []string{},
		SeriousSideEffects: []string{},
		PatientRisks:       []string{},
		Precautions:        []string{},
	}

	seenCommon := map[string]bool{}
	seenSerious := map[string]bool{}
	recognized := 0
	allergyHit := false

	for _, med := range req.Medications {
		common, serious, ok := sideEffectsFor(med.Name)
		if !ok {
			continue
		}
		recognized++
		for _, e := range common {
			if !seenCommon[e] {
				seenCommon[e] = true
				resp.CommonSideEffects = append(resp.CommonSideEffects, e)
			}
		}
		for _, e := range serious {
			if !seenSerious[e] {
				seenSerious[e] = true
				resp.SeriousSideEffects = append(resp.SeriousSideEffects, e)
			}
		}
		for _, allergy := range req.PatientProfile.Allergies {
			if strings.EqualFold(strings.TrimSpace(allergy), strings.TrimSpace(med.Name)) {
				allergyHit = true
				resp.PatientRisks = append(resp.PatientRisks,
					fmt.Sprintf("documented allergy to %s", titleName(med.Name)))
			}
		}
	}

	score := 2
	if recognized > 1 {
		score += recognized - 1
	}
	if req.PatientProfile.Age >= 65 {
		score += 2
		resp.PatientRisks = append(resp.PatientRisks, "age over 65 increases sensitivity to adverse effects")
	}
	if n := len(req.PatientProfile.MedicalConditions); n > 0 {
		if n > 2 {
			n = 2
		}
		score += n
		resp.PatientRisks = append(resp.PatientRisks, "existing conditions may compound medication side effects")
	}
	if allergyHit {
		score += 2
		resp.Precautions = append(resp.Precautions, "review documented allergies with a pharmacist before administration")
	}
	if score > 10 {
		score = 10
	}
	resp.RiskScore = score

	if len(resp.SeriousSideEffects) > 0 {
		resp.Precautions = append(resp.Precautions, "counsel the patient on serious side effect warning signs")
	}

	confidence := 0.5
	if recognized > 0 {
		confidence = round2(0.5 + 0.4*float64(recognized)/float64(len(req.Medications)))
	}
	if err := s.record(ctx, userID, model.AnalysisSideEffect, req, resp, confidence, started); err != nil {
		return model.SideEffectResponse{}, err
	}
	return resp, nil
}

// ExtractFromText pulls medication mentions out of free clinical text.
func (s *AnalysisService) ExtractFromText(ctx context.Context, userID int64, req model.ExtractRequest) (model.ExtractResponse, error) {
	started := time.Now()

	meds := extractMedications(req.Text)
	confidence := 0.0
	if len(meds) > 0 {
		filled := 0
		for _, m := range meds {
			if m.Dosage != "" {
				filled++
			}
			if m.Frequency != "" {
				filled++
			}
			if m.Route != "" {
				filled++
			}
		}
		confidence = round2(0.6 + 0.1*float64(filled)/float64(len(meds)))
	}

	resp := model.ExtractResponse{
		Medications: meds,
		Confidence:  confidence,
	}

	if err := s.record(ctx, userID, model.AnalysisTextExtraction, req, resp, confidence, started); err != nil {
		return model.ExtractResponse{}, err
	}
	return resp, nil
}

// catalogRule looks up a dosage rule in the catalog; a missing drug or rule
// is not an error, it simply yields no rule.
func (s *AnalysisService) catalogRule(ctx context.Context, drugName string, age int) (*model.DosageRule, error) {
	drug, err := s.catalog.FindByName(ctx, drugName)
	if err != nil {
		if errors.Is(err, repository.ErrDrugNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rule, err := s.catalog.FindDosageRule(ctx, drug.ID, age)
	if err != nil {
		if errors.Is(err, repository.ErrNoDosageRule) {
			return nil, nil
		}
		return nil, err
	}
	return rule, nil
}

// record persists one analyzer invocation.
func (s *AnalysisService) record(ctx context.Context, userID int64, typ string, input, result any, confidence float64, started time.Time) error {
	in, err := json.Marshal(input)
	if err != nil {
		return err
	}
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.store.Create(ctx, &model.Analysis{
		ID:              uuid.New().String(),
		UserID:          userID,
		AnalysisType:    typ,
		InputData:       in,
		ResultData:      out,
		ConfidenceScore: confidence,
		ProcessingTime:  time.Since(started).Seconds(),
	})
}

// ageGroup buckets a patient age into a dosing band.
func ageGroup(age int) string {
	switch {
	case age < 12:
		return "pediatric"
	case age < 18:
		return "adolescent"
	case age < 65:
		return "adult"
	}
	return "geriatric"
}

// monitoringFor suggests monitoring parameters based on drug class.
func monitoringFor(drugName string) []string {
	switch classOf(drugName) {
	case classAnticoagulant:
		return []string{"INR", "signs of bleeding"}
	case classStatin:
		return []string{"creatine kinase", "liver function"}
	case classACEInhibitor:
		return []string{"serum potassium", "serum creatinine", "blood pressure"}
	case classBiguanide:
		return []string{"renal function", "vitamin B12"}
	case classNSAID:
		return []string{"renal function", "gastrointestinal symptoms"}
	case classSSRI:
		return []string{"mood changes", "serum sodium"}
	case classOpioid:
		return []string{"respiratory rate", "sedation level"}
	}
	return []string{"clinical response"}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
