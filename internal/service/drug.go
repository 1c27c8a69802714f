package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pharmalytics/nexus-go/internal/model"
	"github.com/pharmalytics/nexus-go/internal/repository"
)

var (
	ErrTooFewMedications = errors.New("at least 2 medications are required for interaction checking")
	ErrQueryTooShort     = errors.New("query must be at least 2 characters")
	ErrDrugNotFound      = errors.New("drug not found")
)

const (
	drugListLimit    = 100
	searchLimit      = 20
	historyLimit     = 10
	alternativeLimit = 3
)

// DrugCatalog is the catalog surface the drug service reads.
type DrugCatalog interface {
	List(ctx context.Context, search string, limit int) ([]model.Drug, error)
	GetByDrugID(ctx context.Context, drugID string) (*model.Drug, error)
	Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error)
	FindInteraction(ctx context.Context, name1, name2 string) (*model.DrugInteraction, error)
	FindByName(ctx context.Context, name string) (*model.Drug, error)
	FindDosageRule(ctx context.Context, drugID int64, age int) (*model.DosageRule, error)
	ListAlternatives(ctx context.Context, drugID int64, limit int) ([]model.Alternative, error)
}

// CheckStore persists interaction check history.
type CheckStore interface {
	Create(ctx context.Context, check *model.InteractionCheck) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.InteractionCheck, error)
}

// DrugService handles the drug catalog and interaction checking.
type DrugService struct {
	drugs  DrugCatalog
	checks CheckStore
}

// NewDrugService creates a new DrugService.
func NewDrugService(drugs DrugCatalog, checks CheckStore) *DrugService {
	return &DrugService{drugs: drugs, checks: checks}
}

// ListDrugs returns catalog drugs, optionally filtered by name.
func (s *DrugService) ListDrugs(ctx context.Context, search string) ([]model.Drug, error) {
	drugs, err := s.drugs.List(ctx, search, drugListLimit)
	if err != nil {
		return nil, err
	}
	if drugs == nil {
		drugs = []model.Drug{}
	}
	return drugs, nil
}

// GetDrug returns one catalog drug by its external identifier.
func (s *DrugService) GetDrug(ctx context.Context, drugID string) (*model.Drug, error) {
	drug, err := s.drugs.GetByDrugID(ctx, drugID)
	if err != nil {
		if errors.Is(err, repository.ErrDrugNotFound) {
			return nil, ErrDrugNotFound
		}
		return nil, err
	}
	return drug, nil
}

// SearchMedications returns compact hits for a free-text query.
func (s *DrugService) SearchMedications(ctx context.Context, query string) (model.SearchResponse, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return model.SearchResponse{}, ErrQueryTooShort
	}

	results, err := s.drugs.Search(ctx, strings.TrimSpace(query), searchLimit)
	if err != nil {
		return model.SearchResponse{}, err
	}
	if results == nil {
		results = []model.SearchResult{}
	}
	return model.SearchResponse{Results: results}, nil
}

// CheckInteractions runs a pairwise interaction check over the supplied
// medications, collects recommendations and persists the check for history.
func (s *DrugService) CheckInteractions(ctx context.Context, userID int64, req model.CheckInteractionsRequest) (model.CheckInteractionsResponse, error) {
	if len(req.Medications) < 2 {
		return model.CheckInteractionsResponse{}, ErrTooFewMedications
	}

	findings := []model.InteractionFinding{}
	recommendations := []model.Recommendation{}
	riskScore := 0

	for i := 0; i < len(req.Medications); i++ {
		for j := i + 1; j < len(req.Medications); j++ {
			name1 := req.Medications[i].Name
			name2 := req.Medications[j].Name

			known, err := s.drugs.FindInteraction(ctx, name1, name2)
			switch {
			case err == nil:
				finding := model.InteractionFinding{
					Drug1:          titleName(name1),
					Drug2:          titleName(name2),
					Severity:       known.Severity,
					Description:    known.Description,
					Recommendation: known.ManagementRecommendations,
				}
				findings = append(findings, finding)
				if score := severityScore(known.Severity); score > riskScore {
					riskScore = score
				}
			case errors.Is(err, repository.ErrInteractionNotFound):
				// No catalog entry; the class rules below may still apply.
			default:
				return model.CheckInteractionsResponse{}, err
			}

			if rule, ok := classRuleFor(name1, name2); ok {
				recommendations = append(recommendations, model.Recommendation{
					Type:           "advice",
					Recommendation: rule.recommendation,
				})
				if score := severityScore(rule.severity); score > riskScore {
					riskScore = score
				}
			}
		}
	}

	if req.PatientAge != nil {
		dosageRecs, err := s.dosageRecommendations(ctx, req.Medications, *req.PatientAge)
		if err != nil {
			return model.CheckInteractionsResponse{}, err
		}
		recommendations = append(recommendations, dosageRecs...)
	}

	altRecs, err := s.alternativeRecommendations(ctx, findings)
	if err != nil {
		return model.CheckInteractionsResponse{}, err
	}
	recommendations = append(recommendations, altRecs...)

	resp := model.CheckInteractionsResponse{
		Interactions:           findings,
		Recommendations:        recommendations,
		OverallRiskScore:       riskScore,
		TotalInteractionsFound: len(findings),
		SeverityBreakdown:      severityBreakdown(findings),
	}

	check := &model.InteractionCheck{
		ID:                uuid.New().String(),
		UserID:            userID,
		Medications:       req.Medications,
		PatientAge:        req.PatientAge,
		InteractionsFound: findings,
		Recommendations:   recommendations,
		RiskScore:         riskScore,
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return model.CheckInteractionsResponse{}, err
	}

	return resp, nil
}

// History returns the caller's most recent interaction checks.
func (s *DrugService) History(ctx context.Context, userID int64) ([]model.InteractionCheck, error) {
	checks, err := s.checks.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	if checks == nil {
		checks = []model.InteractionCheck{}
	}
	return checks, nil
}

// dosageRecommendations builds age-specific dosage notes for medications
// present in the catalog. Medications without catalog entries are skipped.
func (s *DrugService) dosageRecommendations(ctx context.Context, meds []model.MedicationRef, age int) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	for _, med := range meds {
		drug, err := s.drugs.FindByName(ctx, med.Name)
		if err != nil {
			if errors.Is(err, repository.ErrDrugNotFound) {
				continue
			}
			return nil, err
		}

		rule, err := s.drugs.FindDosageRule(ctx, drug.ID, age)
		if err != nil {
			if errors.Is(err, repository.ErrNoDosageRule) {
				continue
			}
			return nil, err
		}

		recs = append(recs, model.Recommendation{
			Type:           "dosage",
			Medication:     med.Name,
			Recommendation: fmt.Sprintf("%s %s via %s", rule.DosageAmount, rule.Frequency, rule.Route),
		})
	}
	return recs, nil
}

// alternativeRecommendations suggests substitutes for the first drug of every
// high or severe finding.
func (s *DrugService) alternativeRecommendations(ctx context.Context, findings []model.InteractionFinding) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	for _, f := range findings {
		if f.Severity != model.SeverityHigh && f.Severity != model.SeveritySevere {
			continue
		}

		drug, err := s.drugs.FindByName(ctx, f.Drug1)
		if err != nil {
			if errors.Is(err, repository.ErrDrugNotFound) {
				continue
			}
			return nil, err
		}

		alts, err := s.drugs.ListAlternatives(ctx, drug.ID, alternativeLimit)
		if err != nil {
			return nil, err
		}
		if len(alts) == 0 {
			continue
		}

		options := make([]model.AlternativeOption, len(alts))
		for i, alt := range alts {
			options[i] = model.AlternativeOption{
				Name:     alt.AlternativeName,
				Reason:   alt.ReasonForAlternative,
				Efficacy: alt.EfficacyComparison,
			}
		}
		recs = append(recs, model.Recommendation{
			Type:         "alternative",
			OriginalDrug: f.Drug1,
			Alternatives: options,
		})
	}
	return recs, nil
}

// titleName capitalizes the first letter of each word in a medication name.
func titleName(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
