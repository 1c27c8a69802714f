package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pharmalytics/nexus-go/internal/model"
)

var (
	ErrDrugNotFound        = errors.New("drug not found")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrNoDosageRule        = errors.New("no dosage rule for drug and age")
)

// DrugRepository handles the drug reference catalog.
type DrugRepository struct {
	db *sql.DB
}

// NewDrugRepository creates a new DrugRepository.
func NewDrugRepository(db *sql.DB) *DrugRepository {
	return &DrugRepository{db: db}
}

const drugColumns = `id, drug_id, name, generic_name, brand_names, drug_class,
	mechanism_of_action, indications, contraindications, dosage_forms, created_at, updated_at`

func scanDrug(row interface{ Scan(...any) error }) (*model.Drug, error) {
	d := &model.Drug{}
	var brands, indications, contra, forms []byte
	err := row.Scan(
		&d.ID, &d.DrugID, &d.Name, &d.GenericName, &brands, &d.DrugClass,
		&d.MechanismOfAction, &indications, &contra, &forms, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalList(brands, &d.BrandNames); err != nil {
		return nil, err
	}
	if err := unmarshalList(indications, &d.Indications); err != nil {
		return nil, err
	}
	if err := unmarshalList(contra, &d.Contraindications); err != nil {
		return nil, err
	}
	if err := unmarshalList(forms, &d.DosageForms); err != nil {
		return nil, err
	}
	return d, nil
}

// List retrieves drugs, optionally filtered by a case-insensitive name match.
func (r *DrugRepository) List(ctx context.Context, search string, limit int) ([]model.Drug, error) {
	query := `SELECT ` + drugColumns + ` FROM drugs`
	args := []any{}
	if search != "" {
		query += ` WHERE name LIKE ? OR generic_name LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY name LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drugs []model.Drug
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, err
		}
		drugs = append(drugs, *d)
	}
	return drugs, rows.Err()
}

// GetByDrugID retrieves a drug by its external catalog identifier.
func (r *DrugRepository) GetByDrugID(ctx context.Context, drugID string) (*model.Drug, error) {
	d, err := scanDrug(r.db.QueryRowContext(ctx,
		`SELECT `+drugColumns+` FROM drugs WHERE drug_id = ?`, drugID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDrugNotFound
	}
	return d, err
}

// FindByName retrieves the first drug whose name or generic name matches.
func (r *DrugRepository) FindByName(ctx context.Context, name string) (*model.Drug, error) {
	pattern := "%" + name + "%"
	d, err := scanDrug(r.db.QueryRowContext(ctx,
		`SELECT `+drugColumns+` FROM drugs WHERE name LIKE ? OR generic_name LIKE ? ORDER BY id LIMIT 1`,
		pattern, pattern))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDrugNotFound
	}
	return d, err
}

// Search returns compact search hits for a free-text query.
func (r *DrugRepository) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, generic_name, drug_id FROM drugs
		 WHERE name LIKE ? OR generic_name LIKE ? ORDER BY name LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.SearchResult
	for rows.Next() {
		var res model.SearchResult
		if err := rows.Scan(&res.Name, &res.GenericName, &res.DrugID); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// FindInteraction looks up a known interaction between two drug names in either order.
func (r *DrugRepository) FindInteraction(ctx context.Context, name1, name2 string) (*model.DrugInteraction, error) {
	query := `SELECT i.id, i.interaction_id, i.drug1_id, i.drug2_id, d1.name, d2.name,
			i.severity, i.description, i.mechanism, i.clinical_effects,
			i.management_recommendations, i.evidence_level, i.created_at
		FROM drug_interactions i
		JOIN drugs d1 ON d1.id = i.drug1_id
		JOIN drugs d2 ON d2.id = i.drug2_id
		WHERE (d1.name LIKE ? AND d2.name LIKE ?) OR (d1.name LIKE ? AND d2.name LIKE ?)
		LIMIT 1`

	p1, p2 := "%"+name1+"%", "%"+name2+"%"
	in := &model.DrugInteraction{}
	var effects []byte
	err := r.db.QueryRowContext(ctx, query, p1, p2, p2, p1).Scan(
		&in.ID, &in.InteractionID, &in.Drug1ID, &in.Drug2ID, &in.Drug1Name, &in.Drug2Name,
		&in.Severity, &in.Description, &in.Mechanism, &effects,
		&in.ManagementRecommendations, &in.EvidenceLevel, &in.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInteractionNotFound
		}
		return nil, err
	}
	if err := unmarshalList(effects, &in.ClinicalEffects); err != nil {
		return nil, err
	}
	return in, nil
}

// FindDosageRule retrieves the dosage rule covering the given age for a drug.
func (r *DrugRepository) FindDosageRule(ctx context.Context, drugID int64, age int) (*model.DosageRule, error) {
	rule := &model.DosageRule{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, drug_id, age_group, min_age, max_age, indication, dosage_amount,
			frequency, route, duration, special_considerations
		 FROM dosage_rules WHERE drug_id = ? AND min_age <= ? AND max_age >= ? LIMIT 1`,
		drugID, age, age,
	).Scan(
		&rule.ID, &rule.DrugID, &rule.AgeGroup, &rule.MinAge, &rule.MaxAge,
		&rule.Indication, &rule.DosageAmount, &rule.Frequency, &rule.Route,
		&rule.Duration, &rule.SpecialConsiderations,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDosageRule
		}
		return nil, err
	}
	return rule, nil
}

// ListAlternatives retrieves substitute suggestions for a drug.
func (r *DrugRepository) ListAlternatives(ctx context.Context, drugID int64, limit int) ([]model.Alternative, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.original_drug_id, a.alternative_drug_id, d.name,
			a.reason_for_alternative, a.efficacy_comparison, a.safety_profile, a.therapeutic_equivalence
		 FROM alternative_medications a
		 JOIN drugs d ON d.id = a.alternative_drug_id
		 WHERE a.original_drug_id = ? LIMIT ?`,
		drugID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alts []model.Alternative
	for rows.Next() {
		var a model.Alternative
		if err := rows.Scan(
			&a.ID, &a.OriginalDrugID, &a.AlternativeDrugID, &a.AlternativeName,
			&a.ReasonForAlternative, &a.EfficacyComparison, &a.SafetyProfile, &a.TherapeuticEquivalence,
		); err != nil {
			return nil, err
		}
		alts = append(alts, a)
	}
	return alts, rows.Err()
}

// UpsertDrug inserts or refreshes a catalog drug keyed by its external drug_id.
func (r *DrugRepository) UpsertDrug(ctx context.Context, d *model.Drug) error {
	brands, err := marshalList(d.BrandNames)
	if err != nil {
		return err
	}
	indications, err := marshalList(d.Indications)
	if err != nil {
		return err
	}
	contra, err := marshalList(d.Contraindications)
	if err != nil {
		return err
	}
	forms, err := marshalList(d.DosageForms)
	if err != nil {
		return err
	}

	query := `INSERT INTO drugs
			(drug_id, name, generic_name, brand_names, drug_class, mechanism_of_action,
			 indications, contraindications, dosage_forms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			generic_name = VALUES(generic_name),
			brand_names = VALUES(brand_names),
			drug_class = VALUES(drug_class),
			mechanism_of_action = VALUES(mechanism_of_action),
			indications = VALUES(indications),
			contraindications = VALUES(contraindications),
			dosage_forms = VALUES(dosage_forms),
			updated_at = CURRENT_TIMESTAMP`

	result, err := r.db.ExecContext(ctx, query,
		d.DrugID, d.Name, d.GenericName, brands, d.DrugClass, d.MechanismOfAction,
		indications, contra, forms,
	)
	if err != nil {
		return err
	}
	if id, err := result.LastInsertId(); err == nil && id > 0 {
		d.ID = id
	}
	return nil
}

// UpsertInteraction inserts or refreshes a known interaction, resolving both
// drugs by name. Returns ErrDrugNotFound when either side is not in the catalog.
func (r *DrugRepository) UpsertInteraction(ctx context.Context, in *model.DrugInteraction) error {
	d1, err := r.FindByName(ctx, in.Drug1Name)
	if err != nil {
		return err
	}
	d2, err := r.FindByName(ctx, in.Drug2Name)
	if err != nil {
		return err
	}

	effects, err := marshalList(in.ClinicalEffects)
	if err != nil {
		return err
	}

	// The pair is stored lowest id first so uq_interaction_pair also catches
	// the same interaction submitted with the drugs reversed.
	id1, id2 := orderedPair(d1.ID, d2.ID)

	query := `INSERT INTO drug_interactions
			(interaction_id, drug1_id, drug2_id, severity, description, mechanism,
			 clinical_effects, management_recommendations, evidence_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			severity = VALUES(severity),
			description = VALUES(description),
			mechanism = VALUES(mechanism),
			clinical_effects = VALUES(clinical_effects),
			management_recommendations = VALUES(management_recommendations),
			evidence_level = VALUES(evidence_level)`

	_, err = r.db.ExecContext(ctx, query,
		in.InteractionID, id1, id2, in.Severity, in.Description, in.Mechanism,
		effects, in.ManagementRecommendations, in.EvidenceLevel,
	)
	return err
}

// orderedPair returns the two ids with the smaller one first.
func orderedPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
