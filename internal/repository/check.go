package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pharmalytics/nexus-go/internal/model"
)

// CheckRepository persists interaction check history.
type CheckRepository struct {
	db *sql.DB
}

// NewCheckRepository creates a new CheckRepository.
func NewCheckRepository(db *sql.DB) *CheckRepository {
	return &CheckRepository{db: db}
}

// Create stores one interaction check record.
func (r *CheckRepository) Create(ctx context.Context, check *model.InteractionCheck) error {
	meds, err := json.Marshal(check.Medications)
	if err != nil {
		return err
	}
	found, err := json.Marshal(check.InteractionsFound)
	if err != nil {
		return err
	}
	recs, err := json.Marshal(check.Recommendations)
	if err != nil {
		return err
	}

	query := `INSERT INTO interaction_checks
			(id, user_id, medications, patient_age, interactions_found, recommendations, risk_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		check.ID, check.UserID, meds, check.PatientAge, found, recs, check.RiskScore,
	)
	return err
}

// ListByUser retrieves a user's most recent interaction checks, newest first.
func (r *CheckRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.InteractionCheck, error) {
	query := `SELECT id, user_id, medications, patient_age, interactions_found, recommendations, risk_score, checked_at
		FROM interaction_checks WHERE user_id = ? ORDER BY checked_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []model.InteractionCheck
	for rows.Next() {
		var c model.InteractionCheck
		var meds, found, recs []byte
		if err := rows.Scan(
			&c.ID, &c.UserID, &meds, &c.PatientAge, &found, &recs, &c.RiskScore, &c.CheckedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(meds, &c.Medications); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(found, &c.InteractionsFound); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(recs, &c.Recommendations); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
