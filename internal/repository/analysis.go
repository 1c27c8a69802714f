package repository

import (
	"context"
	"database/sql"

	"github.com/pharmalytics/nexus-go/internal/model"
)

// AnalysisRepository persists analyzer invocation records.
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create stores one analysis record.
func (r *AnalysisRepository) Create(ctx context.Context, a *model.Analysis) error {
	query := `INSERT INTO ai_analyses
			(id, user_id, analysis_type, input_data, result_data, confidence_score, processing_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.AnalysisType, []byte(a.InputData), []byte(a.ResultData),
		a.ConfidenceScore, a.ProcessingTime,
	)
	return err
}
