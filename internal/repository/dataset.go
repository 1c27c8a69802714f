package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pharmalytics/nexus-go/internal/model"
)

var ErrImportNotFound = errors.New("dataset import not found")

// DatasetRepository tracks dataset import runs.
type DatasetRepository struct {
	db *sql.DB
}

// NewDatasetRepository creates a new DatasetRepository.
func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Create inserts a new import row.
func (r *DatasetRepository) Create(ctx context.Context, imp *model.DatasetImport) error {
	query := `INSERT INTO dataset_imports (id, source, total_records, status)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, imp.ID, imp.Source, imp.TotalRecords, imp.Status)
	return err
}

// UpdateProgress refreshes the record counters for a running import.
func (r *DatasetRepository) UpdateProgress(ctx context.Context, id string, imported, failed int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dataset_imports SET imported_records = ?, failed_records = ? WHERE id = ?`,
		imported, failed, id)
	if err != nil {
		return err
	}
	return checkFound(result)
}

// Complete marks an import as finished.
func (r *DatasetRepository) Complete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dataset_imports SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ImportStatusCompleted, id)
	if err != nil {
		return err
	}
	return checkFound(result)
}

// Fail marks an import as failed and records the error.
func (r *DatasetRepository) Fail(ctx context.Context, id, errLog string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dataset_imports SET status = ?, error_log = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ImportStatusFailed, errLog, id)
	if err != nil {
		return err
	}
	return checkFound(result)
}

// ListRecent retrieves the most recent imports, newest first.
func (r *DatasetRepository) ListRecent(ctx context.Context, limit int) ([]model.DatasetImport, error) {
	query := `SELECT id, source, total_records, imported_records, failed_records,
			status, started_at, completed_at, error_log
		FROM dataset_imports ORDER BY started_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []model.DatasetImport
	for rows.Next() {
		var imp model.DatasetImport
		if err := rows.Scan(
			&imp.ID, &imp.Source, &imp.TotalRecords, &imp.ImportedRecords, &imp.FailedRecords,
			&imp.Status, &imp.StartedAt, &imp.CompletedAt, &imp.ErrorLog,
		); err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

func checkFound(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrImportNotFound
	}
	return nil
}
