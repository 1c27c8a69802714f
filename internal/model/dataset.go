package model

import "time"

// Dataset import lifecycle states.
const (
	ImportStatusPending   = "pending"
	ImportStatusRunning   = "running"
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// Recognised dataset sources.
const (
	SourceDrugBank = "drugbank"
	SourceFDA      = "fda"
	SourceWHO      = "who"
	SourcePharmGKB = "pharmgkb"
)

// ValidImportSource reports whether source names a supported dataset.
func ValidImportSource(source string) bool {
	switch source {
	case SourceDrugBank, SourceFDA, SourceWHO, SourcePharmGKB:
		return true
	}
	return false
}

// DatasetImport tracks one dataset import run.
type DatasetImport struct {
	ID              string     `json:"id"`
	Source          string     `json:"source"`
	TotalRecords    int        `json:"total_records"`
	ImportedRecords int        `json:"imported_records"`
	FailedRecords   int        `json:"failed_records"`
	Status          string     `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	ErrorLog        string     `json:"error_log,omitempty"`
}

// StartImportRequest represents a request to begin a dataset import.
type StartImportRequest struct {
	Source string `json:"source" validate:"required"`
}

// StartImportResponse acknowledges a started import.
type StartImportResponse struct {
	Message  string `json:"message"`
	ImportID string `json:"import_id"`
}

// ImportStatusResponse lists recent dataset imports.
type ImportStatusResponse struct {
	Imports []DatasetImport `json:"imports"`
}
