package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pharmalytics/nexus-go/internal/model"
)

var ErrInvalidSource = errors.New("invalid source")

// DrugWriter is the catalog surface the importer writes through.
type DrugWriter interface {
	UpsertDrug(ctx context.Context, d *model.Drug) error
	UpsertInteraction(ctx context.Context, in *model.DrugInteraction) error
}

// ImportTracker records import runs and their progress.
type ImportTracker interface {
	Create(ctx context.Context, imp *model.DatasetImport) error
	UpdateProgress(ctx context.Context, id string, imported, failed int) error
	Complete(ctx context.Context, id string) error
	Fail(ctx context.Context, id, errLog string) error
	ListRecent(ctx context.Context, limit int) ([]model.DatasetImport, error)
}

const importListLimit = 10

// DatasetService loads reference datasets into the drug catalog.
type DatasetService struct {
	drugs   DrugWriter
	imports ImportTracker
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(drugs DrugWriter, imports ImportTracker) *DatasetService {
	return &DatasetService{drugs: drugs, imports: imports}
}

// StartImport begins loading the named dataset on a background goroutine and
// returns the tracking record immediately.
func (s *DatasetService) StartImport(ctx context.Context, source string) (model.StartImportResponse, error) {
	if !model.ValidImportSource(source) {
		return model.StartImportResponse{}, ErrInvalidSource
	}

	set := seedCatalog[source]
	imp := &model.DatasetImport{
		ID:           uuid.New().String(),
		Source:       source,
		TotalRecords: len(set.drugs) + len(set.interactions),
		Status:       model.ImportStatusRunning,
	}

	if err := s.imports.Create(ctx, imp); err != nil {
		return model.StartImportResponse{}, err
	}

	// The import outlives the request; it carries its own context.
	go s.runImport(context.Background(), imp.ID, source)

	return model.StartImportResponse{
		Message:  fmt.Sprintf("Import started for %s", source),
		ImportID: imp.ID,
	}, nil
}

// ImportStatus lists recent import runs.
func (s *DatasetService) ImportStatus(ctx context.Context) (model.ImportStatusResponse, error) {
	imports, err := s.imports.ListRecent(ctx, importListLimit)
	if err != nil {
		return model.ImportStatusResponse{}, err
	}
	if imports == nil {
		imports = []model.DatasetImport{}
	}
	return model.ImportStatusResponse{Imports: imports}, nil
}

// runImport loads every record of a seed set, tracking per-record failures.
func (s *DatasetService) runImport(ctx context.Context, id, source string) {
	set := seedCatalog[source]
	imported, failed := 0, 0

	for i := range set.drugs {
		drug := set.drugs[i]
		if err := s.drugs.UpsertDrug(ctx, &drug); err != nil {
			slog.Warn("dataset import: drug upsert failed",
				"import_id", id, "drug", drug.Name, "error", err)
			failed++
			continue
		}
		imported++
	}

	for i := range set.interactions {
		in := set.interactions[i]
		in.InteractionID = uuid.New().String()
		if err := s.drugs.UpsertInteraction(ctx, &in); err != nil {
			slog.Warn("dataset import: interaction upsert failed",
				"import_id", id, "drug1", in.Drug1Name, "drug2", in.Drug2Name, "error", err)
			failed++
			continue
		}
		imported++
	}

	if err := s.imports.UpdateProgress(ctx, id, imported, failed); err != nil {
		slog.Error("dataset import: progress update failed", "import_id", id, "error", err)
	}

	if imported == 0 && failed > 0 {
		if err := s.imports.Fail(ctx, id, "all records failed to import"); err != nil {
			slog.Error("dataset import: fail update failed", "import_id", id, "error", err)
		}
		return
	}

	if err := s.imports.Complete(ctx, id); err != nil {
		slog.Error("dataset import: completion update failed", "import_id", id, "error", err)
		return
	}
	slog.Info("dataset import finished", "import_id", id, "source", source,
		"imported", imported, "failed", failed)
}
