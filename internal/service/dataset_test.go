package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pharmalytics/nexus-go/internal/model"
)

type fakeDrugWriter struct {
	mu           sync.Mutex
	drugs        []model.Drug
	interactions []model.DrugInteraction
	fail         bool
}

func (f *fakeDrugWriter) UpsertDrug(_ context.Context, d *model.Drug) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("upsert failed")
	}
	f.drugs = append(f.drugs, *d)
	return nil
}

func (f *fakeDrugWriter) UpsertInteraction(_ context.Context, in *model.DrugInteraction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("upsert failed")
	}
	f.interactions = append(f.interactions, *in)
	return nil
}

type fakeImportTracker struct {
	mu        sync.Mutex
	created   []*model.DatasetImport
	imported  int
	failed    int
	completed []string
	failures  map[string]string
	recent    []model.DatasetImport
}

func newFakeImportTracker() *fakeImportTracker {
	return &fakeImportTracker{failures: map[string]string{}}
}

func (f *fakeImportTracker) Create(_ context.Context, imp *model.DatasetImport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, imp)
	return nil
}

func (f *fakeImportTracker) UpdateProgress(_ context.Context, _ string, imported, failed int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imported, f.failed = imported, failed
	return nil
}

func (f *fakeImportTracker) Complete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeImportTracker) Fail(_ context.Context, id, errLog string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[id] = errLog
	return nil
}

func (f *fakeImportTracker) ListRecent(_ context.Context, _ int) ([]model.DatasetImport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recent, nil
}

func TestStartImportInvalidSource(t *testing.T) {
	svc := NewDatasetService(&fakeDrugWriter{}, newFakeImportTracker())

	_, err := svc.StartImport(context.Background(), "not-a-source")
	if err != ErrInvalidSource {
		t.Errorf("expected ErrInvalidSource, got %v", err)
	}
}

func TestStartImportCreatesTrackingRecord(t *testing.T) {
	tracker := newFakeImportTracker()
	svc := NewDatasetService(&fakeDrugWriter{}, tracker)

	resp, err := svc.StartImport(context.Background(), model.SourceDrugBank)
	if err != nil {
		t.Fatalf("StartImport() unexpected error: %v", err)
	}

	if resp.ImportID == "" {
		t.Error("StartImport() returned empty import ID")
	}
	if resp.Message != "Import started for drugbank" {
		t.Errorf("Message = %q, want import acknowledgement", resp.Message)
	}

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if len(tracker.created) != 1 {
		t.Fatalf("tracker created %d records, want 1", len(tracker.created))
	}
	imp := tracker.created[0]
	if imp.Status != model.ImportStatusRunning {
		t.Errorf("created status = %q, want running", imp.Status)
	}
	if imp.TotalRecords == 0 {
		t.Error("created TotalRecords = 0, want seed set size")
	}
}

func TestRunImportLoadsSeedSet(t *testing.T) {
	writer := &fakeDrugWriter{}
	tracker := newFakeImportTracker()
	svc := NewDatasetService(writer, tracker)

	svc.runImport(context.Background(), "import-1", model.SourceDrugBank)

	writer.mu.Lock()
	nDrugs, nInteractions := len(writer.drugs), len(writer.interactions)
	writer.mu.Unlock()

	set := seedCatalog[model.SourceDrugBank]
	if nDrugs != len(set.drugs) {
		t.Errorf("imported %d drugs, want %d", nDrugs, len(set.drugs))
	}
	if nInteractions != len(set.interactions) {
		t.Errorf("imported %d interactions, want %d", nInteractions, len(set.interactions))
	}

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.imported != nDrugs+nInteractions {
		t.Errorf("progress imported = %d, want %d", tracker.imported, nDrugs+nInteractions)
	}
	if tracker.failed != 0 {
		t.Errorf("progress failed = %d, want 0", tracker.failed)
	}
	if len(tracker.completed) != 1 || tracker.completed[0] != "import-1" {
		t.Errorf("completed = %v, want [import-1]", tracker.completed)
	}
}

func TestRunImportAllFailed(t *testing.T) {
	writer := &fakeDrugWriter{fail: true}
	tracker := newFakeImportTracker()
	svc := NewDatasetService(writer, tracker)

	svc.runImport(context.Background(), "import-2", model.SourcePharmGKB)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if len(tracker.completed) != 0 {
		t.Errorf("completed = %v, want none", tracker.completed)
	}
	if _, ok := tracker.failures["import-2"]; !ok {
		t.Error("expected import to be marked failed when nothing loaded")
	}
	if tracker.imported != 0 {
		t.Errorf("progress imported = %d, want 0", tracker.imported)
	}
}

func TestImportStatusEmpty(t *testing.T) {
	svc := NewDatasetService(&fakeDrugWriter{}, newFakeImportTracker())

	resp, err := svc.ImportStatus(context.Background())
	if err != nil {
		t.Fatalf("ImportStatus() unexpected error: %v", err)
	}
	if resp.Imports == nil {
		t.Error("Imports = nil, want empty slice")
	}
}
