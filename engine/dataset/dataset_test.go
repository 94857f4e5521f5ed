package dataset

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

const envelope = `{
  "boiler_faults": [
    {"maker": "Vaillant", "model": "ecoTEC Plus", "error_code": "F28", "possible_cause": "Ignition failure"},
    {"maker": "Ideal", "model": "Logic Combi", "error_code": "L2"}
  ],
  "metadata": {"total_entries": 2, "enriched_at": "2026-08-01T12:00:00Z", "model_used": "gpt-5-mini", "test_mode": false}
}`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse_Envelope(t *testing.T) {
	ds, err := Parse([]byte(envelope))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ds.BoilerFaults) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.BoilerFaults))
	}
	if ds.Metadata.ModelUsed != "gpt-5-mini" {
		t.Fatalf("metadata not parsed: %+v", ds.Metadata)
	}
}

func TestParse_BareArray(t *testing.T) {
	ds, err := Parse([]byte(`[{"maker":"Baxi","model":"Duo-tec","error_code":"E119"}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ds.BoilerFaults) != 1 || ds.BoilerFaults[0].Maker != "Baxi" {
		t.Fatalf("bare array not accepted: %+v", ds.BoilerFaults)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, doc := range []string{"", "   ", "{not json", "[{]"} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, domain.ErrSourceUnavailable) {
			t.Errorf("Parse(%q): expected ErrSourceUnavailable, got %v", doc, err)
		}
	}
}

func TestStore_LoadAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faults.json")
	if err := os.WriteFile(path, []byte(envelope), 0o644); err != nil {
		t.Fatal(err)
	}

	st := NewStore(path, discard())
	if err := st.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Err() != nil {
		t.Fatalf("unexpected retained error: %v", st.Err())
	}
	if got := st.Index().Makers(); len(got) != 2 {
		t.Fatalf("expected 2 makers, got %v", got)
	}
	if st.LoadedAt().IsZero() {
		t.Fatal("LoadedAt not set after successful load")
	}
}

func TestStore_LoadFailureIsolation(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "missing.json"), discard())
	if err := st.Load(); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	// Queries stay available and collapse to empty/not-found.
	if got := st.Index().Makers(); len(got) != 0 {
		t.Fatalf("expected empty makers after failed load, got %v", got)
	}
	if _, err := st.Index().Fault("a", "b", "c"); !errors.Is(err, domain.ErrFaultNotFound) {
		t.Fatalf("expected ErrFaultNotFound, got %v", err)
	}
	if st.Err() == nil {
		t.Fatal("load error not observable")
	}
}

func TestStore_FailedReloadKeepsPreviousIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faults.json")
	if err := os.WriteFile(path, []byte(envelope), 0o644); err != nil {
		t.Fatal(err)
	}
	st := NewStore(path, discard())
	if err := st.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := st.Load(); err == nil {
		t.Fatal("expected reload to fail")
	}
	// Previous generation still serves.
	if got := st.Index().Makers(); len(got) != 2 {
		t.Fatalf("previous index lost after failed reload: %v", got)
	}
	if st.Err() == nil {
		t.Fatal("reload error not observable")
	}
}

func TestWrite_StampsTotalEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	ds := domain.Dataset{
		BoilerFaults: []domain.FaultRecord{
			{Maker: "Vaillant", Model: "ecoTEC Plus", ErrorCode: "F28"},
		},
		Metadata: domain.DatasetMetadata{ModelUsed: "gpt-5-mini"},
	}
	if err := Write(path, ds); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Metadata.TotalEntries != 1 {
		t.Fatalf("total_entries = %d, want 1", back.Metadata.TotalEntries)
	}
}
