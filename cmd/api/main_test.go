package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/dataset"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureRecords() []domain.FaultRecord {
	return []domain.FaultRecord{
		{Maker: "Vaillant", Model: "ecoTEC Plus", ErrorCode: "F22", PossibleCause: "Low water pressure"},
		{Maker: "Vaillant", Model: "ecoTEC Plus", ErrorCode: "F28", PossibleCause: "Ignition failure"},
		{Maker: "Worcester Bosch", Model: "Greenstar 30i", ErrorCode: "EA", PossibleCause: "Flame not detected"},
		{Maker: "atag", Model: "iC Economiser", ErrorCode: "10", PossibleCause: "Sensor fault"},
	}
}

func newTestMux(t *testing.T, records []domain.FaultRecord) *http.ServeMux {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := dataset.Write(path, domain.Dataset{BoilerFaults: records}); err != nil {
		t.Fatal(err)
	}
	store := dataset.NewStore(path, discard())
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	return newMux(store, discard())
}

func getJSON(t *testing.T, h http.Handler, path string, wantStatus int) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("GET %s: status %d, want %d (body %s)", path, rec.Code, wantStatus, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("GET %s: bad JSON: %v", path, err)
	}
	return body
}

func TestRootAndHealth(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	root := getJSON(t, mux, "/", http.StatusOK)
	if root["service"] != "boiler-api" || root["entries"] != float64(4) {
		t.Errorf("unexpected root body %v", root)
	}

	health := getJSON(t, mux, "/api/health", http.StatusOK)
	if health["status"] != "ok" || health["entries"] != float64(4) {
		t.Errorf("unexpected health body %v", health)
	}
	if _, ok := health["load_error"]; ok {
		t.Errorf("healthy store must not report load_error: %v", health)
	}
}

func TestMakersSortedCaseInsensitive(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/makers", http.StatusOK)
	makers, _ := body["makers"].([]any)
	want := []string{"atag", "Vaillant", "Worcester Bosch"}
	if len(makers) != len(want) {
		t.Fatalf("unexpected makers %v", makers)
	}
	for i, m := range want {
		if makers[i] != m {
			t.Errorf("makers[%d] = %v, want %s", i, makers[i], m)
		}
	}
}

func TestModelsWithEscapedMaker(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/models/Worcester%20Bosch", http.StatusOK)
	if body["maker"] != "Worcester Bosch" {
		t.Errorf("expected decoded maker, got %v", body["maker"])
	}
	models, _ := body["models"].([]any)
	if len(models) != 1 || models[0] != "Greenstar 30i" {
		t.Errorf("unexpected models %v", models)
	}
}

func TestModelsWithoutMakerListsAll(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/models", http.StatusOK)
	models, _ := body["models"].([]any)
	want := []string{"ecoTEC Plus", "Greenstar 30i", "iC Economiser"}
	if len(models) != len(want) {
		t.Fatalf("expected union of models across makers, got %v", models)
	}
	for i, m := range want {
		if models[i] != m {
			t.Errorf("models[%d] = %v, want %s", i, models[i], m)
		}
	}
}

func TestFaultsList(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/faults/Vaillant/ecoTEC%20Plus", http.StatusOK)
	faults, _ := body["faults"].([]any)
	if len(faults) != 2 {
		t.Fatalf("expected 2 faults, got %v", faults)
	}
	first, _ := faults[0].(map[string]any)
	if first["code"] != "F22" || first["description"] != "Low water pressure" {
		t.Errorf("unexpected first fault %v", first)
	}
}

func TestFaultDetail(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/fault/vaillant/ECOTEC%20PLUS/f22", http.StatusOK)
	if body["maker"] != "Vaillant" || body["error_code"] != "F22" {
		t.Errorf("case-insensitive lookup returned %v", body)
	}

	missing := getJSON(t, mux, "/api/fault/Vaillant/ecoTEC%20Plus/F99", http.StatusNotFound)
	if missing["error"] != "Fault not found" {
		t.Errorf("unexpected 404 body %v", missing)
	}
}

func TestAllFaults(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/all-faults", http.StatusOK)
	faults, _ := body["faults"].([]any)
	if len(faults) != 4 {
		t.Fatalf("expected 4 keys, got %v", faults)
	}
	first, _ := faults[0].(map[string]any)
	if first["maker"] != "Vaillant" || first["error_code"] != "F22" {
		t.Errorf("expected source order preserved, got %v", first)
	}
}

func TestSearchStructured(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/search?maker=Vaillant&code=F2", http.StatusOK)
	if body["count"] != float64(2) {
		t.Errorf("substring code filter should match both F22 and F28: %v", body)
	}

	none := getJSON(t, mux, "/api/search?model=eco", http.StatusOK)
	if none["count"] != float64(0) {
		t.Errorf("model filter is exact, partial must not match: %v", none)
	}
}

func TestSearchFreeText(t *testing.T) {
	mux := newTestMux(t, fixtureRecords())

	body := getJSON(t, mux, "/api/search?q=worcester+greenstar+30i+showing+ea", http.StatusOK)
	if body["maker"] != "Worcester Bosch" {
		t.Errorf("expected maker resolved from free text, got %v", body["maker"])
	}
	if body["count"] != float64(1) {
		t.Errorf("unexpected search body %v", body)
	}
}

func TestLoadFailureIsolation(t *testing.T) {
	store := dataset.NewStore(filepath.Join(t.TempDir(), "missing.json"), discard())
	if err := store.Load(); err == nil {
		t.Fatal("expected load failure")
	}
	mux := newMux(store, discard())

	health := getJSON(t, mux, "/api/health", http.StatusOK)
	if health["status"] != "ok" || health["entries"] != float64(0) {
		t.Errorf("unexpected health body %v", health)
	}
	if _, ok := health["load_error"]; !ok {
		t.Error("expected load_error to be reported")
	}

	makers := getJSON(t, mux, "/api/makers", http.StatusOK)
	if list, _ := makers["makers"].([]any); len(list) != 0 {
		t.Errorf("failed load must serve empty makers, got %v", list)
	}

	getJSON(t, mux, "/api/fault/Vaillant/ecoTEC%20Plus/F22", http.StatusNotFound)
}
