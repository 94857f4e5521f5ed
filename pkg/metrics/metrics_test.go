package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounterRender(t *testing.T) {
	r := New()
	c := r.Counter("catalog_queries_total", "Total catalog queries")
	c.Inc()
	c.Add(2)

	out := r.Render()
	if !strings.Contains(out, "# TYPE catalog_queries_total counter") {
		t.Fatalf("missing TYPE line:\n%s", out)
	}
	if !strings.Contains(out, "catalog_queries_total 3") {
		t.Fatalf("missing counter value:\n%s", out)
	}
}

func TestLabeledSeries(t *testing.T) {
	r := New()
	r.Counter(WithLabels("api_requests_total", "route", "makers"), "API requests").Inc()
	r.Counter(WithLabels("api_requests_total", "route", "fault"), "").Add(4)

	out := r.Render()
	if !strings.Contains(out, `api_requests_total{route="fault"} 4`) {
		t.Fatalf("missing labeled series:\n%s", out)
	}
	if !strings.Contains(out, `api_requests_total{route="makers"} 1`) {
		t.Fatalf("missing labeled series:\n%s", out)
	}
	if strings.Count(out, "# TYPE api_requests_total counter") != 1 {
		t.Fatalf("TYPE line should render once per base name:\n%s", out)
	}
}

func TestGauge(t *testing.T) {
	r := New()
	g := r.Gauge("dataset_entries", "Entries in the loaded dataset")
	g.Set(120)
	g.Dec()
	if g.Value() != 119 {
		t.Fatalf("gauge = %d", g.Value())
	}
}

func TestHistogramRender(t *testing.T) {
	r := New()
	h := r.Histogram("query_duration_seconds", "Query latency", []float64{0.1, 1})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(5)

	out := r.Render()
	for _, want := range []string{
		`query_duration_seconds_bucket{le="0.1"} 1`,
		`query_duration_seconds_bucket{le="1"} 2`,
		`query_duration_seconds_bucket{le="+Inf"} 3`,
		`query_duration_seconds_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHandler(t *testing.T) {
	r := New()
	r.Counter("up", "").Inc()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "up 1") {
		t.Fatalf("handler output: %d %s", rec.Code, rec.Body.String())
	}
}

func TestSameMetricReturned(t *testing.T) {
	r := New()
	a := r.Counter("x_total", "")
	b := r.Counter("x_total", "")
	if a != b {
		t.Fatal("expected identical counter instance for same name")
	}
}
