package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestSweepCollectorCountsCandidates(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewSweepCollector(reg)
	if err != nil {
		t.Fatalf("NewSweepCollector: %v", err)
	}

	collector.AddCandidates(18)
	collector.IncFeasible()
	collector.IncFeasible()
	collector.ObserveEvaluation(25 * time.Microsecond)

	if got := testutil.ToFloat64(collector.CandidatesEvaluated); got != 18 {
		t.Errorf("sweep_candidates_total = %v, want 18", got)
	}
	if got := testutil.ToFloat64(collector.FeasibleDesigns); got != 2 {
		t.Errorf("sweep_feasible_designs_total = %v, want 2", got)
	}
	if count := histogramSampleCount(t, reg, "sweep_evaluation_duration_seconds"); count != 1 {
		t.Errorf("sweep_evaluation_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestSweepCollectorCatalogGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewSweepCollector(reg)
	if err != nil {
		t.Fatalf("NewSweepCollector: %v", err)
	}

	collector.SetCatalogCounts(3, 1, 2)

	if got := testutil.ToFloat64(collector.CatalogEngines); got != 3 {
		t.Errorf("catalog_engines = %v, want 3", got)
	}
	if got := testutil.ToFloat64(collector.CatalogMissions); got != 1 {
		t.Errorf("catalog_missions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.CatalogVehicles); got != 2 {
		t.Errorf("catalog_vehicles = %v, want 2", got)
	}
}

func TestSweepCollectorHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewSweepCollector(reg)
	if err != nil {
		t.Fatalf("NewSweepCollector: %v", err)
	}
	collector.AddCandidates(1)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "sweep_candidates_total") {
		t.Fatalf("metrics output missing sweep_candidates_total:\n%s", body)
	}
}

func TestNewSweepCollectorReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSweepCollector(reg)
	if err != nil {
		t.Fatalf("first NewSweepCollector: %v", err)
	}
	second, err := NewSweepCollector(reg)
	if err != nil {
		t.Fatalf("second NewSweepCollector: %v", err)
	}

	first.AddCandidates(5)
	if got := testutil.ToFloat64(second.CandidatesEvaluated); got != 5 {
		t.Fatalf("second collector counter = %v, want the shared 5", got)
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string) uint64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetType() != dto.MetricType_HISTOGRAM || fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if h := m.GetHistogram(); h != nil {
				return h.GetSampleCount()
			}
		}
	}
	return 0
}
