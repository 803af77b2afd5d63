package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SweepCollector bundles Prometheus metrics for the evaluation and sweep
// engine and provides a ready-to-embed /metrics handler for callers that
// run long design studies.
type SweepCollector struct {
	gatherer prometheus.Gatherer

	CandidatesEvaluated prometheus.Counter
	FeasibleDesigns     prometheus.Counter
	EvaluationDuration  prometheus.Histogram

	CatalogEngines  prometheus.Gauge
	CatalogMissions prometheus.Gauge
	CatalogVehicles prometheus.Gauge
}

// NewSweepCollector registers sweep Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewSweepCollector(reg prometheus.Registerer) (*SweepCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	candidates, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sweep_candidates_total",
		Help: "Total number of candidate designs evaluated across all sweeps.",
	}), "sweep_candidates_total")
	if err != nil {
		return nil, err
	}

	feasible, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sweep_feasible_designs_total",
		Help: "Total number of candidate designs that satisfied every mission constraint.",
	}), "sweep_feasible_designs_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweep_evaluation_duration_seconds",
		Help:    "Latency of a single vehicle/mission evaluation in seconds.",
		Buckets: []float64{1e-6, 1e-5, 1e-4, 1e-3, 0.01, 0.1, 1},
	}), "sweep_evaluation_duration_seconds")
	if err != nil {
		return nil, err
	}

	engines, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_engines",
		Help: "Current number of engine templates in the catalog.",
	}), "catalog_engines")
	if err != nil {
		return nil, err
	}
	missions, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_missions",
		Help: "Current number of missions in the catalog.",
	}), "catalog_missions")
	if err != nil {
		return nil, err
	}
	vehicles, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_vehicles",
		Help: "Current number of vehicle templates in the catalog.",
	}), "catalog_vehicles")
	if err != nil {
		return nil, err
	}

	return &SweepCollector{
		gatherer:            gatherer,
		CandidatesEvaluated: candidates,
		FeasibleDesigns:     feasible,
		EvaluationDuration:  durations,
		CatalogEngines:      engines,
		CatalogMissions:     missions,
		CatalogVehicles:     vehicles,
	}, nil
}

// ObserveEvaluation records one evaluation's wall time.
func (c *SweepCollector) ObserveEvaluation(d time.Duration) {
	if c == nil || c.EvaluationDuration == nil {
		return
	}
	c.EvaluationDuration.Observe(d.Seconds())
}

// AddCandidates counts evaluated sweep candidates.
func (c *SweepCollector) AddCandidates(n int) {
	if c == nil || c.CandidatesEvaluated == nil {
		return
	}
	c.CandidatesEvaluated.Add(float64(n))
}

// IncFeasible counts one feasible design.
func (c *SweepCollector) IncFeasible() {
	if c == nil || c.FeasibleDesigns == nil {
		return
	}
	c.FeasibleDesigns.Inc()
}

// SetCatalogCounts satisfies the catalog's MetricsRecorder interface so the
// catalog can drive gauge values directly from its mutators.
func (c *SweepCollector) SetCatalogCounts(engines, missions, vehicles int) {
	if c == nil {
		return
	}
	if c.CatalogEngines != nil {
		c.CatalogEngines.Set(float64(engines))
	}
	if c.CatalogMissions != nil {
		c.CatalogMissions.Set(float64(missions))
	}
	if c.CatalogVehicles != nil {
		c.CatalogVehicles.Set(float64(vehicles))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SweepCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
