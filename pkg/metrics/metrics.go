// Package metrics counts what a reconciliation run did, in Prometheus form.
//
// Each Metrics owns its registry, so runs and tests never share counters. The
// CLI exports the registry in the node_exporter textfile format after a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wilayah"

// Metrics holds all Prometheus metrics of a run.
type Metrics struct {
	registry *prometheus.Registry

	Records     *prometheus.CounterVec
	Matches     *prometheus.CounterVec
	Changes     *prometheus.CounterVec
	Scopes      *prometheus.CounterVec
	FileErrors  prometheus.Counter
	FilesSaved  prometheus.Counter
	Duplicates  prometheus.Gauge
	RunDuration prometheus.Gauge
	LastRun     prometheus.Gauge
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records examined, by region type",
		}, []string{"type"}),
		Matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Match outcomes, by matching context and tier",
		}, []string{"context", "tier"}),
		Changes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Names replaced, by region type",
		}, []string{"type"}),
		Scopes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scopes_total",
			Help:      "Province scope assignments, by method",
		}, []string{"method"}),
		FileErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_errors_total",
			Help:      "Record files that could not be read or written",
		}),
		FilesSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_saved_total",
			Help:      "Record files written back",
		}),
		Duplicates: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_duplicate_keys",
			Help:      "Duplicate normalized keys in the reference table",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run",
		}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRecord counts one examined record.
func (m *Metrics) ObserveRecord(typ string) {
	m.Records.WithLabelValues(typ).Inc()
}

// ObserveMatch counts one match outcome.
func (m *Metrics) ObserveMatch(context, tier string) {
	m.Matches.WithLabelValues(context, tier).Inc()
}

// ObserveChange counts one replaced name.
func (m *Metrics) ObserveChange(typ string) {
	m.Changes.WithLabelValues(typ).Inc()
}

// ObserveScope counts one scope assignment.
func (m *Metrics) ObserveScope(method string) {
	m.Scopes.WithLabelValues(method).Inc()
}

// ObserveRun records the duration of a finished run.
func (m *Metrics) ObserveRun(d time.Duration, finished time.Time) {
	m.RunDuration.Set(d.Seconds())
	m.LastRun.Set(float64(finished.Unix()))
}

// WriteTextfile writes the metrics to path in the textfile collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
