package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	RendersTotal     *prometheus.CounterVec // labels: year
	RenderErrors     prometheus.Counter
	RenderDuration   prometheus.Histogram
	UnmatchedRegions *prometheus.GaugeVec // labels: year

	// Load-once datasets.
	RecordsLoaded    prometheus.Gauge
	BoundariesLoaded prometheus.Gauge
	LoadDuration     *prometheus.HistogramVec // labels: source={boundaries,records}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()

	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderErrors,
		m.RenderDuration,
		m.UnmatchedRegions,
		m.RecordsLoaded,
		m.BoundariesLoaded,
		m.LoadDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nclex_dashboard",
			Name:      "renders_total",
			Help:      "Completed map renders by selected year.",
		}, []string{"year"}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nclex_dashboard",
			Name:      "render_errors_total",
			Help:      "Renders aborted by an error.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nclex_dashboard",
			Name:      "render_duration_seconds",
			Help:      "Duration of one filter-aggregate-merge-render pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		UnmatchedRegions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "nclex_dashboard",
			Name:      "unmatched_regions",
			Help:      "Boundary regions without exam data in the last render of a year.",
		}, []string{"year"}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nclex_dashboard",
			Name:      "records_loaded",
			Help:      "Exam records loaded from the workbook across all years.",
		}),
		BoundariesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nclex_dashboard",
			Name:      "boundaries_loaded",
			Help:      "County boundary regions loaded for the target state.",
		}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nclex_dashboard",
			Name:      "load_duration_seconds",
			Help:      "Time spent reading an input dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
	}
}
