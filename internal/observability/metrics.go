package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_telegram"

// Metrics holds the Prometheus counters, histograms, and gauges for report analysis.
type Metrics struct {
	ReportsLoaded   prometheus.Gauge
	ParseErrors     prometheus.Counter
	LoadedTimestamp prometheus.Gauge

	// Query metrics.
	Queries       *prometheus.CounterVec   // labels: query, outcome={success,no_data,error}
	QueryDuration *prometheus.HistogramVec // labels: query

	// Wind report output metrics.
	WindFilesWritten prometheus.Counter
	WindFileErrors   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsLoaded,
		m.ParseErrors,
		m.LoadedTimestamp,
		m.Queries,
		m.QueryDuration,
		m.WindFilesWritten,
		m.WindFileErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reports_loaded",
			Help:      "Number of reports held by the analyzer.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total telegram lines skipped as malformed.",
		}),
		LoadedTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_timestamp_seconds",
			Help:      "Unix time the reports were last loaded.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Analyzer queries by query and outcome.",
		}, []string{"query", "outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Analyzer query duration in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"query"}),
		WindFilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wind_files_written_total",
			Help:      "Total wind report files written.",
		}),
		WindFileErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wind_file_errors_total",
			Help:      "Total wind report files that failed to write.",
		}),
	}
}
