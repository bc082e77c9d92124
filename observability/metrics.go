package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// fetch-convert-write pipeline.
type Metrics struct {
	FetchRequests      *prometheus.CounterVec // labels: source={events,ferries}, outcome={success,error}
	RecordsConverted   *prometheus.CounterVec // labels: kind={traffic,ferry}
	RecordsNoGeometry  prometheus.Counter
	DocumentsGenerated prometheus.Counter
	BuildDuration      prometheus.Histogram
	LastGeneratedEpoch prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.RecordsConverted,
		m.RecordsNoGeometry,
		m.DocumentsGenerated,
		m.BuildDuration,
		m.LastGeneratedEpoch,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drivebc_kml",
			Name:      "fetch_requests_total",
			Help:      "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		RecordsConverted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drivebc_kml",
			Name:      "records_converted_total",
			Help:      "Records turned into placemarks, by kind.",
		}, []string{"kind"}),
		RecordsNoGeometry: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drivebc_kml",
			Name:      "records_no_geometry_total",
			Help:      "Records with no usable coordinates.",
		}),
		DocumentsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drivebc_kml",
			Name:      "documents_generated_total",
			Help:      "Completed KML document generations.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drivebc_kml",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete fetch-convert-serialize cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastGeneratedEpoch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drivebc_kml",
			Name:      "last_generated_timestamp_seconds",
			Help:      "Unix time of the last successful generation.",
		}),
	}
}
