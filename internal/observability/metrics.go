package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the alert service.
type Metrics struct {
	SubmissionsTotal prometheus.Counter
	RowsUpdated      prometheus.Counter
	RowsAppended     prometheus.Counter
	FallbackAppends  prometheus.Counter
	EventsPublished  prometheus.Counter
	PublishErrors    prometheus.Counter

	// Feed polling metrics.
	FeedPolls   *prometheus.CounterVec // labels: outcome={success,error}
	FeedRecords prometheus.Histogram

	// Alert queue metrics.
	QueueDepth      prometheus.Gauge
	AlertsDisplayed prometheus.Counter

	// Simulation metrics.
	SimulationEvents  prometheus.Counter
	SimulationRunning prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SubmissionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "submissions_total",
			Help:      "Total alert submissions accepted by the reconciler.",
		}),
		RowsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "rows_updated_total",
			Help:      "Total existing workbook rows overwritten by submissions.",
		}),
		RowsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "rows_appended_total",
			Help:      "Total new workbook rows appended by submissions.",
		}),
		FallbackAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "fallback_appends_total",
			Help:      "Total submissions diverted to the in-process fallback list.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "events_published_total",
			Help:      "Total submission events published to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "publish_errors_total",
			Help:      "Total failed Kafka publish attempts.",
		}),
		FeedPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "feed_polls_total",
			Help:      "AI-feed poll cycles by outcome.",
		}, []string{"outcome"}),
		FeedRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_alert",
			Name:      "feed_records",
			Help:      "Number of normalized records per AI-feed poll.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_alert",
			Name:      "queue_depth",
			Help:      "Alerts waiting behind the currently displayed alert.",
		}),
		AlertsDisplayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "alerts_displayed_total",
			Help:      "Total alerts promoted to the showing state.",
		}),
		SimulationEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "simulation_events_total",
			Help:      "Total synthetic alerts injected by the simulation generator.",
		}),
		SimulationRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_alert",
			Name:      "simulation_running",
			Help:      "1 when the simulation generator is active, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SubmissionsTotal,
		m.RowsUpdated,
		m.RowsAppended,
		m.FallbackAppends,
		m.EventsPublished,
		m.PublishErrors,
		m.FeedPolls,
		m.FeedRecords,
		m.QueueDepth,
		m.AlertsDisplayed,
		m.SimulationEvents,
		m.SimulationRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SubmissionsTotal:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "submissions_total"}),
		RowsUpdated:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "rows_updated_total"}),
		RowsAppended:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "rows_appended_total"}),
		FallbackAppends:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "fallback_appends_total"}),
		EventsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "events_published_total"}),
		PublishErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "publish_errors_total"}),
		FeedPolls:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "feed_polls_total"}, []string{"outcome"}),
		FeedRecords:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_alert", Name: "feed_records"}),
		QueueDepth:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_alert", Name: "queue_depth"}),
		AlertsDisplayed:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "alerts_displayed_total"}),
		SimulationEvents:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alert", Name: "simulation_events_total"}),
		SimulationRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_alert", Name: "simulation_running"}),
	}
}
