package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for the
// scenario runner.
type Metrics struct {
	IncidentsTriggered prometheus.Counter
	Ticks              prometheus.Counter
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter

	// Scenario state gauges, updated after every tick.
	ScenarioActive prometheus.Gauge
	ThreatLevel    prometheus.Gauge // numeric level: 0=NORMAL … 4=CRITICAL
	MaxRadiation   prometheus.Gauge
	EvacuatedZones prometheus.Gauge

	TickDuration prometheus.Histogram
}

// NewMetrics creates and registers all runner metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		IncidentsTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fallout_sim",
			Name:      "incidents_triggered_total",
			Help:      "Total incidents triggered, including re-triggers.",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fallout_sim",
			Name:      "ticks_total",
			Help:      "Total scenario advance steps executed.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fallout_sim",
			Name:      "snapshots_published_total",
			Help:      "Total snapshots written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fallout_sim",
			Name:      "publish_errors_total",
			Help:      "Total snapshot publish failures.",
		}),
		ScenarioActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fallout_sim",
			Name:      "scenario_active",
			Help:      "1 while an incident is in progress, 0 when idle.",
		}),
		ThreatLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fallout_sim",
			Name:      "threat_level",
			Help:      "Current threat level: 0=NORMAL, 1=ELEVATED, 2=HIGH, 3=SEVERE, 4=CRITICAL.",
		}),
		MaxRadiation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fallout_sim",
			Name:      "max_radiation_sievert_hours",
			Help:      "Peak radiation level across all zones in Sv/h.",
		}),
		EvacuatedZones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fallout_sim",
			Name:      "evacuation_zone_count",
			Help:      "Number of zones currently in the evacuation set.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fallout_sim",
			Name:      "tick_duration_seconds",
			Help:      "Duration of a complete advance step including publishing.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}

	prometheus.MustRegister(
		m.IncidentsTriggered,
		m.Ticks,
		m.SnapshotsPublished,
		m.PublishErrors,
		m.ScenarioActive,
		m.ThreatLevel,
		m.MaxRadiation,
		m.EvacuatedZones,
		m.TickDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		IncidentsTriggered: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fallout_sim", Name: "incidents_triggered_total"}),
		Ticks:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fallout_sim", Name: "ticks_total"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fallout_sim", Name: "snapshots_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fallout_sim", Name: "publish_errors_total"}),
		ScenarioActive:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fallout_sim", Name: "scenario_active"}),
		ThreatLevel:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fallout_sim", Name: "threat_level"}),
		MaxRadiation:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fallout_sim", Name: "max_radiation_sievert_hours"}),
		EvacuatedZones:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fallout_sim", Name: "evacuation_zone_count"}),
		TickDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fallout_sim", Name: "tick_duration_seconds"}),
	}
}
