package router

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the router's live counters for scraping by
// cmd/router's serve subcommand. It is optional: a nil *Metrics is a
// valid, cost-free no-op, so the core package never requires a
// Prometheus registry to function.
type Metrics struct {
	arcsWithRipup    prometheus.Counter
	arcsWithoutRipup prometheus.Counter
	ripupsTotal      prometheus.Counter
	queueDepth       prometheus.Gauge
	wireScoreMax     prometheus.Gauge
	netScoreMax      prometheus.Gauge
}

// NewMetrics registers the router's counters and gauges with reg and
// returns a Metrics ready to pass to NewRouter. Call once per process;
// registering twice against the same Registerer panics, matching
// Prometheus client conventions.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		arcsWithRipup: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "negroute_arcs_with_ripup_total",
			Help: "Arcs that required at least one rip-up before committing.",
		}),
		arcsWithoutRipup: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "negroute_arcs_without_ripup_total",
			Help: "Arcs routed without disturbing any other binding.",
		}),
		ripupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "negroute_ripups_total",
			Help: "Total wire and net rip-ups performed by the rip-up engine.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "negroute_arc_queue_depth",
			Help: "Arcs currently pending in the work queue.",
		}),
		wireScoreMax: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "negroute_wire_score_max",
			Help: "Highest wire rip-up counter in the current score book.",
		}),
		netScoreMax: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "negroute_net_score_max",
			Help: "Highest net rip-up counter in the current score book.",
		}),
	}
	reg.MustRegister(m.arcsWithRipup, m.arcsWithoutRipup, m.ripupsTotal, m.queueDepth, m.wireScoreMax, m.netScoreMax)
	return m
}

func (m *Metrics) observeArcRouted(withRipup bool) {
	if m == nil {
		return
	}
	if withRipup {
		m.arcsWithRipup.Inc()
	} else {
		m.arcsWithoutRipup.Inc()
	}
}

func (m *Metrics) observeRipup() {
	if m == nil {
		return
	}
	m.ripupsTotal.Inc()
}

func (m *Metrics) observeQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

func (m *Metrics) observeScores(maxWireScore, maxNetScore int) {
	if m == nil {
		return
	}
	m.wireScoreMax.Set(float64(maxWireScore))
	m.netScoreMax.Set(float64(maxNetScore))
}
