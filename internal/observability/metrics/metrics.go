package metrics

import "github.com/prometheus/client_golang/prometheus"

// RelayMetrics exposes counters/histograms for the order relay.
type RelayMetrics struct {
	submissionsTotal  *prometheus.CounterVec
	downstreamTotal   *prometheus.CounterVec
	downstreamLatency *prometheus.HistogramVec
	cooldownTotal     *prometheus.CounterVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glassesrelay",
			Subsystem: "relay",
			Name:      "submissions_total",
			Help:      "Order submissions by outcome code",
		}, []string{"outcome"}),
		downstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glassesrelay",
			Subsystem: "telegram",
			Name:      "requests_total",
			Help:      "Telegram Bot API calls by method and outcome",
		}, []string{"method", "outcome"}),
		downstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "glassesrelay",
			Subsystem: "telegram",
			Name:      "request_duration_seconds",
			Help:      "Latency of Telegram Bot API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		cooldownTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glassesrelay",
			Subsystem: "cooldown",
			Name:      "decisions_total",
			Help:      "Cooldown decisions by guard mode",
		}, []string{"mode", "decision"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.downstreamTotal, m.downstreamLatency, m.cooldownTotal)
	return m
}

func (m *RelayMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *RelayMetrics) ObserveDownstream(method, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.downstreamTotal.WithLabelValues(method, outcome).Inc()
	m.downstreamLatency.WithLabelValues(method).Observe(seconds)
}

func (m *RelayMetrics) ObserveCooldown(mode string, allowed bool) {
	if m == nil {
		return
	}
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.cooldownTotal.WithLabelValues(mode, decision).Inc()
}
