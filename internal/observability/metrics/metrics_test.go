package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRelayMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRelayMetrics(reg)

	m.ObserveSubmission("success")
	m.ObserveSubmission("success")
	m.ObserveSubmission("VALIDATION_ERROR")
	m.ObserveDownstream("sendMessage", "ok", 0.2)
	m.ObserveCooldown("cookie", false)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("success")); got != 2 {
		t.Fatalf("success submissions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.downstreamTotal.WithLabelValues("sendMessage", "ok")); got != 1 {
		t.Fatalf("downstream ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cooldownTotal.WithLabelValues("cookie", "denied")); got != 1 {
		t.Fatalf("cooldown denied = %v, want 1", got)
	}
}

func TestRelayMetricsNilSafe(t *testing.T) {
	var m *RelayMetrics
	m.ObserveSubmission("success")
	m.ObserveDownstream("sendMessage", "error", 0.1)
	m.ObserveCooldown("redis", true)
}
