package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/logistics/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("carrier-status"))
	beforeProcessed := testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues("carrier-status"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("carrier-status", "invalid"))

	metrics.KafkaMessagesConsumed.WithLabelValues("carrier-status").Inc()
	metrics.KafkaMessagesProcessed.WithLabelValues("carrier-status").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("carrier-status", "invalid").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("carrier-status")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues("carrier-status")); got != beforeProcessed+1 {
		t.Fatalf("KafkaMessagesProcessed: got=%v want=%v", got, beforeProcessed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("carrier-status", "invalid")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestCacheSize_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CacheSize)

	metrics.CacheSize.Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cur+5)
	}

	metrics.CacheSize.Set(cur) // вернуть как было
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur {
		t.Fatalf("CacheSize restore: got=%v want=%v", got, cur)
	}
}

func TestOrderTransitions_ByEdge(t *testing.T) {
	metrics.MustRegister()

	edge := metrics.OrderTransitions.WithLabelValues("PENDING", "IN_TRANSIT")
	other := metrics.OrderTransitions.WithLabelValues("PENDING", "CANCELED")
	before, otherBefore := testutil.ToFloat64(edge), testutil.ToFloat64(other)

	edge.Inc()

	if got := testutil.ToFloat64(edge); got != before+1 {
		t.Fatalf("OrderTransitions(PENDING->IN_TRANSIT): got=%v want=%v", got, before+1)
	}
	if got := testutil.ToFloat64(other); got != otherBefore {
		t.Fatalf("OrderTransitions(PENDING->CANCELED) must not change: got=%v want=%v", got, otherBefore)
	}
}

func TestSessionOps_ByResult(t *testing.T) {
	metrics.MustRegister()

	okBefore := testutil.ToFloat64(metrics.SessionOps.WithLabelValues("create", "ok"))
	metrics.SessionOps.WithLabelValues("create", "ok").Inc()

	if got := testutil.ToFloat64(metrics.SessionOps.WithLabelValues("create", "ok")); got != okBefore+1 {
		t.Fatalf("SessionOps(create,ok): got=%v want=%v", got, okBefore+1)
	}
}
