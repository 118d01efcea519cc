package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Singleton(t *testing.T) {
	assert.Same(t, Metrics(), Metrics())
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *GatewayMetrics
	assert.NotPanics(t, func() {
		m.OrderCreated("USDT")
		m.OrderTransition("PENDING")
		m.Settlement("SUCCESS", "")
		m.Webhook("delivered")
		m.Sweep("SUCCESS")
		m.GasOperation("FUND", true)
		m.RPCError("BlockNumber")
		m.RPCFailover()
		m.SetWatchedAddresses(3)
		m.SetQueueDepth(1)
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := Metrics()

	before := testutil.ToFloat64(m.settlements.WithLabelValues("FAILED", "INSUFFICIENT_GAS"))
	m.Settlement("FAILED", "INSUFFICIENT_GAS")
	assert.Equal(t, before+1, testutil.ToFloat64(m.settlements.WithLabelValues("FAILED", "INSUFFICIENT_GAS")))

	m.SetWatchedAddresses(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(m.watchedAddresses))
}
