package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics groups the Prometheus collectors of the payment engine.
type GatewayMetrics struct {
	ordersCreated    *prometheus.CounterVec
	transitions      *prometheus.CounterVec
	settlements      *prometheus.CounterVec
	webhooks         *prometheus.CounterVec
	sweeps           *prometheus.CounterVec
	gasOps           *prometheus.CounterVec
	rpcErrors        *prometheus.CounterVec
	rpcFailovers     prometheus.Counter
	watchedAddresses prometheus.Gauge
	queueDepth       prometheus.Gauge
}

var (
	gatewayMetricsOnce sync.Once
	gatewayRegistry    *GatewayMetrics
)

// Metrics returns the lazily-initialised gateway metrics registered with the
// default Prometheus registry.
func Metrics() *GatewayMetrics {
	gatewayMetricsOnce.Do(func() {
		gatewayRegistry = &GatewayMetrics{
			ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "orders",
				Name:      "created_total",
				Help:      "Payment orders created, by currency.",
			}, []string{"currency"}),
			transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "orders",
				Name:      "transitions_total",
				Help:      "Order status transitions, by target status.",
			}, []string{"status"}),
			settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "settlement",
				Name:      "attempts_total",
				Help:      "Settlement attempts segmented by outcome and reason.",
			}, []string{"outcome", "reason"}),
			webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "webhook",
				Name:      "attempts_total",
				Help:      "Webhook delivery attempts by result (delivered, retry, failed).",
			}, []string{"result"}),
			sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "recovery",
				Name:      "sweeps_total",
				Help:      "Fund recovery sweeps by status.",
			}, []string{"status"}),
			gasOps: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "gas",
				Name:      "operations_total",
				Help:      "Gas funding and recovery operations.",
			}, []string{"action", "success"}),
			rpcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "chain",
				Name:      "rpc_errors_total",
				Help:      "Chain RPC call failures by operation.",
			}, []string{"op"}),
			rpcFailovers: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "cryptopay",
				Subsystem: "chain",
				Name:      "rpc_failovers_total",
				Help:      "Switches from the primary to the secondary RPC endpoint.",
			}),
			watchedAddresses: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "cryptopay",
				Subsystem: "watcher",
				Name:      "watched_addresses",
				Help:      "Deposit addresses currently subscribed for incoming transfers.",
			}),
			queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "cryptopay",
				Subsystem: "settlement",
				Name:      "queue_depth",
				Help:      "Orders waiting for the settlement worker.",
			}),
		}
		prometheus.MustRegister(
			gatewayRegistry.ordersCreated,
			gatewayRegistry.transitions,
			gatewayRegistry.settlements,
			gatewayRegistry.webhooks,
			gatewayRegistry.sweeps,
			gatewayRegistry.gasOps,
			gatewayRegistry.rpcErrors,
			gatewayRegistry.rpcFailovers,
			gatewayRegistry.watchedAddresses,
			gatewayRegistry.queueDepth,
		)
	})
	return gatewayRegistry
}

func (m *GatewayMetrics) OrderCreated(currency string) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(currency).Inc()
}

func (m *GatewayMetrics) OrderTransition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

func (m *GatewayMetrics) Settlement(outcome, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.settlements.WithLabelValues(outcome, reason).Inc()
}

func (m *GatewayMetrics) Webhook(result string) {
	if m == nil {
		return
	}
	m.webhooks.WithLabelValues(result).Inc()
}

func (m *GatewayMetrics) Sweep(status string) {
	if m == nil {
		return
	}
	m.sweeps.WithLabelValues(status).Inc()
}

func (m *GatewayMetrics) GasOperation(action string, success bool) {
	if m == nil {
		return
	}
	m.gasOps.WithLabelValues(action, strconv.FormatBool(success)).Inc()
}

func (m *GatewayMetrics) RPCError(op string) {
	if m == nil {
		return
	}
	m.rpcErrors.WithLabelValues(op).Inc()
}

func (m *GatewayMetrics) RPCFailover() {
	if m == nil {
		return
	}
	m.rpcFailovers.Inc()
}

func (m *GatewayMetrics) SetWatchedAddresses(n int) {
	if m == nil {
		return
	}
	m.watchedAddresses.Set(float64(n))
}

func (m *GatewayMetrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}
