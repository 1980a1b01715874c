package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PaymentActions      *prometheus.CounterVec
	GatewayCallDuration *prometheus.HistogramVec
	SyncRowsDiscovered  prometheus.Counter
	SyncMessages        *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		PaymentActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paypalr_payment_actions_total",
				Help: "Total number of admin payment actions by outcome",
			},
			[]string{"action", "status"},
		),
		GatewayCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paypalr_gateway_call_duration_seconds",
				Help:    "Duration of remote payment processor calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		SyncRowsDiscovered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "paypalr_sync_rows_discovered_total",
				Help: "Ledger rows discovered during out-of-band reconciliation",
			},
		),
		SyncMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paypalr_sync_messages_total",
				Help: "Sync messages accumulated during reconciliation by severity",
			},
			[]string{"severity"},
		),
	}
}

func (m *Metrics) RecordAction(action, status string) {
	m.PaymentActions.WithLabelValues(action, status).Inc()
}

func (m *Metrics) ObserveGatewayCall(operation string, duration time.Duration) {
	m.GatewayCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordSyncDiscovered(rows int) {
	m.SyncRowsDiscovered.Add(float64(rows))
}

func (m *Metrics) RecordSyncMessage(severity string) {
	m.SyncMessages.WithLabelValues(severity).Inc()
}
