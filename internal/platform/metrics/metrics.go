package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "dsfr"
	subsystem = "gateway"
)

var (
	// DispatchTotal counts dispatch invocations by action type and outcome kind.
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "dispatch_total",
		Help:      "Action dispatches (outcome=navigate/reload/alert/none/ignored)",
	}, []string{"type", "outcome"})

	// StoreCallDuration observes platform mutation latency.
	StoreCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_call_duration_seconds",
		Help:      "Latency of record store mutations",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type", "status"})

	UploadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "upload_total",
		Help:      "File uploads (kind=file/version, status=success/error/rejected)",
	}, []string{"kind", "status"})

	FormSaveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "form_save_total",
		Help:      "Record form saves by status",
	}, []string{"status"})

	// InFlightRejectedTotal counts triggers refused because the component was busy.
	InFlightRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "inflight_rejected_total",
		Help:      "Operations rejected by the in-flight guard",
	}, []string{"component"})

	AlertAckWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "alert_ack_wait_seconds",
		Help:      "Time between an alert being shown and its acknowledgement",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "websocket_clients",
		Help:      "Currently attached websocket clients",
	})

	BrokerMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "broker_messages_total",
		Help:      "Kafka messages by topic and direction (in/out) and status",
	}, []string{"topic", "direction", "status"})
)
