package notify

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	notifications *prometheus.CounterVec
	reconnects    *prometheus.CounterVec
	connected     *prometheus.GaugeVec
}

var getMetrics = sync.OnceValue(func() *metrics {
	return &metrics{
		notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Total number of received notifications broken down by channel and result.",
		}, []string{"channel", "result"}),
		reconnects: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Subsystem: "notify",
			Name:      "reconnects_total",
			Help:      "Total number of listener reconnect attempts.",
		}, []string{"channel"}),
		connected: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "orgchart",
			Subsystem: "notify",
			Name:      "connected",
			Help:      "1 while the listener holds a LISTEN connection.",
		}, []string{"channel"}),
	}
})
