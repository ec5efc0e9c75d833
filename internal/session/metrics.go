package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the hub's prometheus collectors.
type Metrics struct {
	Operations   *prometheus.CounterVec
	Events       *prometheus.CounterVec
	Recomputes   prometheus.Histogram
	QueueDepth   prometheus.Gauge
	OpenSessions prometheus.Gauge
}

// NewMetrics registers the hub collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "valuecharts",
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Chart operations processed by the session writer.",
		}, []string{"op", "result"}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "valuecharts",
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Chart events applied, by type and origin.",
		}, []string{"type", "origin"}),
		Recomputes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "valuecharts",
			Subsystem: "session",
			Name:      "recompute_seconds",
			Help:      "Time spent rebuilding row and label data.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "valuecharts",
			Subsystem: "session",
			Name:      "queue_depth",
			Help:      "Operations waiting for the session writer.",
		}),
		OpenSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "valuecharts",
			Subsystem: "session",
			Name:      "open",
			Help:      "Charts currently loaded into a session.",
		}),
	}
}
