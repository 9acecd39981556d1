package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationFanout counts notifications produced on post creation, by kind.
	NotificationFanout = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_notification_fanout_total",
		Help: "Total number of notifications written on post creation, by kind",
	}, []string{"kind"})

	// ReactionToggles counts reaction toggle operations by kind and direction.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_reaction_toggles_total",
		Help: "Total number of reaction toggles, by kind and direction (on/off)",
	}, []string{"kind", "direction"})

	// MessagesSent counts direct messages persisted.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_messages_sent_total",
		Help: "Total number of direct messages sent",
	})

	// FeedQueryLatency records feed composition latency.
	FeedQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chirp_feed_query_latency_seconds",
		Help:    "Feed composition query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveFeedQuery records the latency of one feed composition, measured from
// start.
func ObserveFeedQuery(start time.Time) {
	FeedQueryLatency.Observe(time.Since(start).Seconds())
}
