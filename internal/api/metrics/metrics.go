// Package metrics defines and registers all custom Prometheus metrics for the
// messaging API. It is the single source of truth for metric names, labels,
// and help strings; registration happens via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messaging"

// MessagesStoredTotal counts message rows appended to the log.
// Label:
//   - kind: "text" or "file"
var MessagesStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_stored_total",
		Help:      "Total number of message rows stored, by kind.",
	},
	[]string{"kind"},
)

// MessagesDeletedTotal counts successful message deletions.
var MessagesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_deleted_total",
		Help:      "Total number of messages deleted.",
	},
)

// NotificationsSentTotal counts notification frames delivered to subscriber
// channels.
var NotificationsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications written to subscriber channels.",
	},
)

// NotificationsDroppedTotal counts frames dropped because a subscriber's
// channel buffer was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped due to slow subscribers.",
	},
)

// SubscriberChannels tracks the current number of open subscription channels
// across all users. Long-lived connections hold a socket each; watch this for
// resource exhaustion.
var SubscriberChannels = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "subscriber_channels",
		Help:      "Current number of open subscription channels.",
	},
)
