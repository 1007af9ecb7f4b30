// Package fanout holds the in-process subscription registry: the process-wide
// mapping from user identity to that user's open notification channels.
package fanout

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quickmsg/messaging-system/internal/api/metrics"
	"github.com/quickmsg/messaging-system/internal/core/domain"
	"github.com/quickmsg/messaging-system/internal/core/ports"
)

const channelBuffer = 16

// Registry implements ports.SubscriptionRegistry. All map mutation happens
// under mu; channels are only closed while holding it, so Notify never sends
// on a closed channel.
type Registry struct {
	mu     sync.Mutex
	subs   map[string]map[string]chan domain.Notification
	closed bool
	log    zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		subs: make(map[string]map[string]chan domain.Notification),
		log:  log,
	}
}

// Attach registers a new channel under the user's set and returns its handle.
func (r *Registry) Attach(userID string) ports.ChannelHandle {
	ch := make(chan domain.Notification, channelBuffer)
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		close(ch)
		return ports.ChannelHandle{UserID: userID, ID: id, C: ch}
	}

	set, ok := r.subs[userID]
	if !ok {
		set = make(map[string]chan domain.Notification)
		r.subs[userID] = set
	}
	set[id] = ch

	metrics.SubscriberChannels.Inc()
	r.log.Debug().Str("user_id", userID).Str("channel_id", id).Msg("subscriber attached")

	return ports.ChannelHandle{UserID: userID, ID: id, C: ch}
}

// Detach removes exactly the handle's channel; the user's entry disappears
// once its last channel is gone. Detaching an unknown handle is a no-op.
func (r *Registry) Detach(h ports.ChannelHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[h.UserID]
	if !ok {
		return
	}
	ch, ok := set[h.ID]
	if !ok {
		return
	}

	delete(set, h.ID)
	if len(set) == 0 {
		delete(r.subs, h.UserID)
	}
	close(ch)

	metrics.SubscriberChannels.Dec()
	r.log.Debug().Str("user_id", h.UserID).Str("channel_id", h.ID).Msg("subscriber detached")
}

// Notify writes the payload to every open channel of the user. Sends are
// non-blocking: a frame to a consumer with a full buffer is dropped.
func (r *Registry) Notify(userID string, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ch := range r.subs[userID] {
		select {
		case ch <- n:
			metrics.NotificationsSentTotal.Inc()
		default:
			metrics.NotificationsDroppedTotal.Inc()
			r.log.Warn().Str("user_id", userID).Str("channel_id", id).Int64("message_id", n.MessageID).Msg("slow subscriber, notification dropped")
		}
	}
}

// Close terminates every open channel. Used on server shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	for userID, set := range r.subs {
		for _, ch := range set {
			close(ch)
			metrics.SubscriberChannels.Dec()
		}
		delete(r.subs, userID)
	}
}
