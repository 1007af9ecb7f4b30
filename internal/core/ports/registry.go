package ports

import "github.com/quickmsg/messaging-system/internal/core/domain"

// ChannelHandle identifies one open subscription channel. The channel is
// closed by Detach (or registry shutdown); a reconnecting subscriber gets a
// fresh handle and receives no backlog.
type ChannelHandle struct {
	UserID string
	ID     string
	C      <-chan domain.Notification
}

// SubscriptionRegistry is the process-wide fan-out service: a mapping from
// user identity to the set of that user's open notification channels.
// Constructed once at startup with explicit lifecycle.
type SubscriptionRegistry interface {
	// Attach registers a new channel under the user's set.
	Attach(userID string) ChannelHandle
	// Detach removes the channel, closing it; the user's entry disappears
	// once its last channel is detached.
	Detach(h ChannelHandle)
	// Notify writes the payload to every open channel of the user. Sends are
	// non-blocking: frames to slow consumers are dropped.
	Notify(userID string, n domain.Notification)
	// Close terminates every open channel. Attach after Close returns an
	// already-closed channel.
	Close()
}
