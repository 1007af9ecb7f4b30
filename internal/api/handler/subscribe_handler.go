package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickmsg/messaging-system/internal/core/ports"
)

// SubscribeHandler holds open SSE connections, one registry channel each.
type SubscribeHandler struct {
	registry ports.SubscriptionRegistry
}

func NewSubscribeHandler(registry ports.SubscriptionRegistry) *SubscribeHandler {
	return &SubscribeHandler{registry: registry}
}

// Subscribe handles GET /subscribe: upgrades to a text event stream, emits a
// "connected" acknowledgement frame, then forwards one "message" event per
// notification until the client disconnects. There is no backlog and no
// resume; a reconnecting client gets a fresh channel.
func (h *SubscribeHandler) Subscribe(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	handle := h.registry.Attach(client.UserID)
	defer h.registry.Detach(handle)

	if _, err := fmt.Fprint(res, "event: connected\ndata: connected\n\n"); err != nil {
		return nil
	}
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			// Client disconnected (or server shutting down).
			return nil
		case n, ok := <-handle.C:
			if !ok {
				// Registry closed on shutdown.
				return nil
			}
			data, err := json.Marshal(n)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: message\ndata: %s\n\n", data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
