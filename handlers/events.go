package handlers

import (
	"io"

	"cleanitalia/services/events"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler serves the admin event stream.
type EventsHandler struct {
	Hub    *events.Hub
	Logger *zap.Logger
}

func NewEventsHandler(hub *events.Hub, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{Hub: hub, Logger: logger}
}

// StreamHandler holds the connection open and relays hub events. Auth is
// handled by the query-token middleware on the route. The connection ends
// when the client goes away; the subscription is released with it.
func (h *EventsHandler) StreamHandler(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)
	h.Logger.Info("Admin event stream opened", zap.Int("subscribers", h.Hub.SubscriberCount()))

	c.SSEvent("hello", "{}")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	h.Logger.Info("Admin event stream closed")
}
