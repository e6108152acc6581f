// Package events implements the push half of the admin sync channel: a
// server-sent-event hub fanning "bookings-updated" out to every connected
// admin dashboard.
package events

import (
	"sync"

	"go.uber.org/zap"
)

// Event is one message pushed to subscribers.
type Event struct {
	Name string
	Data string
}

// Hub fans events out to subscriber channels. Sends never block: a
// subscriber that cannot keep up has the event dropped, which is safe
// because every push only tells the client to re-fetch.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[chan Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber and returns its event channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast delivers the event to every live subscriber.
func (h *Hub) Broadcast(name, data string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- Event{Name: name, Data: data}:
		default:
			h.logger.Warn("Dropping event for slow subscriber", zap.String("event", name))
		}
	}
}

// BookingsUpdated implements the lifecycle manager's Broadcaster.
func (h *Hub) BookingsUpdated() {
	h.Broadcast("bookings-updated", "{}")
}

// SubscriberCount reports how many clients are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
