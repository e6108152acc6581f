package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := hub.Subscribe()
	b := hub.Subscribe()
	require.Equal(t, 2, hub.SubscriberCount())

	hub.BookingsUpdated()

	for _, ch := range []chan Event{a, b} {
		ev := <-ch
		assert.Equal(t, "bookings-updated", ev.Name)
		assert.Equal(t, "{}", ev.Data)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ch := hub.Subscribe()
	hub.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount())

	// A second unsubscribe of the same channel must not panic.
	hub.Unsubscribe(ch)
}

func TestBroadcastNeverBlocksOnSlowSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ch := hub.Subscribe()

	// Overfill the buffer; extra events are dropped, not delivered late.
	for i := 0; i < cap(ch)+5; i++ {
		hub.Broadcast("bookings-updated", "{}")
	}
	assert.Len(t, ch, cap(ch))
}
