package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cleanitalia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *AdminClient {
	return NewAdminClient(baseURL, time.Hour, 10*time.Millisecond, zap.NewNop())
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
}

func TestSaveWorkerQueuesWithoutSession(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")

	require.NoError(t, c.SaveWorker(context.Background(), models.Worker{Name: "Marco"}))
	require.NoError(t, c.SaveWorker(context.Background(), models.Worker{Name: "Elena"}))

	pending := c.PendingWorkers()
	require.Len(t, pending, 2)
	assert.Equal(t, "Marco", pending[0].Name)
	assert.NotEmpty(t, pending[0].ClientRef, "queued records get a client ref")
	assert.NotEqual(t, pending[0].ClientRef, pending[1].ClientRef)
}

func TestLoginFlushesQueueInOrder(t *testing.T) {
	var posted []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", loginHandler)
	mux.HandleFunc("/api/admin/workers", func(w http.ResponseWriter, r *http.Request) {
		var worker models.Worker
		require.NoError(t, json.NewDecoder(r.Body).Decode(&worker))
		posted = append(posted, worker.Name)
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()
	require.NoError(t, c.SaveWorker(ctx, models.Worker{Name: "Marco"}))
	require.NoError(t, c.SaveWorker(ctx, models.Worker{Name: "Elena"}))
	require.NoError(t, c.SaveWorker(ctx, models.Worker{Name: "Sara"}))

	require.NoError(t, c.Login(ctx, "admin", "admin123"))

	assert.Equal(t, []string{"Marco", "Elena", "Sara"}, posted)
	assert.Empty(t, c.PendingWorkers())
}

func TestFlushAbortsPassOnNetworkFailure(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", loginHandler)
	mux.HandleFunc("/api/admin/workers", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			return
		}
		// Kill the connection without a response to simulate the network
		// dropping mid-pass.
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()
	for _, name := range []string{"Marco", "Elena", "Sara"} {
		require.NoError(t, c.SaveWorker(ctx, models.Worker{Name: name}))
	}

	require.NoError(t, c.Login(ctx, "admin", "admin123"))

	// The first record was acknowledged; the failure on the second aborts
	// the pass and keeps the rest queued in order.
	pending := c.PendingWorkers()
	require.Len(t, pending, 2)
	assert.Equal(t, "Elena", pending[0].Name)
	assert.Equal(t, "Sara", pending[1].Name)
}

func TestFlushKeepsServerRejectedRecord(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", loginHandler)
	mux.HandleFunc("/api/admin/workers", func(w http.ResponseWriter, r *http.Request) {
		var worker models.Worker
		json.NewDecoder(r.Body).Decode(&worker)
		if worker.Name == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()
	require.NoError(t, c.SaveWorker(ctx, models.Worker{Name: "Marco"}))
	require.NoError(t, c.SaveWorker(ctx, models.Worker{}))
	require.NoError(t, c.SaveWorker(ctx, models.Worker{Name: "Sara"}))

	require.NoError(t, c.Login(ctx, "admin", "admin123"))

	// The rejected record stays queued; the ones around it went through.
	pending := c.PendingWorkers()
	require.Len(t, pending, 1)
	assert.Empty(t, pending[0].Name)
}

func TestRefreshUpdatesSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/bookings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Booking{{ID: 1, Name: "Giulia", Status: models.StatusPending}})
	})
	mux.HandleFunc("/api/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Stats{Total: 1, Pending: 1})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	var notified bool
	c.OnChange = func(s Snapshot) { notified = true }

	require.NoError(t, c.Refresh(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap.Bookings, 1)
	assert.Equal(t, "Giulia", snap.Bookings[0].Name)
	assert.Equal(t, 1, snap.Stats.Total)
	assert.True(t, notified)
}

func TestDeleteBookingRollsBackOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/bookings/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.mu.Lock()
	c.snapshot = Snapshot{Bookings: []models.Booking{{ID: 1}, {ID: 2}}}
	c.mu.Unlock()

	err := c.DeleteBooking(context.Background(), 1)
	require.Error(t, err)
	assert.Len(t, c.Snapshot().Bookings, 2, "failed delete restores the optimistic removal")
}

func TestDeleteBookingOptimistic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/bookings/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.mu.Lock()
	c.snapshot = Snapshot{Bookings: []models.Booking{{ID: 1}, {ID: 2}}}
	c.mu.Unlock()

	require.NoError(t, c.DeleteBooking(context.Background(), 1))
	snap := c.Snapshot()
	require.Len(t, snap.Bookings, 1)
	assert.Equal(t, int64(2), snap.Bookings[0].ID)
}

func TestStartStopSyncLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/bookings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Booking{})
	})
	mux.HandleFunc("/api/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Stats{})
	})
	mux.HandleFunc("/api/admin/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.StartSync()
	c.StartSync() // second call must be a no-op
	assert.True(t, c.isRunning())

	// StopSync waits for both loops; returning at all is the assertion.
	c.StopSync()
	assert.False(t, c.isRunning())
	c.StopSync()
}
