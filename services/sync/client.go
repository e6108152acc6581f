// Package sync implements the admin dashboard's view of server state: a
// 30-second poll as the correctness fallback, a server-sent-event stream for
// low latency, and an offline queue for worker records drafted without a
// session. Both sync mechanisms share one lifecycle and are torn down
// together on logout; leaving either running would leak the connection.
package sync

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"cleanitalia/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is the client-side store handed to render callbacks. It is only
// refreshed through defined sync operations, never mutated ad hoc.
type Snapshot struct {
	Bookings []models.Booking
	Stats    models.Stats
}

// AdminClient talks to the admin HTTP API.
type AdminClient struct {
	baseURL      string
	httpClient   *http.Client
	logger       *zap.Logger
	pollInterval time.Duration
	sseRetry     time.Duration

	mu       sync.Mutex
	token    string
	snapshot Snapshot
	pending  []models.Worker

	running   bool
	stop      chan struct{}
	sseCancel context.CancelFunc
	wg        sync.WaitGroup

	// OnChange fires after every successful refresh with the new snapshot.
	OnChange func(Snapshot)
}

// NewAdminClient constructs a client for the given server base URL.
func NewAdminClient(baseURL string, pollInterval, sseRetry time.Duration, logger *zap.Logger) *AdminClient {
	return &AdminClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
		pollInterval: pollInterval,
		sseRetry:     sseRetry,
	}
}

// Login authenticates and, on success, submits any offline-drafted worker
// records before returning.
func (c *AdminClient) Login(ctx context.Context, username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := c.httpClient.Post(c.baseURL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}

	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()

	c.flushPending(ctx)
	return nil
}

// Logout invalidates the session server-side and tears down polling and the
// event stream together.
func (c *AdminClient) Logout(ctx context.Context) {
	c.StopSync()

	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()
	if token == "" {
		return
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if resp, err := c.httpClient.Do(req); err == nil {
		resp.Body.Close()
	}
}

// StartSync begins polling and the event stream. A second call while sync is
// already running is a no-op: at most one poll loop and one live stream
// exist per client.
func (c *AdminClient) StartSync() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stop = make(chan struct{})
	sseCtx, cancel := context.WithCancel(context.Background())
	c.sseCancel = cancel
	stop := c.stop
	c.mu.Unlock()

	c.wg.Add(2)
	go c.pollLoop(stop)
	go c.streamLoop(sseCtx)

	// Prime the snapshot immediately rather than waiting a full interval.
	if err := c.Refresh(context.Background()); err != nil {
		c.logger.Warn("Initial refresh failed", zap.Error(err))
	}
}

// StopSync halts the poll ticker and closes the event stream. Safe to call
// when sync is not running.
func (c *AdminClient) StopSync() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stop)
	c.sseCancel()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *AdminClient) isRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *AdminClient) pollLoop(stop chan struct{}) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.Refresh(context.Background()); err != nil {
				c.logger.Warn("Poll refresh failed", zap.Error(err))
			}
		}
	}
}

// streamLoop consumes the server-sent-event stream. On any transport error
// it closes the connection and schedules a single reconnect attempt after
// the fixed retry delay.
func (c *AdminClient) streamLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		if ctx.Err() != nil || !c.isRunning() {
			return
		}
		if err := c.consumeStream(ctx); err != nil && ctx.Err() == nil {
			c.logger.Warn("Event stream closed, reconnecting once",
				zap.Error(err), zap.Duration("delay", c.sseRetry))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.sseRetry):
		}
	}
}

func (c *AdminClient) consumeStream(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	// Token travels as a query parameter: EventSource transports cannot set
	// custom headers.
	url := fmt.Sprintf("%s/api/admin/events?token=%s", c.baseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// No overall timeout on a long-lived stream.
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event stream rejected with status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if event, ok := strings.CutPrefix(line, "event:"); ok {
			if strings.TrimSpace(event) == "bookings-updated" {
				if err := c.Refresh(ctx); err != nil {
					c.logger.Warn("Refresh after push failed", zap.Error(err))
				}
			}
		}
	}
	return scanner.Err()
}

// Refresh re-fetches the booking list and stats. This is the single fetch
// path shared by the poll timer and the push channel.
func (c *AdminClient) Refresh(ctx context.Context) error {
	var bookings []models.Booking
	if err := c.getJSON(ctx, "/api/admin/bookings", &bookings); err != nil {
		return err
	}
	var stats models.Stats
	if err := c.getJSON(ctx, "/api/admin/stats", &stats); err != nil {
		return err
	}

	c.mu.Lock()
	c.snapshot = Snapshot{Bookings: bookings, Stats: stats}
	snap := c.snapshot
	onChange := c.OnChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(snap)
	}
	return nil
}

// Snapshot returns the current client-side view.
func (c *AdminClient) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// DeleteBooking removes the booking optimistically from the local snapshot,
// then calls the server. The local removal is rolled back when the call
// fails or comes back unauthorized.
func (c *AdminClient) DeleteBooking(ctx context.Context, id int64) error {
	c.mu.Lock()
	previous := c.snapshot
	kept := make([]models.Booking, 0, len(previous.Bookings))
	for _, b := range previous.Bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.snapshot.Bookings = kept
	token := c.token
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/admin/bookings/%d", c.baseURL, id), nil)
	if err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
		var resp *http.Response
		resp, err = c.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 400 {
				err = fmt.Errorf("delete rejected with status %d", resp.StatusCode)
			}
		}
	}
	if err != nil {
		c.mu.Lock()
		c.snapshot = previous
		c.mu.Unlock()
		return err
	}
	return nil
}

// SaveWorker submits a worker record. Without a session the record goes into
// the local pending queue under a client-generated ref and is synced on the
// next successful login; the caller's draft survives restarts of the pass.
func (c *AdminClient) SaveWorker(ctx context.Context, w models.Worker) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token == "" {
		if w.ClientRef == "" {
			w.ClientRef = uuid.New().String()
		}
		c.mu.Lock()
		c.pending = append(c.pending, w)
		c.mu.Unlock()
		c.logger.Info("Queued worker for later sync", zap.String("clientRef", w.ClientRef))
		return nil
	}
	return c.postWorker(ctx, token, w)
}

// PendingWorkers returns the offline queue contents.
func (c *AdminClient) PendingWorkers() []models.Worker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Worker, len(c.pending))
	copy(out, c.pending)
	return out
}

// flushPending submits queued worker records in order. A record leaves the
// queue only once the server acknowledges it; a network failure aborts the
// rest of the pass so the remainder retries on the next login.
func (c *AdminClient) flushPending(ctx context.Context) {
	c.mu.Lock()
	queue := c.pending
	c.pending = nil
	token := c.token
	c.mu.Unlock()

	var remaining []models.Worker
	for i, w := range queue {
		err := c.postWorker(ctx, token, w)
		if err == nil {
			continue
		}
		if isNetworkError(err) {
			c.logger.Warn("Worker sync pass aborted", zap.Error(err))
			remaining = append(remaining, queue[i:]...)
			break
		}
		// Server rejected this record; keep it and move on.
		c.logger.Warn("Worker record rejected during sync",
			zap.String("clientRef", w.ClientRef), zap.Error(err))
		remaining = append(remaining, w)
	}

	if len(remaining) > 0 {
		c.mu.Lock()
		c.pending = append(remaining, c.pending...)
		c.mu.Unlock()
	}
}

func (c *AdminClient) postWorker(ctx context.Context, token string, w models.Worker) error {
	body, err := json.Marshal(w)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/admin/workers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &netError{err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("worker save rejected with status %d", resp.StatusCode)
	}
	return nil
}

func (c *AdminClient) getJSON(ctx context.Context, path string, out interface{}) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// netError marks transport-level failures so flushPending can distinguish
// them from server rejections.
type netError struct {
	err error
}

func (e *netError) Error() string { return e.err.Error() }
func (e *netError) Unwrap() error { return e.err }

func isNetworkError(err error) bool {
	var ne *netError
	return errors.As(err, &ne)
}
