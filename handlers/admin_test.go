package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanitalia/config"
	"cleanitalia/database/repository"
	"cleanitalia/middleware"
	"cleanitalia/models"
	"cleanitalia/services/booking"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, booking.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.AdminUsername = "admin"
	config.AppConfig.AdminPassword = "admin123"

	store := utils.NewMemorySessionStore()
	svc := &booking.DefaultService{
		Repo:   repository.NewMemoryBookingRepo(),
		Logger: zap.NewNop(),
	}
	h := NewAdminHandler(store, svc, zap.NewNop())
	bh := NewBookingHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/admin/login", h.LoginHandler)
	r.GET("/api/admin/check-session", h.CheckSessionHandler)

	auth := middleware.AdminAuthMiddleware(store)
	r.POST("/api/admin/logout", auth, h.LogoutHandler)
	r.GET("/api/admin/stats", auth, h.StatsHandler)
	r.GET("/api/admin/bookings", auth, bh.ListHandler)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	token := loginToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/admin/check-session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The token no longer maps to a session.
	w = doJSON(t, r, http.MethodGet, "/api/admin/check-session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckSessionNeverErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/check-session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/admin/check-session", "garbage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/admin/stats", "/api/admin/bookings"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)
	token := loginToken(t, r)

	_, err := svc.Create(context.Background(), models.BookingRequest{
		Name: "Giulia", Email: "g@example.com", Phone: "333",
		Date: "2026-09-07", Time: "10:00", Hours: 2, Cleaners: 1, TotalAmount: 40,
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0.0, stats.Revenue)
}

func TestListBookingsStatusFilter(t *testing.T) {
	r, svc := newTestRouter(t)
	token := loginToken(t, r)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), models.BookingRequest{
			Name: "Giulia", Email: "g@example.com", Phone: "333",
			Date: "2026-09-07", Time: "10:00", Hours: 2, Cleaners: 1, TotalAmount: 40,
		})
		require.NoError(t, err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/admin/bookings?status=pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 2)

	w = doJSON(t, r, http.MethodGet, "/api/admin/bookings?status=confirmed", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Empty(t, bookings)
}
