package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"cleanitalia/config"
	"cleanitalia/middleware"
	"cleanitalia/services/booking"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler covers session management and dashboard aggregates.
type AdminHandler struct {
	Sessions utils.SessionStore
	Booking  booking.Service
	Logger   *zap.Logger
}

func NewAdminHandler(sessions utils.SessionStore, bookingSvc booking.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Sessions: sessions, Booking: bookingSvc, Logger: logger}
}

// LoginHandler checks the configured admin credentials and issues a bearer
// token backed by a stored session.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(config.AppConfig.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(config.AppConfig.AdminPassword)) == 1
	if !userOK || !passOK {
		h.Logger.Warn("Admin login rejected", zap.String("username", input.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(input.Username, utils.AdminSessionTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}
	session := utils.AdminSession{Username: input.Username, CreatedAt: time.Now().UTC()}
	if err := h.Sessions.Save(c.Request.Context(), utils.HashToken(token), session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CheckSessionHandler reports whether the presented token maps to a live
// session. Always 200; the body carries the verdict.
func (h *AdminHandler) CheckSessionHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if _, err := utils.ValidateToken(tokenString); err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	if _, err := h.Sessions.Get(c.Request.Context(), utils.HashToken(tokenString)); err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// LogoutHandler invalidates the presented session.
func (h *AdminHandler) LogoutHandler(c *gin.Context) {
	hash := c.GetString(middleware.CtxAdminTokenHash)
	if hash != "" {
		if err := h.Sessions.Delete(c.Request.Context(), hash); err != nil {
			h.Logger.Warn("Failed to delete session", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// StatsHandler returns dashboard counters and confirmed revenue.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.Booking.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
