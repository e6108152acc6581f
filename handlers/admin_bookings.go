package handlers

import (
	"context"
	"net/http"
	"strconv"

	"cleanitalia/models"
	"cleanitalia/services/booking"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the lifecycle manager to the admin dashboard.
type BookingHandler struct {
	Booking booking.Service
	Logger  *zap.Logger
}

func NewBookingHandler(bookingSvc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Booking: bookingSvc, Logger: logger}
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "booking id must be a number")
		return 0, false
	}
	return id, true
}

// ListHandler returns all bookings, optionally filtered by ?status=.
func (h *BookingHandler) ListHandler(c *gin.Context) {
	bookings, err := h.Booking.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetHandler returns one booking.
func (h *BookingHandler) GetHandler(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.Booking.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateHandler lets an admin register a booking on a customer's behalf.
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.Booking.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateHandler persists an admin edit of booking details.
func (h *BookingHandler) UpdateHandler(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var b models.Booking
	if err := c.ShouldBindJSON(&b); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b.ID = id
	updated, err := h.Booking.Update(c.Request.Context(), b)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ConfirmHandler captures payment and confirms the booking.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	h.transition(c, h.Booking.Confirm)
}

// RejectHandler releases payment and cancels the booking.
func (h *BookingHandler) RejectHandler(c *gin.Context) {
	h.transition(c, h.Booking.Reject)
}

// PayHandler marks the booking paid out of band.
func (h *BookingHandler) PayHandler(c *gin.Context) {
	h.transition(c, h.Booking.MarkPaid)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id int64) (*models.Booking, error)) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := op(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteHandler removes one booking permanently.
func (h *BookingHandler) DeleteHandler(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := h.Booking.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// ClearAllHandler wipes every booking. Irreversible. Reached as
// /bookings/all/clear; any other value in the wildcard segment is a 404.
func (h *BookingHandler) ClearAllHandler(c *gin.Context) {
	if c.Param("id") != "all" {
		utils.JSONError(c, http.StatusNotFound, "Not found", "unknown booking operation")
		return
	}
	if err := h.Booking.ClearAll(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	h.Logger.Warn("All bookings cleared by admin")
	c.JSON(http.StatusOK, gin.H{"message": "all bookings cleared"})
}
