package handlers

import (
	"net/http"
	"strconv"

	"cleanitalia/database/repository"
	"cleanitalia/models"
	"cleanitalia/services/availability"
	"cleanitalia/services/booking"
	"cleanitalia/services/payment"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublicHandler serves the unauthenticated booking-form endpoints.
type PublicHandler struct {
	Cities   repository.CityRepository
	Services repository.ServiceRepository
	Blocked  repository.BlockedSlotRepository
	Booking  booking.Service
	Gateway  payment.Gateway
	Logger   *zap.Logger
}

func NewPublicHandler(
	cities repository.CityRepository,
	services repository.ServiceRepository,
	blocked repository.BlockedSlotRepository,
	bookingSvc booking.Service,
	gateway payment.Gateway,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		Cities:   cities,
		Services: services,
		Blocked:  blocked,
		Booking:  bookingSvc,
		Gateway:  gateway,
		Logger:   logger,
	}
}

// GetCitiesHandler returns enabled cities only.
func (h *PublicHandler) GetCitiesHandler(c *gin.Context) {
	cities, err := h.Cities.GetAll(c.Request.Context(), true)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load cities", err.Error())
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GetServicesHandler returns enabled services only.
func (h *PublicHandler) GetServicesHandler(c *gin.Context) {
	services, err := h.Services.GetAll(c.Request.Context(), true)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load services", err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetAvailableSlotsHandler computes open hourly slots for a city and date.
func (h *PublicHandler) GetAvailableSlotsHandler(c *gin.Context) {
	cityID, err := strconv.ParseInt(c.Query("cityId"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "cityId must be a number")
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "date is required")
		return
	}

	city, err := h.Cities.GetByID(c.Request.Context(), cityID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "City not found", err.Error())
		return
	}
	blocked, err := h.Blocked.GetForCityDate(c.Request.Context(), cityID, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load blocked slots", err.Error())
		return
	}

	slots, message, err := availability.ComputeSlots(*city, date, blocked)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if message != "" {
		c.JSON(http.StatusOK, gin.H{"slots": slots, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateBookingHandler is the public booking creation endpoint.
func (h *PublicHandler) CreateBookingHandler(c *gin.Context) {
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

// CreatePaymentIntentHandler reserves funds for the quoted amount with
// manual capture. Amount arrives in major currency units (euros).
func (h *PublicHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if input.Amount <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "amount must be positive")
		return
	}

	auth, err := h.Gateway.Authorize(c.Request.Context(), input.Amount, "eur")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"clientSecret":    auth.ClientSecret,
		"paymentIntentId": auth.Reference,
	})
}
