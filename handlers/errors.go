package handlers

import (
	"errors"
	"net/http"

	"cleanitalia/services/booking"
	"cleanitalia/services/payment"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the domain error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var (
		ve *booking.ValidationError
		nf *booking.NotFoundError
		pe *booking.PersistenceError
		ge *payment.GatewayError
	)
	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", ve.Error())
	case errors.As(err, &nf):
		utils.JSONError(c, http.StatusNotFound, "Not found", nf.Error())
	case errors.As(err, &ge):
		utils.JSONError(c, http.StatusInternalServerError, "Payment gateway error", ge.Error())
	case errors.Is(err, payment.ErrNotConfigured):
		utils.JSONError(c, http.StatusInternalServerError, "Payment gateway not configured", err.Error())
	case errors.As(err, &pe):
		utils.JSONError(c, http.StatusInternalServerError, "Storage failure", pe.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Operation failed", err.Error())
	}
}
