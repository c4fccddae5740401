package controllers

import (
	"errors"
	"log"
	"net/http"

	"car-rental-backend/models"
	"car-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the domain error taxonomy onto HTTP statuses:
// validation -> 400, unknown id -> 404, out-of-order transition or write
// conflict -> 409, anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, models.ErrReservationNotFound),
		errors.Is(err, models.ErrCarNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrAdminNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal_error")
	}
}
