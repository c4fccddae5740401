package controllers

import (
	"net/http"

	"car-rental-backend/models"
	"car-rental-backend/services"
	"car-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

// CreateReservation handles the public booking form submit
// (POST /api/reservations).
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var payload services.CreateReservationInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	res, err := rc.ReservationSvc.Create(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"id": res.ID, "status": res.Status})
}

// GetReservation returns one reservation with its car
// (GET /api/admin/reservations/:id).
func (rc *ReservationController) GetReservation(c *gin.Context) {
	res, err := rc.ReservationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// ConfirmCall records the staff confirmation phone call
// (POST /api/admin/reservations/:id/confirm-call).
func (rc *ReservationController) ConfirmCall(c *gin.Context) {
	if err := rc.ReservationSvc.ConfirmCall(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": models.ReservationConfirmed})
}

// ConfirmPickup records the pickup handoff and reserves the car
// (POST /api/admin/reservations/:id/confirm-pickup).
func (rc *ReservationController) ConfirmPickup(c *gin.Context) {
	if err := rc.ReservationSvc.ConfirmPickup(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": models.ReservationCompleted})
}

// CancelReservation aborts a reservation before pickup
// (POST /api/admin/reservations/:id/cancel).
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	if err := rc.ReservationSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": models.ReservationCancelled})
}

// GetUsers returns reservations clustered by presumed customer
// (GET /api/admin/users).
func (rc *ReservationController) GetUsers(c *gin.Context) {
	groups, err := rc.ReservationSvc.ListGroupedByCustomer(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, groups)
}

type deleteUserPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// DeleteUser removes every reservation of one customer and releases their
// cars (DELETE /api/admin/users).
func (rc *ReservationController) DeleteUser(c *gin.Context) {
	var payload deleteUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	key := models.NewCustomerKey(payload.FirstName, payload.LastName, payload.Phone)
	if err := rc.ReservationSvc.DeleteByCustomer(c.Request.Context(), key); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
