package controllers

import (
	"net/http"

	"car-rental-backend/services"
	"car-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// GetStats returns the headline numbers (GET /api/admin/dashboard/stats).
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.DashboardSvc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// GetReservationsByMonth returns the six-month booking series
// (GET /api/admin/dashboard/reservations-by-month).
func (dc *DashboardController) GetReservationsByMonth(c *gin.Context) {
	series, err := dc.DashboardSvc.ReservationsByMonth(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, series)
}

// GetCarsByCategory returns the fleet breakdown
// (GET /api/admin/dashboard/cars-by-category).
func (dc *DashboardController) GetCarsByCategory(c *gin.Context) {
	breakdown, err := dc.DashboardSvc.CarsByCategory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, breakdown)
}
