package controllers

import (
	"net/http"

	"car-rental-backend/models"
	"car-rental-backend/services"
	"car-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type CarController struct {
	CarSvc *services.CarService
}

func NewCarController(svc *services.CarService) *CarController {
	return &CarController{CarSvc: svc}
}

// GetCars serves the customer-facing catalog, hidden cars excluded
// (GET /api/cars).
func (cc *CarController) GetCars(c *gin.Context) {
	cars, err := cc.CarSvc.ListVisible(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cars)
}

// GetCar returns one car (GET /api/cars/:id).
func (cc *CarController) GetCar(c *gin.Context) {
	car, err := cc.CarSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, car)
}

// AdminGetCars lists the whole fleet with an optional ?status= filter
// (GET /api/admin/cars).
func (cc *CarController) AdminGetCars(c *gin.Context) {
	cars, err := cc.CarSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cars)
}

// CreateCar adds a car to the fleet (POST /api/admin/cars).
func (cc *CarController) CreateCar(c *gin.Context) {
	var car models.Car
	if err := c.ShouldBindJSON(&car); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := cc.CarSvc.Create(c.Request.Context(), &car); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, car)
}

// UpdateCar patches car fields (PUT/PATCH /api/admin/cars/:id).
func (cc *CarController) UpdateCar(c *gin.Context) {
	var payload services.UpdateCarInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	car, err := cc.CarSvc.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, car)
}

// ToggleCarVisibility flips a car between hidden and available
// (PATCH /api/admin/cars/:id/visibility).
func (cc *CarController) ToggleCarVisibility(c *gin.Context) {
	car, err := cc.CarSvc.ToggleVisibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, car)
}

// DeleteCar soft-deletes a car (DELETE /api/admin/cars/:id).
func (cc *CarController) DeleteCar(c *gin.Context) {
	if err := cc.CarSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
