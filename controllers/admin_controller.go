package controllers

import (
	"net/http"
	"strconv"

	"car-rental-backend/services"
	"car-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminSvc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{AdminSvc: svc}
}

// GetAdmins lists admin accounts (GET /api/admin/admins).
func (ac *AdminController) GetAdmins(c *gin.Context) {
	admins, err := ac.AdminSvc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

type createAdminPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAdmin adds an admin account (POST /api/admin/admins).
func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var payload createAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	admin, err := ac.AdminSvc.Create(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, admin)
}

// DeleteAdmin removes an admin account (DELETE /api/admin/admins/:id).
func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid admin id")
		return
	}

	if err := ac.AdminSvc.Delete(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
