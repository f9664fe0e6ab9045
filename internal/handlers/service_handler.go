package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/middleware"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	var services []models.Service
	if err := h.db.
		Where("parlour_id = ?", parlourID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	svc := models.Service{
		ParlourID:   parlourID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND parlour_id = ?", id, parlourID).
		First(&svc).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Category = req.Category
	svc.DurationMin = req.DurationMin
	svc.Price = req.Price
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	c.JSON(http.StatusOK, svc)
}
