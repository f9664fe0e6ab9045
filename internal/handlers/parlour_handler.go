package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/middleware"
	"github.com/parlourhq/parlour-scheduler/internal/models"
	"github.com/parlourhq/parlour-scheduler/internal/timezone"
)

type ParlourHandler struct {
	db *gorm.DB
}

func NewParlourHandler(db *gorm.DB) *ParlourHandler {
	return &ParlourHandler{db: db}
}

// UpdateParlourConfigRequest carries the scheduling configuration; nil
// pointers leave the current value untouched.
type UpdateParlourConfigRequest struct {
	Name    *string `json:"name"`
	Branch  *string `json:"branch"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`

	Capacity            *int                  `json:"capacity"`
	SlotDurationMinutes *int                  `json:"slot_duration_minutes"`
	WorkingHours        *models.WeekSchedule  `json:"working_hours"`
	Breaks              *[]models.BreakWindow `json:"breaks"`
	LeadTimeMinutes     *int                  `json:"lead_time_minutes"`
	DailyCutoffTime     *string               `json:"daily_cutoff_time"`
	Timezone            *string               `json:"timezone"`
	IsActive            *bool                 `json:"is_active"`
}

func (h *ParlourHandler) Get(c *gin.Context) {
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	var parlour models.Parlour
	if err := h.db.First(&parlour, parlourID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "parlour_not_found", "Parlour not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_parlour", "Could not load parlour settings.")
		return
	}

	c.JSON(http.StatusOK, parlour)
}

func (h *ParlourHandler) Update(c *gin.Context) {
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	var parlour models.Parlour
	if err := h.db.First(&parlour, parlourID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "parlour_not_found", "Parlour not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_parlour", "Could not load parlour settings.")
		return
	}

	var req UpdateParlourConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		parlour.Name = *req.Name
	}
	if req.Branch != nil {
		parlour.Branch = *req.Branch
	}
	if req.Phone != nil {
		parlour.Phone = *req.Phone
	}
	if req.Email != nil {
		parlour.Email = *req.Email
	}
	if req.Address != nil {
		parlour.Address = *req.Address
	}

	if req.Capacity != nil {
		if *req.Capacity < 1 {
			httperr.BadRequest(c, "invalid_capacity", "Capacity must be at least 1.")
			return
		}
		parlour.Capacity = *req.Capacity
	}

	if req.SlotDurationMinutes != nil {
		if *req.SlotDurationMinutes < domain.MinSlotMinutes {
			httperr.BadRequest(c, "invalid_slot_duration", "Slot duration must be at least 5 minutes.")
			return
		}
		parlour.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	if req.WorkingHours != nil {
		for day, wh := range *req.WorkingHours {
			if !wh.IsOpen {
				continue
			}
			if !isValidClock(wh.StartTime) || !isValidClock(wh.EndTime) {
				httperr.BadRequest(c, "invalid_working_hours", "Working hours for "+day+" must be HH:mm.")
				return
			}
		}
		parlour.WorkingHours = *req.WorkingHours
	}

	if req.Breaks != nil {
		for _, br := range *req.Breaks {
			if !isValidClock(br.StartTime) || !isValidClock(br.EndTime) {
				httperr.BadRequest(c, "invalid_break", "Break windows must be HH:mm.")
				return
			}
		}
		parlour.Breaks = *req.Breaks
	}

	if req.LeadTimeMinutes != nil {
		if *req.LeadTimeMinutes < 0 {
			httperr.BadRequest(c, "invalid_lead_time", "Lead time must be zero or positive (in minutes).")
			return
		}
		parlour.LeadTimeMinutes = *req.LeadTimeMinutes
	}

	if req.DailyCutoffTime != nil {
		if *req.DailyCutoffTime != "" && !isValidClock(*req.DailyCutoffTime) {
			httperr.BadRequest(c, "invalid_cutoff", "Daily cutoff must be HH:mm.")
			return
		}
		parlour.DailyCutoffTime = *req.DailyCutoffTime
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone name.")
			return
		}
		parlour.Timezone = *req.Timezone
	}

	if req.IsActive != nil {
		parlour.IsActive = *req.IsActive
	}

	if err := h.db.Save(&parlour).Error; err != nil {
		httperr.Internal(c, "failed_to_update_parlour", "Could not save parlour settings.")
		return
	}

	c.JSON(http.StatusOK, parlour)
}

func isValidClock(s string) bool {
	_, err := domain.ParseClock(s)
	return err == nil
}
