package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/httpresp"
	"github.com/parlourhq/parlour-scheduler/internal/models"
	ucBooking "github.com/parlourhq/parlour-scheduler/internal/usecase/booking"
	"github.com/parlourhq/parlour-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var parlour models.Parlour
	if err := h.db.Where("slug = ? AND is_active = true", slug).First(&parlour).Error; err != nil {
		httperr.NotFound(c, "parlour_not_found", "Parlour not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("parlour_id = ? AND active = true", parlour.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parlour":  parlour,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	date, ok := parseDateParam(dateStr)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	var parlour models.Parlour
	if err := h.db.Where("slug = ?", slug).First(&parlour).Error; err != nil {
		httperr.NotFound(c, "parlour_not_found", "Parlour not found.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), parlour.ID, date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	httpresp.Success(c, slots)
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var parlour models.Parlour
	if err := h.db.Where("slug = ?", slug).First(&parlour).Error; err != nil {
		httperr.NotFound(c, "parlour_not_found", "Parlour not found.")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}
	if !validators.IsPhoneValid(req.CustomerPhone) {
		httperr.BadRequest(c, "invalid_phone", "customer_phone is not a valid phone number.")
		return
	}

	// Public bookings always start pending; no staff actor.
	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ParlourID:      parlour.ID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ServiceIDs:     req.ServiceIDs,
		ServiceType:    req.ServiceType,
		ServiceAddress: req.ServiceAddress,
		Date:           req.Date,
		Time:           req.Time,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "booking_create_failed", "Could not create the booking.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"reference":        b.Reference,
			"appointment_date": b.AppointmentDate,
			"appointment_time": b.AppointmentTime,
			"total_duration":   b.TotalDuration,
			"total_amount":     b.TotalAmount,
			"status":           b.Status,
		},
	})
}
