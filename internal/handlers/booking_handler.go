package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/httpresp"
	"github.com/parlourhq/parlour-scheduler/internal/middleware"
	ucBooking "github.com/parlourhq/parlour-scheduler/internal/usecase/booking"
	"github.com/parlourhq/parlour-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
	rescheduleUC   *ucBooking.RescheduleBooking
	confirmUC      *ucBooking.ConfirmBooking
	cancelUC       *ucBooking.CancelBooking
	completeUC     *ucBooking.CompleteBooking
	listByDateUC   *ucBooking.ListBookingsByDate
}

func NewBookingHandler(
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
	rescheduleUC *ucBooking.RescheduleBooking,
	confirmUC *ucBooking.ConfirmBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
) *BookingHandler {
	return &BookingHandler{
		availabilityUC: availabilityUC,
		createUC:       createUC,
		rescheduleUC:   rescheduleUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		listByDateUC:   listByDateUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	ServiceIDs    []uint `json:"service_ids" binding:"required,min=1"`
	ServiceType   string `json:"service_type"`
	// Required only for at-home bookings.
	ServiceAddress string `json:"service_address"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	PaymentMethod  string `json:"payment_method"`
	Notes          string `json:"notes"`
}

type RescheduleBookingRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	parlourIDStr := c.Query("parlourId")
	dateStr := c.Query("date")

	if parlourIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "parlourId and date are required.")
		return
	}

	parlourID, err := strconv.ParseUint(parlourIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_parlour_id", "parlourId must be numeric.")
		return
	}

	date, ok := parseDateParam(dateStr)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), uint(parlourID), date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	httpresp.Success(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}
	if !validators.IsPhoneValid(req.CustomerPhone) {
		httperr.BadRequest(c, "invalid_phone", "customer_phone is not a valid phone number.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ParlourID:      parlourID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ServiceIDs:     req.ServiceIDs,
		ServiceType:    req.ServiceType,
		ServiceAddress: req.ServiceAddress,
		Date:           req.Date,
		Time:           req.Time,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		ActorID:        &userID,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "booking_create_failed", "Could not create the booking.")
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	b, err := h.rescheduleUC.Execute(c.Request.Context(), ucBooking.RescheduleBookingInput{
		ParlourID: parlourID,
		BookingID: bookingID,
		Date:      req.Date,
		Time:      req.Time,
		ActorID:   &userID,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "booking_reschedule_failed", "Could not reschedule the booking.")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, "confirm")
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, "cancel")
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, "complete")
}

func (h *BookingHandler) transition(c *gin.Context, action string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var (
		b   any
		err error
	)
	switch action {
	case "confirm":
		b, err = h.confirmUC.Execute(ctx, parlourID, bookingID, &userID)
	case "cancel":
		b, err = h.cancelUC.Execute(ctx, parlourID, bookingID, &userID)
	case "complete":
		b, err = h.completeUC.Execute(ctx, parlourID, bookingID, &userID)
	}
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "booking_update_failed", "Could not update the booking.")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	parlourID := c.MustGet(middleware.ContextParlourID).(uint)

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

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), parlourID, date)
	if err != nil {
		httperr.Internal(c, "booking_list_failed", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return 0, false
	}
	return uint(id), true
}
