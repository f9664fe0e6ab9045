package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/parlourhq/parlour-scheduler/internal/audit"
	"github.com/parlourhq/parlour-scheduler/internal/cache"
	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/infra/repository"
	"github.com/parlourhq/parlour-scheduler/internal/models"
	"github.com/parlourhq/parlour-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ParlourID uint

	CustomerName  string
	CustomerPhone string

	ServiceIDs []uint

	ServiceType    string
	ServiceAddress string

	Date string // YYYY-MM-DD
	Time string // HH:mm

	PaymentMethod string
	Notes         string

	// Staff user performing the booking; nil on the public path.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// 1. Parlour must exist and be active on the write path.
	parlour, err := uc.repo.GetParlourByID(ctx, in.ParlourID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, httperr.ErrBusiness("parlour_not_found")
		}
		return nil, err
	}
	if !parlour.IsActive {
		return nil, httperr.ErrBusiness("parlour_inactive")
	}

	// 2. Strict date/time validation before any scheduling math runs.
	rawDate, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, err := domain.ParseClock(in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = models.ServiceTypeInSalon
	}
	if serviceType != models.ServiceTypeInSalon && serviceType != models.ServiceTypeAtHome {
		return nil, httperr.ErrBusiness("invalid_service_type")
	}

	// 3. Resolve catalogue services into a snapshot with totals.
	snapshot, totalDuration, totalAmount, err := uc.resolveServices(ctx, in.ParlourID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	b := &models.Booking{
		Reference:       uuid.NewString(),
		ParlourID:       in.ParlourID,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		Services:        snapshot,
		ServiceType:     serviceType,
		ServiceAddress:  in.ServiceAddress,
		AppointmentDate: domain.NormalizeDate(rawDate),
		AppointmentTime: in.Time,
		TotalDuration:   totalDuration,
		TotalAmount:     totalAmount,
		Status:          string(domain.InitialStatus()),
		PaymentMethod:   paymentMethod,
		Notes:           in.Notes,
	}

	// 4. Guard and persist atomically; the repository serializes writers
	// per parlour+date, so the guard's read cannot go stale before commit.
	loc := timezone.Location(parlour.Timezone)
	window, err := domain.BookingWindow(b, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	capacity := domain.ParlourCapacity(parlour)

	err = uc.repo.CreateBooking(ctx, b, func(sameDay []models.Booking) error {
		occupied := domain.ActiveWindows(sameDay, b.AppointmentDate, loc, 0)
		return domain.GuardCapacity(b, window.Start, window.End, capacity, occupied)
	})
	if err != nil {
		return nil, err
	}

	// 5. Post-commit side effects; none of them may fail the booking.
	if err := uc.repo.UpsertCustomerFromBooking(ctx, b); err != nil {
		log.Println("customer linkage error:", err)
	}

	uc.cache.Invalidate(ctx, b.ParlourID, b.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ParlourID: b.ParlourID,
		UserID:    in.ActorID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}

func (uc *CreateBooking) resolveServices(
	ctx context.Context,
	parlourID uint,
	ids []uint,
) ([]models.BookingService, int, float64, error) {

	if len(ids) == 0 {
		return nil, 0, 0, httperr.ErrBusiness("service_not_found")
	}

	services, err := uc.repo.ListActiveServices(ctx, parlourID, ids)
	if err != nil {
		return nil, 0, 0, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	snapshot := make([]models.BookingService, 0, len(ids))
	totalDuration := 0
	totalAmount := 0.0
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, 0, 0, httperr.ErrBusiness("service_not_found")
		}
		snapshot = append(snapshot, models.BookingService{
			ServiceID:   s.ID,
			ServiceName: s.Name,
			Price:       s.Price,
			Duration:    s.DurationMin,
		})
		totalDuration += s.DurationMin
		totalAmount += s.Price
	}

	if totalDuration < 1 {
		return nil, 0, 0, httperr.ErrBusiness("invalid_duration")
	}

	return snapshot, totalDuration, totalAmount, nil
}
