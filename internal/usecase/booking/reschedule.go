package booking

import (
	"context"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/audit"
	"github.com/parlourhq/parlour-scheduler/internal/cache"
	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/infra/repository"
	"github.com/parlourhq/parlour-scheduler/internal/models"
	"github.com/parlourhq/parlour-scheduler/internal/timezone"
)

type RescheduleBookingInput struct {
	ParlourID uint
	BookingID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	ActorID *uint
}

type RescheduleBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewRescheduleBooking(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	audit *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	parlour, err := uc.repo.GetParlourByID(ctx, in.ParlourID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, httperr.ErrBusiness("parlour_not_found")
		}
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.ParlourID, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	// Terminal bookings keep their history; only capacity-holding ones move.
	if !domain.Status(b.Status).Occupies() {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	rawDate, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, err := domain.ParseClock(in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	oldDate := b.AppointmentDate
	b.AppointmentDate = domain.NormalizeDate(rawDate)
	b.AppointmentTime = in.Time

	loc := timezone.Location(parlour.Timezone)
	window, err := domain.BookingWindow(b, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	capacity := domain.ParlourCapacity(parlour)

	err = uc.repo.RescheduleBooking(ctx, b, func(sameDay []models.Booking) error {
		// The booking itself may appear in the same-day read; it must not
		// count against its own new window.
		occupied := domain.ActiveWindows(sameDay, b.AppointmentDate, loc, b.ID)
		return domain.GuardCapacity(b, window.Start, window.End, capacity, occupied)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, b.ParlourID, oldDate, b.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ParlourID: b.ParlourID,
		UserID:    in.ActorID,
		Action:    "booking_rescheduled",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}
