package booking

import (
	"context"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/audit"
	"github.com/parlourhq/parlour-scheduler/internal/cache"
	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

type CompleteBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	parlourID uint,
	bookingID uint,
	actorID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, parlourID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Complete(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	// Completed bookings no longer hold capacity for the rest of the day.
	uc.cache.Invalidate(ctx, parlourID, b.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ParlourID: parlourID,
		UserID:    actorID,
		Action:    "booking_completed",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}
