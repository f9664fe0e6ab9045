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

type CancelBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	parlourID uint,
	bookingID uint,
	actorID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, parlourID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Cancel(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	// Cancelling releases capacity, so the cached day is stale.
	uc.cache.Invalidate(ctx, parlourID, b.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ParlourID: parlourID,
		UserID:    actorID,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}
