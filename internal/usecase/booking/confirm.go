package booking

import (
	"context"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/audit"
	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

type ConfirmBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	parlourID uint,
	bookingID uint,
	actorID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, parlourID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	// A pending booking already holds capacity, so confirming never needs
	// to re-run the overlap guard.
	if err := domain.Confirm(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ParlourID: parlourID,
		UserID:    actorID,
		Action:    "booking_confirmed",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}
