package booking

import (
	"context"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/models"
)

// GuardFunc re-derives occupancy from the same-day bookings read inside the
// repository's write transaction and rejects the write by returning an error.
type GuardFunc func(sameDay []models.Booking) error

type Repository interface {
	// -------- Parlour --------
	GetParlourByID(
		ctx context.Context,
		id uint,
	) (*models.Parlour, error)

	GetParlourBySlug(
		ctx context.Context,
		slug string,
	) (*models.Parlour, error)

	// -------- Services --------
	ListActiveServices(
		ctx context.Context,
		parlourID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Booking (read) --------
	ListSameDayActive(
		ctx context.Context,
		parlourID uint,
		date time.Time,
	) ([]models.Booking, error)

	GetBooking(
		ctx context.Context,
		parlourID uint,
		bookingID uint,
	) (*models.Booking, error)

	ListBookingsForDay(
		ctx context.Context,
		parlourID uint,
		date time.Time,
	) ([]models.Booking, error)

	// -------- Booking (guarded writes) --------
	// Both run the guard and the write inside one serialized transaction
	// per (parlour, date); see the repository implementation.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		guard GuardFunc,
	) error

	RescheduleBooking(
		ctx context.Context,
		b *models.Booking,
		guard GuardFunc,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Customer linkage --------
	UpsertCustomerFromBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
