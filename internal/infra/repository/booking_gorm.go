package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Parlour
// --------------------------------------------------

func (r *BookingGormRepository) GetParlourByID(
	ctx context.Context,
	id uint,
) (*models.Parlour, error) {

	var p models.Parlour
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BookingGormRepository) GetParlourBySlug(
	ctx context.Context,
	slug string,
) (*models.Parlour, error) {

	var p models.Parlour
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveServices(
	ctx context.Context,
	parlourID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("parlour_id = ? AND active = true AND id IN ?", parlourID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) ListSameDayActive(
	ctx context.Context,
	parlourID uint,
	date time.Time,
) ([]models.Booking, error) {

	return sameDayActive(r.db.WithContext(ctx), parlourID, date)
}

func sameDayActive(tx *gorm.DB, parlourID uint, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.
		Select("id", "appointment_time", "total_duration", "service_type", "status").
		Where(
			"parlour_id = ? AND appointment_date = ? AND status IN ?",
			parlourID, date, activeStatuses,
		).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	parlourID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND parlour_id = ?", bookingID, parlourID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	parlourID uint,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("parlour_id = ? AND appointment_date = ?", parlourID, date).
		Order("appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Booking (guarded writes)
// --------------------------------------------------

// dayLock serializes writers per (parlour, calendar day) with a Postgres
// transaction-scoped advisory lock. Two concurrent requests for the same
// parlour and date therefore re-read same-day bookings one after the other,
// and the loser of the race sees the winner's row before its guard runs.
func dayLock(tx *gorm.DB, parlourID uint, date time.Time) error {
	dateKey := date.Year()*10000 + int(date.Month())*100 + date.Day()
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(?, ?)",
		int32(parlourID), int32(dateKey),
	).Error
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	guard domain.GuardFunc,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dayLock(tx, b.ParlourID, b.AppointmentDate); err != nil {
			return err
		}

		sameDay, err := sameDayActive(tx, b.ParlourID, b.AppointmentDate)
		if err != nil {
			return err
		}

		if err := guard(sameDay); err != nil {
			return err
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) RescheduleBooking(
	ctx context.Context,
	b *models.Booking,
	guard domain.GuardFunc,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dayLock(tx, b.ParlourID, b.AppointmentDate); err != nil {
			return err
		}

		sameDay, err := sameDayActive(tx, b.ParlourID, b.AppointmentDate)
		if err != nil {
			return err
		}

		if err := guard(sameDay); err != nil {
			return err
		}

		return tx.Save(b).Error
	})
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Customer linkage
// --------------------------------------------------

// UpsertCustomerFromBooking keeps the CRM record in sync after a booking
// write: match by phone within the parlour, create on first visit, and
// backfill the booking's customer reference.
func (r *BookingGormRepository) UpsertCustomerFromBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if b.CustomerPhone == "" && b.CustomerID == nil {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer

		q := tx.Where("parlour_id = ?", b.ParlourID)
		if b.CustomerID != nil {
			q = q.Where("id = ?", *b.CustomerID)
		} else {
			q = q.Where("phone = ?", b.CustomerPhone)
		}

		err := q.First(&customer).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			customer = models.Customer{
				ParlourID: b.ParlourID,
				Name:      b.CustomerName,
				Phone:     b.CustomerPhone,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		now := time.Now()
		customer.TotalBookings++
		customer.LastVisitAt = &now
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}

		if b.CustomerID == nil {
			b.CustomerID = &customer.ID
			return tx.Model(&models.Booking{}).
				Where("id = ?", b.ID).
				Update("customer_id", customer.ID).Error
		}
		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

// IsNotFound lets use cases translate storage misses without importing gorm.
func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
