package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parlourhq/parlour-scheduler/internal/audit"
	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

// ===============================
// In-memory repository
// ===============================

type fakeRepo struct {
	parlours map[uint]*models.Parlour
	services []models.Service

	sameDay  []models.Booking
	bookings map[uint]*models.Booking

	nextID          uint
	created         []*models.Booking
	customerUpserts int
}

func newFakeRepo(p *models.Parlour) *fakeRepo {
	r := &fakeRepo{
		parlours: map[uint]*models.Parlour{},
		bookings: map[uint]*models.Booking{},
		nextID:   100,
	}
	if p != nil {
		r.parlours[p.ID] = p
	}
	return r
}

func (r *fakeRepo) GetParlourByID(_ context.Context, id uint) (*models.Parlour, error) {
	p, ok := r.parlours[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepo) GetParlourBySlug(_ context.Context, slug string) (*models.Parlour, error) {
	for _, p := range r.parlours {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListActiveServices(_ context.Context, parlourID uint, ids []uint) ([]models.Service, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Service
	for _, s := range r.services {
		if s.ParlourID == parlourID && s.Active && want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListSameDayActive(_ context.Context, _ uint, _ time.Time) ([]models.Booking, error) {
	return r.sameDay, nil
}

func (r *fakeRepo) GetBooking(_ context.Context, parlourID, bookingID uint) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok || b.ParlourID != parlourID {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeRepo) ListBookingsForDay(_ context.Context, _ uint, _ time.Time) ([]models.Booking, error) {
	return r.sameDay, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking, guard domain.GuardFunc) error {
	if err := guard(r.sameDay); err != nil {
		return err
	}
	r.nextID++
	b.ID = r.nextID
	r.sameDay = append(r.sameDay, *b)
	r.created = append(r.created, b)
	return nil
}

func (r *fakeRepo) RescheduleBooking(_ context.Context, b *models.Booking, guard domain.GuardFunc) error {
	if err := guard(r.sameDay); err != nil {
		return err
	}
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) UpsertCustomerFromBooking(_ context.Context, _ *models.Booking) error {
	r.customerUpserts++
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ===============================
// Fixtures
// ===============================

func openAllWeek() models.WeekSchedule {
	ws := models.WeekSchedule{}
	for _, d := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		ws[d] = models.DayHours{IsOpen: true, StartTime: "09:00", EndTime: "18:00"}
	}
	return ws
}

func activeParlour() *models.Parlour {
	return &models.Parlour{
		ID:                  1,
		Slug:                "glow-studio",
		Name:                "Glow Studio",
		Capacity:            1,
		SlotDurationMinutes: 30,
		WorkingHours:        openAllWeek(),
		Timezone:            "UTC",
		IsActive:            true,
	}
}

func haircut() models.Service {
	return models.Service{ID: 10, ParlourID: 1, Name: "Haircut", DurationMin: 60, Price: 25, Active: true}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ParlourID:     1,
		CustomerName:  "Nadia Rahman",
		CustomerPhone: "+8801711000000",
		ServiceIDs:    []uint{10},
		Date:          "2026-06-15",
		Time:          "10:00",
	}
}

func newCreateUC(repo *fakeRepo) *CreateBooking {
	return NewCreateBooking(repo, nil, audit.NewDispatcher(nil))
}

// ===============================
// Tests
// ===============================

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{haircut()}

	b, err := newCreateUC(repo).Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, models.ServiceTypeInSalon, b.ServiceType)
	assert.Equal(t, "cash", b.PaymentMethod)
	assert.Equal(t, 60, b.TotalDuration)
	assert.Equal(t, 25.0, b.TotalAmount)
	require.Len(t, b.Services, 1)
	assert.Equal(t, "Haircut", b.Services[0].ServiceName)

	// Date stored as UTC midnight regardless of input rendering.
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), b.AppointmentDate)
	assert.Equal(t, "10:00", b.AppointmentTime)

	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, repo.customerUpserts)
}

func TestCreateBooking_NoCapacity(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{haircut()}
	repo.sameDay = []models.Booking{{
		ID:              50,
		AppointmentTime: "10:00",
		TotalDuration:   60,
		ServiceType:     models.ServiceTypeInSalon,
		Status:          "confirmed",
	}}

	b, err := newCreateUC(repo).Execute(context.Background(), validInput())
	assert.Nil(t, b)
	assert.Equal(t, "no_capacity", httperr.BusinessCode(err))
	assert.Empty(t, repo.created)
	assert.Zero(t, repo.customerUpserts)
}

func TestCreateBooking_AtHomeBypassesCapacity(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{haircut()}
	repo.sameDay = []models.Booking{{
		ID:              50,
		AppointmentTime: "10:00",
		TotalDuration:   60,
		ServiceType:     models.ServiceTypeInSalon,
		Status:          "confirmed",
	}}

	in := validInput()
	in.ServiceType = models.ServiceTypeAtHome
	in.ServiceAddress = "12 Lake Road"

	b, err := newCreateUC(repo).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceTypeAtHome, b.ServiceType)
}

func TestCreateBooking_UnknownParlour(t *testing.T) {
	repo := newFakeRepo(nil)

	_, err := newCreateUC(repo).Execute(context.Background(), validInput())
	assert.Equal(t, "parlour_not_found", httperr.BusinessCode(err))
}

func TestCreateBooking_InactiveParlour(t *testing.T) {
	p := activeParlour()
	p.IsActive = false
	repo := newFakeRepo(p)

	_, err := newCreateUC(repo).Execute(context.Background(), validInput())
	assert.Equal(t, "parlour_inactive", httperr.BusinessCode(err))
}

func TestCreateBooking_InvalidDateOrTime(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{haircut()}

	bad := []struct {
		date string
		time string
	}{
		{"15-06-2026", "10:00"},
		{"2026-06-15", "10:61"},
		{"2026-06-15", "25:00"},
		{"2026-06-15", "9am"},
	}
	for _, tc := range bad {
		in := validInput()
		in.Date = tc.date
		in.Time = tc.time

		_, err := newCreateUC(repo).Execute(context.Background(), in)
		assert.Equal(t, "invalid_date_or_time", httperr.BusinessCode(err),
			"date=%q time=%q", tc.date, tc.time)
	}
}

func TestCreateBooking_UnknownService(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{haircut()}

	in := validInput()
	in.ServiceIDs = []uint{10, 99}

	_, err := newCreateUC(repo).Execute(context.Background(), in)
	assert.Equal(t, "service_not_found", httperr.BusinessCode(err))

	in.ServiceIDs = nil
	_, err = newCreateUC(repo).Execute(context.Background(), in)
	assert.Equal(t, "service_not_found", httperr.BusinessCode(err))
}

func TestCreateBooking_InvalidServiceType(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{haircut()}

	in := validInput()
	in.ServiceType = "delivery"

	_, err := newCreateUC(repo).Execute(context.Background(), in)
	assert.Equal(t, "invalid_service_type", httperr.BusinessCode(err))
}

func TestCreateBooking_MultiServiceTotals(t *testing.T) {
	repo := newFakeRepo(activeParlour())
	repo.services = []models.Service{
		haircut(),
		{ID: 11, ParlourID: 1, Name: "Facial", DurationMin: 45, Price: 40, Active: true},
	}

	in := validInput()
	in.ServiceIDs = []uint{10, 11}

	b, err := newCreateUC(repo).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 105, b.TotalDuration)
	assert.Equal(t, 65.0, b.TotalAmount)
	assert.Len(t, b.Services, 2)
}
