package booking

import (
	"context"
	"time"

	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/dto"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	parlourID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	day := domain.NormalizeDate(date)

	bookings, err := uc.repo.ListBookingsForDay(ctx, parlourID, day)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		names := make([]string, 0, len(b.Services))
		for _, s := range b.Services {
			names = append(names, s.ServiceName)
		}
		out = append(out, dto.BookingListDTO{
			ID:              b.ID,
			Reference:       b.Reference,
			CustomerName:    b.CustomerName,
			CustomerPhone:   b.CustomerPhone,
			AppointmentDate: b.AppointmentDate,
			AppointmentTime: b.AppointmentTime,
			TotalDuration:   b.TotalDuration,
			TotalAmount:     b.TotalAmount,
			Status:          b.Status,
			ServiceType:     b.ServiceType,
			ServiceNames:    names,
		})
	}

	return out, nil
}
