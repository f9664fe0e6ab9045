package booking

import (
	"context"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/cache"
	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
	"github.com/parlourhq/parlour-scheduler/internal/infra/repository"
	"github.com/parlourhq/parlour-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(repo domain.Repository, c *cache.AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

// Execute returns the slot sequence for a parlour and date. An unknown or
// inactive parlour yields an empty sequence, not an error, so clients render
// "no availability" instead of failing.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	parlourID uint,
	date time.Time,
) ([]domain.Slot, error) {

	day := domain.NormalizeDate(date)

	if slots, ok := uc.cache.Get(ctx, parlourID, day); ok {
		return slots, nil
	}

	parlour, err := uc.repo.GetParlourByID(ctx, parlourID)
	if err != nil {
		if repository.IsNotFound(err) {
			return []domain.Slot{}, nil
		}
		return nil, err
	}
	if !parlour.IsActive {
		return []domain.Slot{}, nil
	}

	sameDay, err := uc.repo.ListSameDayActive(ctx, parlourID, day)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(parlour.Timezone)
	slots := domain.ComputeDaySlots(parlour, day, time.Now().In(loc), sameDay, loc)

	uc.cache.Set(ctx, parlourID, day, slots)

	return slots, nil
}
