package booking

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourhq/parlour-scheduler/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 16, h, m, 0, 0, time.UTC)
}

func win(startH, startM, durationMin int) Window {
	s := at(startH, startM)
	return Window{Start: s, End: s.Add(time.Duration(durationMin) * time.Minute)}
}

func inSalon() *models.Booking {
	return &models.Booking{ServiceType: models.ServiceTypeInSalon}
}

func TestGuardCapacity_RejectsSaturatedWindow(t *testing.T) {
	// Capacity 2, both seats taken 10:00-11:00.
	existing := []Window{win(10, 0, 60), win(10, 0, 60)}

	err := GuardCapacity(inSalon(), at(10, 0), at(11, 0), 2, existing)
	assert.ErrorIs(t, err, ErrNoCapacity)

	// 11:00-12:00 is free.
	err = GuardCapacity(inSalon(), at(11, 0), at(12, 0), 2, existing)
	assert.NoError(t, err)
}

func TestGuardCapacity_PartialOverlapCounts(t *testing.T) {
	existing := []Window{win(10, 0, 60)}

	// Candidate 10:30-11:30 overlaps the 10:00 booking for half an hour.
	err := GuardCapacity(inSalon(), at(10, 30), at(11, 30), 1, existing)
	assert.ErrorIs(t, err, ErrNoCapacity)

	// Touching the end boundary is fine.
	err = GuardCapacity(inSalon(), at(11, 0), at(12, 0), 1, existing)
	assert.NoError(t, err)
}

func TestGuardCapacity_MidWindowSaturation(t *testing.T) {
	// Two bookings cover only the middle of a long candidate; the sweep
	// must catch the saturated sub-interval even though the candidate's
	// own start instant is free.
	existing := []Window{win(10, 30, 30)}

	err := GuardCapacity(inSalon(), at(10, 0), at(11, 30), 1, existing)
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestGuardCapacity_AtHomeExempt(t *testing.T) {
	existing := []Window{win(10, 0, 60), win(10, 0, 60)}

	b := &models.Booking{ServiceType: models.ServiceTypeAtHome}
	err := GuardCapacity(b, at(10, 0), at(11, 0), 2, existing)
	assert.NoError(t, err)
}

func TestGuardCapacity_DefaultsCapacityToOne(t *testing.T) {
	existing := []Window{win(10, 0, 30)}

	err := GuardCapacity(inSalon(), at(10, 0), at(10, 30), 0, existing)
	assert.ErrorIs(t, err, ErrNoCapacity)
}

// Every slot the calculator reports available must be accepted by the guard,
// and every unavailable slot rejected.
func TestAvailabilityGuardConsistency(t *testing.T) {
	p := testParlour()
	p.Capacity = 2

	sameDay := []models.Booking{
		{ID: 1, AppointmentTime: "09:30", TotalDuration: 45, ServiceType: models.ServiceTypeInSalon, Status: "pending"},
		{ID: 2, AppointmentTime: "10:00", TotalDuration: 90, ServiceType: models.ServiceTypeInSalon, Status: "confirmed"},
		{ID: 3, AppointmentTime: "10:00", TotalDuration: 30, ServiceType: models.ServiceTypeInSalon, Status: "confirmed"},
		{ID: 4, AppointmentTime: "15:00", TotalDuration: 120, ServiceType: models.ServiceTypeInSalon, Status: "pending"},
	}

	slots := ComputeDaySlots(p, monday, earlyMorning, sameDay, time.UTC)
	require.NotEmpty(t, slots)

	occupied := ActiveWindows(sameDay, monday, time.UTC, 0)
	step := time.Duration(SlotMinutes(p)) * time.Minute

	for _, s := range slots {
		start, err := ClockOnDate(monday, s.Time, time.UTC)
		require.NoError(t, err)

		guardErr := GuardCapacity(inSalon(), start, start.Add(step), p.Capacity, occupied)
		if s.IsAvailable {
			assert.NoError(t, guardErr, "slot %s reported available", s.Time)
		} else {
			assert.ErrorIs(t, guardErr, ErrNoCapacity, "slot %s reported full", s.Time)
		}
	}
}

// Randomly place bookings through the guard and verify the capacity
// invariant holds at every minute of the day for whatever it accepted.
func TestGuardCapacity_InvariantUnderRandomLoad(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, capacity := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("capacity_%d", capacity), func(t *testing.T) {
			var accepted []Window

			for i := 0; i < 200; i++ {
				startMin := 9*60 + rng.Intn(9*60) // 09:00 .. 17:59
				duration := []int{15, 30, 45, 60, 90}[rng.Intn(5)]
				w := win(startMin/60, startMin%60, duration)

				if GuardCapacity(inSalon(), w.Start, w.End, capacity, accepted) == nil {
					accepted = append(accepted, w)
				}
			}

			require.NotEmpty(t, accepted)

			dayStart := at(0, 0)
			for minute := 0; minute < 24*60; minute++ {
				instant := dayStart.Add(time.Duration(minute) * time.Minute)
				occ := 0
				for _, w := range accepted {
					if !w.Start.After(instant) && w.End.After(instant) {
						occ++
					}
				}
				if occ > capacity {
					t.Fatalf("capacity %d exceeded at %s: %d overlapping bookings",
						capacity, instant.Format("15:04"), occ)
				}
			}
		})
	}
}
