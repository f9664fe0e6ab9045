package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourhq/parlour-scheduler/internal/models"
)

// monday is an arbitrary fixed Monday used throughout the slot tests.
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func testParlour() *models.Parlour {
	return &models.Parlour{
		ID:                  1,
		Capacity:            1,
		SlotDurationMinutes: 30,
		IsActive:            true,
		WorkingHours: models.WeekSchedule{
			"monday": {IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		},
	}
}

// earlyMorning is a "now" long before opening, so lead time never interferes.
var earlyMorning = time.Date(2026, 3, 16, 0, 30, 0, 0, time.UTC)

func slotTimes(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time
	}
	return out
}

func findSlot(t *testing.T, slots []Slot, at string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not found", at)
	return Slot{}
}

func TestComputeDaySlots_FullOpenDay(t *testing.T) {
	slots := ComputeDaySlots(testParlour(), monday, earlyMorning, nil, time.UTC)

	// 09:00 .. 17:30 inclusive at 30 min steps.
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)

	for _, s := range slots {
		assert.True(t, s.IsAvailable)
		assert.Equal(t, 1, s.AvailableCapacity)
		assert.Equal(t, 1, s.TotalCapacity)
	}
}

func TestComputeDaySlots_ClosedDay(t *testing.T) {
	p := testParlour()

	sunday := monday.AddDate(0, 0, -1)
	assert.Empty(t, ComputeDaySlots(p, sunday, earlyMorning, nil, time.UTC))

	p.WorkingHours["monday"] = models.DayHours{IsOpen: false, StartTime: "09:00", EndTime: "18:00"}
	assert.Empty(t, ComputeDaySlots(p, monday, earlyMorning, nil, time.UTC))
}

func TestComputeDaySlots_InactiveParlour(t *testing.T) {
	p := testParlour()
	p.IsActive = false
	assert.Empty(t, ComputeDaySlots(p, monday, earlyMorning, nil, time.UTC))

	assert.Empty(t, ComputeDaySlots(nil, monday, earlyMorning, nil, time.UTC))
}

func TestComputeDaySlots_BreakExclusion(t *testing.T) {
	p := testParlour()
	p.Breaks = []models.BreakWindow{{StartTime: "13:00", EndTime: "14:00"}}

	slots := ComputeDaySlots(p, monday, earlyMorning, nil, time.UTC)
	times := slotTimes(slots)

	assert.NotContains(t, times, "13:00")
	assert.NotContains(t, times, "13:30")
	assert.Contains(t, times, "12:30")
	assert.Contains(t, times, "14:00")
}

func TestComputeDaySlots_LeadTimeBoundary(t *testing.T) {
	p := testParlour()
	p.LeadTimeMinutes = 60

	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	slots := ComputeDaySlots(p, monday, now, nil, time.UTC)
	times := slotTimes(slots)

	// With 60 min notice at 10:00, 10:30 is too soon; 11:00 is exactly
	// on the boundary and allowed.
	assert.NotContains(t, times, "10:30")
	assert.Contains(t, times, "11:00")
}

func TestComputeDaySlots_CutoffMakesWholeDayUnavailable(t *testing.T) {
	p := testParlour()
	p.DailyCutoffTime = "18:00"

	now := time.Date(2026, 3, 16, 18, 1, 0, 0, time.UTC)
	assert.Empty(t, ComputeDaySlots(p, monday, now, nil, time.UTC))

	// Exactly at cutoff the day is still open.
	now = time.Date(2026, 3, 16, 18, 0, 0, 0, time.UTC)
	p.WorkingHours["monday"] = models.DayHours{IsOpen: true, StartTime: "18:00", EndTime: "20:00"}
	assert.NotEmpty(t, ComputeDaySlots(p, monday, now, nil, time.UTC))
}

func TestComputeDaySlots_Occupancy(t *testing.T) {
	p := testParlour()
	p.Capacity = 2

	sameDay := []models.Booking{
		{ID: 1, AppointmentTime: "10:00", TotalDuration: 60, ServiceType: models.ServiceTypeInSalon, Status: "confirmed"},
		{ID: 2, AppointmentTime: "10:00", TotalDuration: 60, ServiceType: models.ServiceTypeInSalon, Status: "pending"},
	}

	slots := ComputeDaySlots(p, monday, earlyMorning, sameDay, time.UTC)

	ten := findSlot(t, slots, "10:00")
	assert.False(t, ten.IsAvailable)
	assert.Equal(t, 0, ten.AvailableCapacity)
	assert.Equal(t, 2, ten.TotalCapacity)

	tenThirty := findSlot(t, slots, "10:30")
	assert.False(t, tenThirty.IsAvailable)

	eleven := findSlot(t, slots, "11:00")
	assert.True(t, eleven.IsAvailable)
	assert.Equal(t, 2, eleven.AvailableCapacity)
}

func TestComputeDaySlots_AtHomeDoesNotOccupy(t *testing.T) {
	p := testParlour()

	sameDay := []models.Booking{
		{ID: 1, AppointmentTime: "10:00", TotalDuration: 60, ServiceType: models.ServiceTypeAtHome, Status: "confirmed"},
	}

	slots := ComputeDaySlots(p, monday, earlyMorning, sameDay, time.UTC)
	assert.True(t, findSlot(t, slots, "10:00").IsAvailable)
}

func TestComputeDaySlots_SlotDurationFloor(t *testing.T) {
	p := testParlour()
	p.SlotDurationMinutes = 1 // below the floor, must not loop per minute

	slots := ComputeDaySlots(p, monday, earlyMorning, nil, time.UTC)

	// Floored to 5 minutes: (18:00-09:00)/5 = 108 slots.
	assert.Len(t, slots, 108)
}
