package booking

import (
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/models"
)

const (
	DefaultSlotMinutes = 30
	// Floor on slot granularity; also guarantees the slot loop terminates.
	MinSlotMinutes = 5

	clockLayout = "15:04"
)

// Slot is one bookable start time with its remaining capacity.
type Slot struct {
	Time              string `json:"time"`
	AvailableCapacity int    `json:"availableCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
	IsAvailable       bool   `json:"isAvailable"`
}

// SlotMinutes returns the parlour's slot granularity with default and floor
// applied.
func SlotMinutes(p *models.Parlour) int {
	m := p.SlotDurationMinutes
	if m <= 0 {
		m = DefaultSlotMinutes
	}
	if m < MinSlotMinutes {
		m = MinSlotMinutes
	}
	return m
}

// ParlourCapacity returns the parlour's capacity, at least 1.
func ParlourCapacity(p *models.Parlour) int {
	if p.Capacity < 1 {
		return 1
	}
	return p.Capacity
}

// ComputeDaySlots produces the ordered slot sequence for a parlour on the
// given calendar date. now is injected so lead-time and cutoff rules are
// testable; loc is the parlour's zone, in which every "HH:mm" value is read.
//
// Rules, in order:
//   - inactive parlour or closed weekday → no slots
//   - once the daily cutoff has passed, the whole day is gone, not just the
//     remaining slots
//   - slots starting inside the lead-time horizon are dropped
//   - slots intersecting a break window are dropped
//   - every remaining slot carries its occupancy-derived free capacity
func ComputeDaySlots(
	p *models.Parlour,
	date time.Time,
	now time.Time,
	sameDay []models.Booking,
	loc *time.Location,
) []Slot {

	if p == nil || !p.IsActive {
		return []Slot{}
	}

	wh, ok := p.WorkingHours[WeekdayKey(date)]
	if !ok || !wh.IsOpen {
		return []Slot{}
	}

	open, err := ClockOnDate(date, wh.StartTime, loc)
	if err != nil {
		return []Slot{}
	}
	close, err := ClockOnDate(date, wh.EndTime, loc)
	if err != nil {
		return []Slot{}
	}

	if p.DailyCutoffTime != "" {
		cutoff, err := ClockOnDate(date, p.DailyCutoffTime, loc)
		if err == nil && now.After(cutoff) {
			return []Slot{}
		}
	}

	leadMinutes := p.LeadTimeMinutes
	if leadMinutes < 0 {
		leadMinutes = 0
	}
	earliest := now.Add(time.Duration(leadMinutes) * time.Minute)

	var breaks []Window
	for _, b := range p.Breaks {
		bs, err := ClockOnDate(date, b.StartTime, loc)
		if err != nil {
			continue
		}
		be, err := ClockOnDate(date, b.EndTime, loc)
		if err != nil {
			continue
		}
		breaks = append(breaks, Window{Start: bs, End: be})
	}

	occupied := ActiveWindows(sameDay, date, loc, 0)

	capacity := ParlourCapacity(p)
	step := time.Duration(SlotMinutes(p)) * time.Minute

	slots := []Slot{}
	for cur := open; !cur.Add(step).After(close); cur = cur.Add(step) {
		slot := Window{Start: cur, End: cur.Add(step)}

		if slot.Start.Before(earliest) {
			continue
		}

		inBreak := false
		for _, br := range breaks {
			if slot.Overlaps(br) {
				inBreak = true
				break
			}
		}
		if inBreak {
			continue
		}

		occ := 0
		for _, w := range occupied {
			if slot.Overlaps(w) {
				occ++
				if occ >= capacity {
					break
				}
			}
		}

		free := capacity - occ
		if free < 0 {
			free = 0
		}

		slots = append(slots, Slot{
			Time:              slot.Start.Format(clockLayout),
			AvailableCapacity: free,
			TotalCapacity:     capacity,
			IsAvailable:       occ < capacity,
		})
	}

	return slots
}
