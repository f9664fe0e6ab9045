package booking

import (
	"sort"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

// ErrNoCapacity is returned when a booking would push some instant of its
// window over the parlour's capacity. Storage-level write conflicts map to
// the same code so losing a race is indistinguishable from being full.
var ErrNoCapacity = httperr.ErrBusiness("no_capacity")

// GuardCapacity decides whether a candidate booking may be written. It runs
// an exact sweep over the candidate's interval: occupancy only changes at the
// boundaries of existing bookings, so checking each boundary instant inside
// [start, end) is equivalent to checking every instant.
//
// At-home bookings never contend for parlour capacity and are accepted
// outright. existing must already be filtered to capacity-holding windows
// (see ActiveWindows), with the rescheduled booking itself excluded.
func GuardCapacity(candidate *models.Booking, start, end time.Time, capacity int, existing []Window) error {
	if candidate != nil && candidate.ServiceType == models.ServiceTypeAtHome {
		return nil
	}
	if capacity < 1 {
		capacity = 1
	}
	if !end.After(start) {
		return nil
	}

	window := Window{Start: start, End: end}

	// Occupancy is piecewise constant between boundary instants of the
	// overlapping windows, so those instants (plus the candidate's own
	// start) are the only points worth sampling.
	points := []time.Time{start}
	for _, w := range existing {
		if !window.Overlaps(w) {
			continue
		}
		if w.Start.After(start) && w.Start.Before(end) {
			points = append(points, w.Start)
		}
		if w.End.After(start) && w.End.Before(end) {
			points = append(points, w.End)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	for _, p := range points {
		occ := 0
		for _, w := range existing {
			if !w.Start.After(p) && w.End.After(p) {
				occ++
				if occ >= capacity {
					return ErrNoCapacity
				}
			}
		}
	}

	return nil
}

// BookingWindow resolves a booking's absolute interval from its normalized
// date and "HH:mm" start in the parlour's zone.
func BookingWindow(b *models.Booking, loc *time.Location) (Window, error) {
	start, err := ClockOnDate(b.AppointmentDate, b.AppointmentTime, loc)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Start: start,
		End:   start.Add(time.Duration(b.TotalDuration) * time.Minute),
	}, nil
}
