package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/parlourhq/parlour-scheduler/internal/models"
)

// Weekday keys used in Parlour.WorkingHours, indexed by time.Weekday.
var weekdayKeys = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayKey returns the working-hours key for the calendar date, derived
// from the date components only so the answer never shifts with the zone the
// caller happened to construct the date in.
func WeekdayKey(date time.Time) string {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return weekdayKeys[int(d.Weekday())]
}

// ParseClock parses a strict "HH:mm" wall-clock string into minutes since
// midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

// ClockOnDate anchors an "HH:mm" wall-clock string on the given calendar date
// in loc.
func ClockOnDate(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0,
		loc,
	), nil
}

// NormalizeDate strips the time-of-day, returning midnight UTC of the date's
// UTC calendar day. Applying it twice is a no-op.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching boundaries (one ends exactly where the other starts) do not count.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// ActiveWindows resolves same-day bookings into absolute intervals on the
// given date. Only in-salon bookings with a status that holds capacity are
// kept; a booking with an unparseable time is skipped rather than poisoning
// the whole computation. excludeID drops the booking being rescheduled.
func ActiveWindows(bookings []models.Booking, date time.Time, loc *time.Location, excludeID uint) []Window {
	windows := make([]Window, 0, len(bookings))
	for _, b := range bookings {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if b.ServiceType == models.ServiceTypeAtHome {
			continue
		}
		if !Status(b.Status).Occupies() {
			continue
		}
		start, err := ClockOnDate(date, b.AppointmentTime, loc)
		if err != nil {
			continue
		}
		windows = append(windows, Window{
			Start: start,
			End:   start.Add(time.Duration(b.TotalDuration) * time.Minute),
		})
	}
	return windows
}
