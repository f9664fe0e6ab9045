package models

import "time"

// DayHours is the opening window for a single weekday.
type DayHours struct {
	IsOpen    bool   `json:"is_open"`
	StartTime string `json:"start_time"` // "HH:mm"
	EndTime   string `json:"end_time"`   // "HH:mm"
}

// WeekSchedule maps full weekday names (sunday..saturday) to opening hours.
type WeekSchedule map[string]DayHours

// BreakWindow is a daily pause subtracted from availability (e.g. lunch).
type BreakWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Parlour struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Slug   string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Branch string `gorm:"size:100" json:"branch"`

	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	Capacity            int           `gorm:"default:1" json:"capacity"`
	SlotDurationMinutes int           `gorm:"default:30" json:"slot_duration_minutes"`
	WorkingHours        WeekSchedule  `gorm:"serializer:json" json:"working_hours"`
	Breaks              []BreakWindow `gorm:"serializer:json" json:"breaks"`
	LeadTimeMinutes     int           `gorm:"default:0" json:"lead_time_minutes"`
	DailyCutoffTime     string        `gorm:"size:5" json:"daily_cutoff_time"`

	// IANA zone the working hours and appointment times are read in.
	Timezone string `gorm:"size:50;default:'UTC'" json:"timezone"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
