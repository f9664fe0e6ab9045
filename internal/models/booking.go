package models

import "time"

// BookingService is a price/duration snapshot of a catalogue service at the
// moment of booking, so later catalogue edits don't rewrite history.
type BookingService struct {
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

const (
	ServiceTypeInSalon = "in-salon"
	ServiceTypeAtHome  = "at-home"
)

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ParlourID uint    `gorm:"index:idx_bookings_parlour_date" json:"parlour_id"`
	Parlour   Parlour `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"parlour"`

	CustomerID    *uint  `json:"customer_id"`
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`

	Services []BookingService `gorm:"serializer:json" json:"services"`

	ServiceType    string `gorm:"size:20;default:'in-salon'" json:"service_type"`
	ServiceAddress string `gorm:"size:255" json:"service_address"`

	// Date-only, always UTC midnight. Time is the parlour-local "HH:mm" start.
	AppointmentDate time.Time `gorm:"index:idx_bookings_parlour_date" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5;not null" json:"appointment_time"`
	TotalDuration   int       `gorm:"not null" json:"total_duration"`

	Status        string `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentMethod string `gorm:"size:20;default:'cash'" json:"payment_method"`

	TotalAmount          float64 `json:"total_amount"`
	AdditionalCost       float64 `json:"additional_cost"`
	AdditionalCostReason string  `gorm:"size:255" json:"additional_cost_reason"`
	Notes                string  `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
