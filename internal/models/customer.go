package models

import "time"

// Customer has no login; it is the CRM record a booking links back to.
type Customer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ParlourID uint `json:"parlour_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	TotalBookings int        `gorm:"default:0" json:"total_bookings"`
	LastVisitAt   *time.Time `json:"last_visit_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
