package models

import "time"

// Service is a parlour catalogue entry (haircut, facial, ...).
type Service struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ParlourID uint `json:"parlour_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Category    string  `gorm:"size:50" json:"category"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
