package dto

import "time"

type BookingListDTO struct {
	ID              uint      `json:"id"`
	Reference       string    `json:"reference"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	TotalDuration   int       `json:"total_duration"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	ServiceType     string    `json:"service_type"`
	ServiceNames    []string  `json:"service_names"`
}
