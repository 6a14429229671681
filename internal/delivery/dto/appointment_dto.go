package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateAppointmentRequest books a slot with a doctor. PatientID is honored
// only for ADMIN callers; for patients the server always uses the
// authenticated identity.
type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID  `json:"doctor_id" validate:"required"`
	PatientID *uuid.UUID `json:"patient_id" validate:"omitempty"`
	Date      string     `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time      string     `json:"time" validate:"required"` // Format: HH:MM
	Symptoms  string     `json:"symptoms" validate:"required"`
	Notes     string     `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListAppointmentsQuery mirrors the supported query string filters
type ListAppointmentsQuery struct {
	DoctorID  string
	PatientID string
	Status    string
	DateFrom  string
	DateTo    string
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID     `json:"id"`
	PatientID uuid.UUID     `json:"patient_id"`
	DoctorID  uuid.UUID     `json:"doctor_id"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Status    string        `json:"status"`
	Symptoms  string        `json:"symptoms"`
	Notes     string        `json:"notes,omitempty"`
	Patient   *UserResponse `json:"patient,omitempty"`
	Doctor    *UserResponse `json:"doctor,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
