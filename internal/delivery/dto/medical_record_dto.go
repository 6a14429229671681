package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	AppointmentID  uuid.UUID `json:"appointment_id" validate:"required"`
	RecordType     string    `json:"record_type" validate:"required"`
	ChiefComplaint string    `json:"chief_complaint" validate:"omitempty"`
	PresentIllness string    `json:"present_illness" validate:"omitempty"`
	PastHistory    string    `json:"past_history" validate:"omitempty"`
	Examination    string    `json:"examination" validate:"omitempty"`
	Diagnosis      string    `json:"diagnosis" validate:"omitempty"`
	Treatment      string    `json:"treatment" validate:"omitempty"`
	Content        string    `json:"content" validate:"omitempty"`
	Attachments    []string  `json:"attachments" validate:"omitempty"`
}

// UpdateMedicalRecordRequest is a free-form patch: only non-nil fields are
// applied.
type UpdateMedicalRecordRequest struct {
	RecordType     *string   `json:"record_type" validate:"omitempty"`
	ChiefComplaint *string   `json:"chief_complaint" validate:"omitempty"`
	PresentIllness *string   `json:"present_illness" validate:"omitempty"`
	PastHistory    *string   `json:"past_history" validate:"omitempty"`
	Examination    *string   `json:"examination" validate:"omitempty"`
	Diagnosis      *string   `json:"diagnosis" validate:"omitempty"`
	Treatment      *string   `json:"treatment" validate:"omitempty"`
	Content        *string   `json:"content" validate:"omitempty"`
	Attachments    *[]string `json:"attachments" validate:"omitempty"`
}

// ListMedicalRecordsQuery mirrors the supported query string filters
type ListMedicalRecordsQuery struct {
	PatientID     string
	AppointmentID string
}

// Response DTOs

type MedicalRecordResponse struct {
	ID             uuid.UUID            `json:"id"`
	AppointmentID  uuid.UUID            `json:"appointment_id"`
	PatientID      uuid.UUID            `json:"patient_id"`
	RecordType     string               `json:"record_type"`
	ChiefComplaint string               `json:"chief_complaint,omitempty"`
	PresentIllness string               `json:"present_illness,omitempty"`
	PastHistory    string               `json:"past_history,omitempty"`
	Examination    string               `json:"examination,omitempty"`
	Diagnosis      string               `json:"diagnosis,omitempty"`
	Treatment      string               `json:"treatment,omitempty"`
	Content        string               `json:"content,omitempty"`
	Attachments    []string             `json:"attachments"`
	Patient        *UserResponse        `json:"patient,omitempty"`
	Appointment    *AppointmentResponse `json:"appointment,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
