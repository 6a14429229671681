package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PrescriptionDetailRequest struct {
	MedicineName string `json:"medicine_name" validate:"required"`
	Dosage       string `json:"dosage" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	Unit         string `json:"unit" validate:"required"`
	Instructions string `json:"instructions" validate:"omitempty"`
	Morning      bool   `json:"morning"`
	Noon         bool   `json:"noon"`
	Afternoon    bool   `json:"afternoon"`
	Evening      bool   `json:"evening"`
	BeforeMeal   bool   `json:"before_meal"`
	AfterMeal    bool   `json:"after_meal"`
}

type CreatePrescriptionRequest struct {
	AppointmentID uuid.UUID                   `json:"appointment_id" validate:"required"`
	Diagnosis     string                      `json:"diagnosis" validate:"omitempty"`
	Notes         string                      `json:"notes" validate:"omitempty"`
	Details       []PrescriptionDetailRequest `json:"details" validate:"required,min=1,dive"`
}

// ListPrescriptionsQuery mirrors the supported query string filters
type ListPrescriptionsQuery struct {
	PatientID     string
	DoctorID      string
	AppointmentID string
}

// Response DTOs

type PrescriptionDetailResponse struct {
	ID           int64  `json:"id"`
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	Instructions string `json:"instructions,omitempty"`
	Morning      bool   `json:"morning"`
	Noon         bool   `json:"noon"`
	Afternoon    bool   `json:"afternoon"`
	Evening      bool   `json:"evening"`
	BeforeMeal   bool   `json:"before_meal"`
	AfterMeal    bool   `json:"after_meal"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID                    `json:"id"`
	AppointmentID uuid.UUID                    `json:"appointment_id"`
	PatientID     uuid.UUID                    `json:"patient_id"`
	DoctorID      uuid.UUID                    `json:"doctor_id"`
	Diagnosis     string                       `json:"diagnosis,omitempty"`
	Notes         string                       `json:"notes,omitempty"`
	Details       []PrescriptionDetailResponse `json:"details"`
	Patient       *UserResponse                `json:"patient,omitempty"`
	Doctor        *UserResponse                `json:"doctor,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
