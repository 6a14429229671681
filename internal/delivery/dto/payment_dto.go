package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePaymentRequest struct {
	AppointmentID uuid.UUID       `json:"appointment_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Method        string          `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Description   string          `json:"description" validate:"omitempty"`
}

type UpdatePaymentStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=PENDING UNPAID PAID FAILED REFUNDED"`
	TransactionID string `json:"transaction_id" validate:"omitempty"`
}

// ListPaymentsQuery mirrors the supported query string filters
type ListPaymentsQuery struct {
	PatientID     string
	AppointmentID string
	Status        string
}

// Response DTOs

type PaymentResponse struct {
	ID            uuid.UUID            `json:"id"`
	AppointmentID uuid.UUID            `json:"appointment_id"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        string               `json:"method"`
	Status        string               `json:"status"`
	TransactionID string               `json:"transaction_id,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	Description   string               `json:"description,omitempty"`
	Appointment   *AppointmentResponse `json:"appointment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}
