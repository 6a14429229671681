package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PaymentToResponse converts a Payment entity to its response DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	response := &dto.PaymentResponse{
		ID:            payment.ID,
		AppointmentID: payment.AppointmentID,
		Amount:        payment.Amount,
		Method:        string(payment.Method),
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
		Description:   payment.Description,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}

	if payment.Appointment.ID != uuid.Nil {
		response.Appointment = AppointmentToResponse(&payment.Appointment)
	}

	return response
}

// PaymentsToResponses converts a slice of Payment entities
func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		if resp := PaymentToResponse(&payment); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
