package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// MedicalRecordToResponse converts a MedicalRecord entity to its response DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:             record.ID,
		AppointmentID:  record.AppointmentID,
		PatientID:      record.PatientID,
		RecordType:     record.RecordType,
		ChiefComplaint: record.ChiefComplaint,
		PresentIllness: record.PresentIllness,
		PastHistory:    record.PastHistory,
		Examination:    record.Examination,
		Diagnosis:      record.Diagnosis,
		Treatment:      record.Treatment,
		Content:        record.Content,
		Attachments:    []string(record.Attachments),
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	if response.Attachments == nil {
		response.Attachments = []string{}
	}

	response.Patient = UserToResponse(&record.Patient)
	if record.Appointment.ID != uuid.Nil {
		response.Appointment = AppointmentToResponse(&record.Appointment)
	}

	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i, record := range records {
		if resp := MedicalRecordToResponse(&record); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
