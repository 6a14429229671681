package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity together with its
// detail lines to the response DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	details := make([]dto.PrescriptionDetailResponse, len(prescription.Details))
	for i, detail := range prescription.Details {
		details[i] = dto.PrescriptionDetailResponse{
			ID:           detail.ID,
			MedicineName: detail.MedicineName,
			Dosage:       detail.Dosage,
			Quantity:     detail.Quantity,
			Unit:         detail.Unit,
			Instructions: detail.Instructions,
			Morning:      detail.Morning,
			Noon:         detail.Noon,
			Afternoon:    detail.Afternoon,
			Evening:      detail.Evening,
			BeforeMeal:   detail.BeforeMeal,
			AfterMeal:    detail.AfterMeal,
		}
	}

	response := &dto.PrescriptionResponse{
		ID:            prescription.ID,
		AppointmentID: prescription.AppointmentID,
		PatientID:     prescription.PatientID,
		DoctorID:      prescription.DoctorID,
		Diagnosis:     prescription.Diagnosis,
		Notes:         prescription.Notes,
		Details:       details,
		CreatedAt:     prescription.CreatedAt,
	}

	response.Patient = UserToResponse(&prescription.Patient)
	response.Doctor = UserToResponse(&prescription.Doctor)

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		if resp := PrescriptionToResponse(&prescription); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
