package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionFilter struct {
	PatientID     *uuid.UUID
	DoctorID      *uuid.UUID
	AppointmentID *uuid.UUID
}

type PrescriptionRepository interface {
	// Create persists the prescription together with its detail lines; callers
	// wrap it in a transaction so a partial detail write cannot survive.
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindAll(db *gorm.DB, filter *PrescriptionFilter) ([]entity.Prescription, error)
}
