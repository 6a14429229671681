package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentFilter struct {
	PatientID     *uuid.UUID
	AppointmentID *uuid.UUID
	Status        entity.PaymentStatus
}

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error)
	FindAll(db *gorm.DB, filter *PaymentFilter) ([]entity.Payment, error)
	Update(db *gorm.DB, payment *entity.Payment) error
}
