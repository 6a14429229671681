package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveByDoctorSlot returns a non-cancelled appointment occupying the
	// (doctor, date, time) slot, or nil when the slot is free.
	FindActiveByDoctorSlot(db *gorm.DB, doctorID uuid.UUID, date string, timeOfDay string) (*entity.Appointment, error)
	// UpdateStatus transitions an appointment only if it still has the expected
	// current status. Returns affected rows: 1 = success, 0 = lost the race.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
