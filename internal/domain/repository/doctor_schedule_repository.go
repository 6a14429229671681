package repository

import (
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.DoctorSchedule) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorSchedule, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorSchedule, error)
	FindAll(db *gorm.DB) ([]entity.DoctorSchedule, error)
	FindByDoctorDaySlot(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, startTime string) (*entity.DoctorSchedule, error)
	Delete(db *gorm.DB, id int) (int64, error)
}
