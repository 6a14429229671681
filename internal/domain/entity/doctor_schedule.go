package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorSchedule is a weekly recurring availability slot for a doctor.
// Reference data only: it is never cross-checked against booked appointments.
type DoctorSchedule struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_day_start" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_doctor_day_start" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_doctor_day_start" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}
