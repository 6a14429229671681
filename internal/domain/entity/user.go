package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized account table.
// Specialty and LicenseNumber are meaningful only when Role is DOCTOR;
// they stay empty for other roles rather than being an error.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"type:text;not null" json:"-"`
	FullName      string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role          Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address       string    `gorm:"type:text" json:"address,omitempty"`
	Specialty     string    `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	IsActive      *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	PatientAppointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	DoctorAppointments  []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
	Schedules           []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor reports whether the user holds the doctor role
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
