package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is issued by a doctor against an appointment and owns an
// ordered list of detail lines. Immutable once created.
type Prescription struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment          `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     User                 `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      User                 `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Details     []PrescriptionDetail `gorm:"foreignKey:PrescriptionID" json:"details"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionDetail is one medicine line of a prescription with time-of-day
// and meal-relation flags.
type PrescriptionDetail struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index" json:"prescription_id"`
	MedicineName   string    `gorm:"type:varchar(255);not null" json:"medicine_name"`
	Dosage         string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Unit           string    `gorm:"type:varchar(50);not null" json:"unit"`
	Instructions   string    `gorm:"type:text" json:"instructions,omitempty"`
	Morning        bool      `gorm:"not null;default:false" json:"morning"`
	Noon           bool      `gorm:"not null;default:false" json:"noon"`
	Afternoon      bool      `gorm:"not null;default:false" json:"afternoon"`
	Evening        bool      `gorm:"not null;default:false" json:"evening"`
	BeforeMeal     bool      `gorm:"not null;default:false" json:"before_meal"`
	AfterMeal      bool      `gorm:"not null;default:false" json:"after_meal"`
}

func (PrescriptionDetail) TableName() string {
	return "prescription_details"
}
