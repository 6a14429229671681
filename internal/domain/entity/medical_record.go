package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringArray stores a list of opaque references as a JSONB column
type StringArray []string

// Value returns json value, implement driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(a)
}

// Scan scans a JSONB value into the slice, implements sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*a = result
	return nil
}

// MedicalRecord is a clinical note attached to an appointment.
// Writable only by doctors and admins.
type MedicalRecord struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"appointment_id"`
	PatientID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	RecordType     string      `gorm:"type:varchar(50);not null" json:"record_type"`
	ChiefComplaint string      `gorm:"type:text" json:"chief_complaint,omitempty"`
	PresentIllness string      `gorm:"type:text" json:"present_illness,omitempty"`
	PastHistory    string      `gorm:"type:text" json:"past_history,omitempty"`
	Examination    string      `gorm:"type:text" json:"examination,omitempty"`
	Diagnosis      string      `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment      string      `gorm:"type:text" json:"treatment,omitempty"`
	Content        string      `gorm:"type:text" json:"content,omitempty"`
	Attachments    StringArray `gorm:"type:jsonb" json:"attachments,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     User        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
