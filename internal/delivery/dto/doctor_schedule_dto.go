package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateScheduleRequest declares a weekly availability slot. DoctorID is
// honored only for ADMIN callers; doctors always create their own slots.
type CreateScheduleRequest struct {
	DoctorID  *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	DayOfWeek *int       `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime string     `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string     `json:"end_time" validate:"required"`   // Format: HH:MM
}

// Response DTOs

type ScheduleResponse struct {
	ID        int           `json:"id"`
	DoctorID  uuid.UUID     `json:"doctor_id"`
	DayOfWeek int           `json:"day_of_week"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	IsActive  *bool         `json:"is_active"`
	Doctor    *UserResponse `json:"doctor,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
