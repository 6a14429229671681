package policy

import (
	"errors"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized      = errors.New("actor is not authenticated")
	ErrForbidden         = errors.New("actor is not permitted to perform this action")
	ErrInvalidStatus     = errors.New("unknown appointment status")
	ErrInvalidTransition = errors.New("status transition is not allowed")
)

// Actor is the authenticated identity performing a request
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// Action is an operation gated by the role policy
type Action string

const (
	ActionAppointmentCreate Action = "appointment:create"
	ActionAppointmentRead   Action = "appointment:read"
	ActionAppointmentDelete Action = "appointment:delete"
	ActionRecordWrite       Action = "medical_record:write"
	ActionRecordRead        Action = "medical_record:read"
	ActionPrescriptionWrite Action = "prescription:write"
	ActionPrescriptionRead  Action = "prescription:read"
	ActionPaymentCreate     Action = "payment:create"
	ActionPaymentRead       Action = "payment:read"
	ActionPaymentSetStatus  Action = "payment:set_status"
	ActionScheduleManage    Action = "schedule:manage"
	ActionScheduleRead      Action = "schedule:read"
	ActionUserManage        Action = "user:manage"
	ActionAuditRead         Action = "audit:read"
)

// Resource carries the ownership fields a verdict depends on.
// Nil means the resource has no owner of that kind.
type Resource struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

// Owned builds a Resource from concrete owner ids
func Owned(patientID, doctorID uuid.UUID) Resource {
	res := Resource{}
	if patientID != uuid.Nil {
		res.PatientID = &patientID
	}
	if doctorID != uuid.Nil {
		res.DoctorID = &doctorID
	}
	return res
}

// Authorize is the single allow/deny decision applied before any storage
// access. It is pure: no side effects, callers enforce the verdict.
func Authorize(actor Actor, action Action, res Resource) error {
	if actor.ID == uuid.Nil || !actor.Role.Valid() {
		return ErrUnauthorized
	}

	if actor.Role == entity.RoleAdmin {
		return nil
	}

	switch actor.Role {
	case entity.RoleDoctor:
		return authorizeDoctor(actor, action, res)
	case entity.RolePatient:
		return authorizePatient(actor, action, res)
	}

	return ErrForbidden
}

func authorizeDoctor(actor Actor, action Action, res Resource) error {
	switch action {
	case ActionAppointmentRead, ActionRecordWrite, ActionPrescriptionWrite:
		if ownsAsDoctor(actor, res) {
			return nil
		}
		return ErrForbidden
	case ActionRecordRead, ActionPrescriptionRead, ActionPaymentRead, ActionPaymentSetStatus, ActionScheduleRead:
		return nil
	case ActionScheduleManage:
		if ownsAsDoctor(actor, res) {
			return nil
		}
		return ErrForbidden
	}
	return ErrForbidden
}

func authorizePatient(actor Actor, action Action, res Resource) error {
	switch action {
	case ActionAppointmentCreate, ActionPaymentCreate:
		if ownsAsPatient(actor, res) {
			return nil
		}
		return ErrForbidden
	case ActionAppointmentRead, ActionRecordRead, ActionPrescriptionRead, ActionPaymentRead:
		if ownsAsPatient(actor, res) {
			return nil
		}
		return ErrForbidden
	case ActionScheduleRead:
		return nil
	}
	return ErrForbidden
}

func ownsAsDoctor(actor Actor, res Resource) bool {
	return res.DoctorID != nil && *res.DoctorID == actor.ID
}

func ownsAsPatient(actor Actor, res Resource) bool {
	return res.PatientID != nil && *res.PatientID == actor.ID
}

// AuthorizeTransition validates one appointment status transition: the edge
// must exist in the status machine and the actor must be permitted to trigger
// it. Graph violations win over role violations so a terminal state reports
// the same error to every actor.
func AuthorizeTransition(actor Actor, appointment *entity.Appointment, next entity.AppointmentStatus) error {
	if actor.ID == uuid.Nil || !actor.Role.Valid() {
		return ErrUnauthorized
	}
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !appointment.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleDoctor:
		if appointment.DoctorID == actor.ID {
			return nil
		}
		return ErrForbidden
	case entity.RolePatient:
		// Patients may only self-cancel while still pending.
		if next == entity.AppointmentStatusCancelled &&
			appointment.Status == entity.AppointmentStatusPending &&
			appointment.PatientID == actor.ID {
			return nil
		}
		return ErrForbidden
	}

	return ErrForbidden
}
