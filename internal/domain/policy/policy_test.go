package policy

import (
	"testing"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func patient() Actor {
	return Actor{ID: uuid.New(), Role: entity.RolePatient}
}

func doctor() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleDoctor}
}

func admin() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleAdmin}
}

func TestAuthorizeRejectsMissingIdentity(t *testing.T) {
	err := Authorize(Actor{}, ActionAppointmentRead, Resource{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = Authorize(Actor{ID: uuid.New(), Role: "NURSE"}, ActionAppointmentRead, Resource{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeAdminAllowsEverything(t *testing.T) {
	a := admin()
	actions := []Action{
		ActionAppointmentCreate, ActionAppointmentRead, ActionAppointmentDelete,
		ActionRecordWrite, ActionRecordRead,
		ActionPrescriptionWrite, ActionPrescriptionRead,
		ActionPaymentCreate, ActionPaymentRead, ActionPaymentSetStatus,
		ActionScheduleManage, ActionScheduleRead,
		ActionUserManage, ActionAuditRead,
	}
	for _, action := range actions {
		assert.NoError(t, Authorize(a, action, Resource{}), "admin denied %s", action)
	}
}

func TestAuthorizePatientOwnership(t *testing.T) {
	p := patient()
	own := Owned(p.ID, uuid.New())
	other := Owned(uuid.New(), uuid.New())

	assert.NoError(t, Authorize(p, ActionAppointmentCreate, own))
	assert.NoError(t, Authorize(p, ActionAppointmentRead, own))
	assert.NoError(t, Authorize(p, ActionRecordRead, own))
	assert.NoError(t, Authorize(p, ActionPrescriptionRead, own))
	assert.NoError(t, Authorize(p, ActionPaymentCreate, own))
	assert.NoError(t, Authorize(p, ActionPaymentRead, own))

	assert.ErrorIs(t, Authorize(p, ActionAppointmentCreate, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionAppointmentRead, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionRecordRead, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionPaymentRead, other), ErrForbidden)
}

func TestAuthorizePatientNeverWritesClinicalData(t *testing.T) {
	p := patient()
	own := Owned(p.ID, uuid.New())

	assert.ErrorIs(t, Authorize(p, ActionRecordWrite, own), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionPrescriptionWrite, own), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionPaymentSetStatus, own), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionScheduleManage, own), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionAppointmentDelete, own), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionUserManage, Resource{}), ErrForbidden)
	assert.ErrorIs(t, Authorize(p, ActionAuditRead, Resource{}), ErrForbidden)
}

func TestAuthorizePatientReadsSchedulesFreely(t *testing.T) {
	assert.NoError(t, Authorize(patient(), ActionScheduleRead, Resource{}))
}

func TestAuthorizeDoctorOwnership(t *testing.T) {
	d := doctor()
	own := Owned(uuid.New(), d.ID)
	other := Owned(uuid.New(), uuid.New())

	assert.NoError(t, Authorize(d, ActionAppointmentRead, own))
	assert.NoError(t, Authorize(d, ActionRecordWrite, own))
	assert.NoError(t, Authorize(d, ActionPrescriptionWrite, own))
	assert.NoError(t, Authorize(d, ActionScheduleManage, own))

	assert.ErrorIs(t, Authorize(d, ActionAppointmentRead, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(d, ActionRecordWrite, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(d, ActionPrescriptionWrite, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(d, ActionScheduleManage, other), ErrForbidden)
}

func TestAuthorizeDoctorUnrestrictedReads(t *testing.T) {
	d := doctor()
	other := Owned(uuid.New(), uuid.New())

	assert.NoError(t, Authorize(d, ActionRecordRead, other))
	assert.NoError(t, Authorize(d, ActionPrescriptionRead, other))
	assert.NoError(t, Authorize(d, ActionPaymentRead, other))
	assert.NoError(t, Authorize(d, ActionPaymentSetStatus, other))
	assert.NoError(t, Authorize(d, ActionScheduleRead, Resource{}))

	assert.ErrorIs(t, Authorize(d, ActionUserManage, Resource{}), ErrForbidden)
	assert.ErrorIs(t, Authorize(d, ActionAppointmentDelete, other), ErrForbidden)
	assert.ErrorIs(t, Authorize(d, ActionAuditRead, Resource{}), ErrForbidden)
}

func TestAuthorizeTransitionGraph(t *testing.T) {
	a := admin()
	appt := &entity.Appointment{Status: entity.AppointmentStatusPending}

	assert.NoError(t, AuthorizeTransition(a, appt, entity.AppointmentStatusConfirmed))
	assert.NoError(t, AuthorizeTransition(a, appt, entity.AppointmentStatusCancelled))
	assert.NoError(t, AuthorizeTransition(a, appt, entity.AppointmentStatusNoShow))

	// COMPLETED is only reachable from CONFIRMED.
	err := AuthorizeTransition(a, appt, entity.AppointmentStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	appt.Status = entity.AppointmentStatusConfirmed
	assert.NoError(t, AuthorizeTransition(a, appt, entity.AppointmentStatusCompleted))
}

func TestAuthorizeTransitionTerminalStates(t *testing.T) {
	for _, terminal := range []entity.AppointmentStatus{
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusNoShow,
	} {
		appt := &entity.Appointment{Status: terminal}
		for _, next := range []entity.AppointmentStatus{
			entity.AppointmentStatusPending,
			entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusCancelled,
			entity.AppointmentStatusCompleted,
			entity.AppointmentStatusNoShow,
		} {
			err := AuthorizeTransition(admin(), appt, next)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", terminal, next)
		}
	}
}

func TestAuthorizeTransitionGraphErrorWinsOverRole(t *testing.T) {
	// A terminal appointment reports the same error whoever asks, so the
	// response never leaks whether the actor would have been permitted.
	appt := &entity.Appointment{
		Status:    entity.AppointmentStatusCompleted,
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
	}

	for _, actor := range []Actor{patient(), doctor(), admin()} {
		err := AuthorizeTransition(actor, appt, entity.AppointmentStatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestAuthorizeTransitionUnknownStatus(t *testing.T) {
	appt := &entity.Appointment{Status: entity.AppointmentStatusPending}
	err := AuthorizeTransition(admin(), appt, "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAuthorizeTransitionPatientSelfCancel(t *testing.T) {
	p := patient()

	own := &entity.Appointment{
		Status:    entity.AppointmentStatusPending,
		PatientID: p.ID,
		DoctorID:  uuid.New(),
	}
	assert.NoError(t, AuthorizeTransition(p, own, entity.AppointmentStatusCancelled))

	// Only self-cancel: no other edge is open to patients.
	assert.ErrorIs(t, AuthorizeTransition(p, own, entity.AppointmentStatusConfirmed), ErrForbidden)
	assert.ErrorIs(t, AuthorizeTransition(p, own, entity.AppointmentStatusNoShow), ErrForbidden)

	// Once confirmed, cancelling is the clinic's call.
	own.Status = entity.AppointmentStatusConfirmed
	assert.ErrorIs(t, AuthorizeTransition(p, own, entity.AppointmentStatusCancelled), ErrForbidden)

	// Someone else's pending appointment is out of reach.
	other := &entity.Appointment{
		Status:    entity.AppointmentStatusPending,
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
	}
	assert.ErrorIs(t, AuthorizeTransition(p, other, entity.AppointmentStatusCancelled), ErrForbidden)
}

func TestAuthorizeTransitionDoctorOwnAppointmentsOnly(t *testing.T) {
	d := doctor()

	own := &entity.Appointment{
		Status:    entity.AppointmentStatusPending,
		PatientID: uuid.New(),
		DoctorID:  d.ID,
	}
	assert.NoError(t, AuthorizeTransition(d, own, entity.AppointmentStatusConfirmed))
	assert.NoError(t, AuthorizeTransition(d, own, entity.AppointmentStatusNoShow))

	other := &entity.Appointment{
		Status:    entity.AppointmentStatusPending,
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
	}
	assert.ErrorIs(t, AuthorizeTransition(d, other, entity.AppointmentStatusConfirmed), ErrForbidden)
}

func TestOwned(t *testing.T) {
	patientID := uuid.New()
	res := Owned(patientID, uuid.Nil)
	assert.NotNil(t, res.PatientID)
	assert.Equal(t, patientID, *res.PatientID)
	assert.Nil(t, res.DoctorID)
}
