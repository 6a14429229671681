package usecase

import (
	"testing"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newAppointmentUsecase(appointmentRepo *mockAppointmentRepository, userRepo *mockUserRepository, audit *mockAuditService) AppointmentUsecase {
	return NewAppointmentUsecase(newTestDB(), newTestLogger(), appointmentRepo, userRepo, audit)
}

func doctorUser(id uuid.UUID) *entity.User {
	return &entity.User{ID: id, FullName: "Dr. Siti", Email: "siti@clinic.test", Role: entity.RoleDoctor}
}

func TestAppointmentCreatePatientIdentityFromSession(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	doctorID := uuid.New()
	intruded := uuid.New()

	var created *entity.Appointment
	appointmentRepo := &mockAppointmentRepository{
		CreateFn: func(db *gorm.DB, a *entity.Appointment) error {
			a.ID = uuid.New()
			created = a
			return nil
		},
	}
	userRepo := &mockUserRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
			return doctorUser(doctorID), nil
		},
	}
	audit := &mockAuditService{}
	uc := newAppointmentUsecase(appointmentRepo, userRepo, audit)

	// A patient naming someone else still books for themselves.
	resp, err := uc.Create(actorContext(actor), &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		PatientID: &intruded,
		Date:      "2026-09-01",
		Time:      "09:30",
		Symptoms:  "persistent cough",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, actor.ID, created.PatientID)
	assert.Equal(t, entity.AppointmentStatusPending, created.Status)
	assert.Equal(t, actor.ID, resp.PatientID)
	assert.Contains(t, audit.Actions, entity.AuditActionAppointmentCreate)
}

func TestAppointmentCreateAdminBooksForNamedPatient(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	doctorID := uuid.New()
	patientID := uuid.New()

	var created *entity.Appointment
	appointmentRepo := &mockAppointmentRepository{
		CreateFn: func(db *gorm.DB, a *entity.Appointment) error {
			a.ID = uuid.New()
			created = a
			return nil
		},
	}
	userRepo := &mockUserRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
			if id == doctorID {
				return doctorUser(doctorID), nil
			}
			return &entity.User{ID: id, Role: entity.RolePatient}, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, userRepo, &mockAuditService{})

	_, err := uc.Create(actorContext(actor), &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		PatientID: &patientID,
		Date:      "2026-09-01",
		Time:      "10:00",
		Symptoms:  "follow-up",
	})

	assert.NoError(t, err)
	assert.Equal(t, patientID, created.PatientID)
}

func TestAppointmentCreateRejectsNonDoctor(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	targetID := uuid.New()

	userRepo := &mockUserRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: id, Role: entity.RolePatient}, nil
		},
	}
	uc := newAppointmentUsecase(&mockAppointmentRepository{}, userRepo, &mockAuditService{})

	_, err := uc.Create(actorContext(actor), &dto.CreateAppointmentRequest{
		DoctorID: targetID,
		Date:     "2026-09-01",
		Time:     "10:00",
		Symptoms: "headache",
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAppointmentCreateSlotTaken(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	doctorID := uuid.New()

	createCalled := false
	appointmentRepo := &mockAppointmentRepository{
		FindActiveByDoctorSlotFn: func(db *gorm.DB, dID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error) {
			return &entity.Appointment{ID: uuid.New(), DoctorID: dID}, nil
		},
		CreateFn: func(db *gorm.DB, a *entity.Appointment) error {
			createCalled = true
			return nil
		},
	}
	userRepo := &mockUserRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
			return doctorUser(doctorID), nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, userRepo, &mockAuditService{})

	_, err := uc.Create(actorContext(actor), &dto.CreateAppointmentRequest{
		DoctorID: doctorID,
		Date:     "2026-09-01",
		Time:     "10:00",
		Symptoms: "headache",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.False(t, createCalled)
}

func TestAppointmentCreateInvalidDateAndTime(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	uc := newAppointmentUsecase(&mockAppointmentRepository{}, &mockUserRepository{}, &mockAuditService{})

	_, err := uc.Create(actorContext(actor), &dto.CreateAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "01-09-2026",
		Time:     "10:00",
		Symptoms: "headache",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = uc.Create(actorContext(actor), &dto.CreateAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "2026-09-01",
		Time:     "10.00",
		Symptoms: "headache",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestAppointmentListScopesPatientToOwn(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	other := uuid.New().String()

	var gotFilter *entity.AppointmentFilter
	appointmentRepo := &mockAppointmentRepository{
		FindAllFn: func(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
			gotFilter = filter
			return []entity.Appointment{}, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, &mockAuditService{})

	// The query string cannot widen a patient's view.
	_, err := uc.List(actorContext(actor), &dto.ListAppointmentsQuery{PatientID: other})

	assert.NoError(t, err)
	assert.NotNil(t, gotFilter.PatientID)
	assert.Equal(t, actor.ID, *gotFilter.PatientID)
	assert.Nil(t, gotFilter.DoctorID)
}

func TestAppointmentListScopesDoctorToOwn(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RoleDoctor}

	var gotFilter *entity.AppointmentFilter
	appointmentRepo := &mockAppointmentRepository{
		FindAllFn: func(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, &mockAuditService{})

	_, err := uc.List(actorContext(actor), &dto.ListAppointmentsQuery{})

	assert.NoError(t, err)
	assert.NotNil(t, gotFilter.DoctorID)
	assert.Equal(t, actor.ID, *gotFilter.DoctorID)
}

func TestAppointmentListRejectsUnknownStatus(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	uc := newAppointmentUsecase(&mockAppointmentRepository{}, &mockUserRepository{}, &mockAuditService{})

	_, err := uc.List(actorContext(actor), &dto.ListAppointmentsQuery{Status: "SCHEDULED"})

	assert.ErrorIs(t, err, policy.ErrInvalidStatus)
}

func TestAppointmentGetHidesOtherPatients(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	appointmentID := uuid.New()

	appointmentRepo := &mockAppointmentRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, PatientID: uuid.New(), DoctorID: uuid.New()}, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, &mockAuditService{})

	// Same error as a missing row, so ids cannot be probed.
	_, err := uc.Get(actorContext(actor), appointmentID)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentUpdateStatusTerminalRejectedBeforeWrite(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	appointmentID := uuid.New()

	updateCalled := false
	appointmentRepo := &mockAppointmentRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, Status: entity.AppointmentStatusCancelled}, nil
		},
		UpdateStatusFn: func(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
			updateCalled = true
			return 1, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, &mockAuditService{})

	_, err := uc.UpdateStatus(actorContext(actor), appointmentID, &dto.UpdateAppointmentStatusRequest{Status: "CONFIRMED"})

	assert.ErrorIs(t, err, policy.ErrInvalidTransition)
	assert.False(t, updateCalled)
}

func TestAppointmentUpdateStatusLostRace(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	appointmentID := uuid.New()

	appointmentRepo := &mockAppointmentRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, Status: entity.AppointmentStatusPending}, nil
		},
		UpdateStatusFn: func(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
			// Another writer already moved the row.
			return 0, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, &mockAuditService{})

	_, err := uc.UpdateStatus(actorContext(actor), appointmentID, &dto.UpdateAppointmentStatusRequest{Status: "CONFIRMED"})

	assert.ErrorIs(t, err, policy.ErrInvalidTransition)
}

func TestAppointmentUpdateStatusPatientSelfCancel(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RolePatient}
	appointmentID := uuid.New()

	var gotFrom, gotTo entity.AppointmentStatus
	appointmentRepo := &mockAppointmentRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{
				ID:        id,
				PatientID: actor.ID,
				DoctorID:  uuid.New(),
				Status:    entity.AppointmentStatusPending,
			}, nil
		},
		UpdateStatusFn: func(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
			gotFrom, gotTo = from, to
			return 1, nil
		},
	}
	audit := &mockAuditService{}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, audit)

	resp, err := uc.UpdateStatus(actorContext(actor), appointmentID, &dto.UpdateAppointmentStatusRequest{Status: "CANCELLED"})

	assert.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, gotFrom)
	assert.Equal(t, entity.AppointmentStatusCancelled, gotTo)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Contains(t, audit.Actions, entity.AuditActionAppointmentStatusChange)
}

func TestAppointmentUpdateStatusDoctorCannotConfirmConfirmed(t *testing.T) {
	actor := policy.Actor{ID: uuid.New(), Role: entity.RoleDoctor}
	appointmentID := uuid.New()

	appointmentRepo := &mockAppointmentRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{
				ID:       id,
				DoctorID: actor.ID,
				Status:   entity.AppointmentStatusConfirmed,
			}, nil
		},
	}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, &mockAuditService{})

	_, err := uc.UpdateStatus(actorContext(actor), appointmentID, &dto.UpdateAppointmentStatusRequest{Status: "CONFIRMED"})

	assert.ErrorIs(t, err, policy.ErrInvalidTransition)
}

func TestAppointmentDeleteAdminOnly(t *testing.T) {
	appointmentID := uuid.New()

	appointmentRepo := &mockAppointmentRepository{
		FindByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, Status: entity.AppointmentStatusPending}, nil
		},
	}
	audit := &mockAuditService{}
	uc := newAppointmentUsecase(appointmentRepo, &mockUserRepository{}, audit)

	doctor := policy.Actor{ID: uuid.New(), Role: entity.RoleDoctor}
	err := uc.Delete(actorContext(doctor), appointmentID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	admin := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	err = uc.Delete(actorContext(admin), appointmentID)
	assert.NoError(t, err)
	assert.Contains(t, audit.Actions, entity.AuditActionAppointmentDelete)
}

func TestAppointmentDeleteMissing(t *testing.T) {
	admin := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	uc := newAppointmentUsecase(&mockAppointmentRepository{}, &mockUserRepository{}, &mockAuditService{})

	err := uc.Delete(actorContext(admin), uuid.New())

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
