package usecase

import (
	"context"
	"time"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/policy"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

// Create books a slot with a doctor. The patient identity always comes from
// the session; only an admin may book on behalf of a named patient.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	patientID := actor.ID
	if actor.Role == entity.RoleAdmin && req.PatientID != nil {
		patientID = *req.PatientID
	}

	if err := policy.Authorize(actor, policy.ActionAppointmentCreate, policy.Owned(patientID, uuid.Nil)); err != nil {
		return nil, err
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	if actor.Role == entity.RoleAdmin && patientID != actor.ID {
		patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrUserNotFound
		}
	}

	// Reject a booking when the doctor already has a live appointment in the
	// same slot. The unique constraint still backs this up under races.
	existing, err := u.appointmentRepo.FindActiveByDoctorSlot(u.db.WithContext(ctx), req.DoctorID, req.Date, req.Time)
	if err != nil {
		u.log.Warnf("Failed to check doctor slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    entity.AppointmentStatusPending,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s %s", appointment.ID, req.DoctorID, req.Date, req.Time)
	return converter.AppointmentToResponse(full), nil
}

// List returns appointments visible to the caller. Patients and doctors are
// always scoped to their own side regardless of the query string.
func (u *appointmentUsecase) List(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	filter := &entity.AppointmentFilter{}

	switch actor.Role {
	case entity.RolePatient:
		id := actor.ID
		filter.PatientID = &id
	case entity.RoleDoctor:
		id := actor.ID
		filter.DoctorID = &id
	case entity.RoleAdmin:
		if query.PatientID != "" {
			id, err := uuid.Parse(query.PatientID)
			if err != nil {
				return nil, ErrUserNotFound
			}
			filter.PatientID = &id
		}
		if query.DoctorID != "" {
			id, err := uuid.Parse(query.DoctorID)
			if err != nil {
				return nil, ErrDoctorNotFound
			}
			filter.DoctorID = &id
		}
	default:
		return nil, policy.ErrUnauthorized
	}

	if query.Status != "" {
		status := entity.AppointmentStatus(query.Status)
		if !status.Valid() {
			return nil, policy.ErrInvalidStatus
		}
		filter.Status = status
	}
	if query.DateFrom != "" {
		if _, err := time.Parse("2006-01-02", query.DateFrom); err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.DateFrom = query.DateFrom
	}
	if query.DateTo != "" {
		if _, err := time.Parse("2006-01-02", query.DateTo); err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.DateTo = query.DateTo
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Get returns a single appointment. Not-found and not-visible report the same
// error so callers cannot probe for other people's appointment ids.
func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	appointment, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus moves an appointment along the status machine. The write is
// guarded by the expected current status, so two racing updates cannot both
// win: the loser observes zero affected rows and reports the transition as
// no longer allowed.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	appointment, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	next := entity.AppointmentStatus(req.Status)
	if err := policy.AuthorizeTransition(actor, appointment, next); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, id, appointment.Status, next)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, policy.ErrInvalidTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionAppointmentStatusChange, "appointment", id.String(), string(appointment.Status), string(next)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Status = next
	u.log.Infof("Appointment %s moved to %s by %s", id, next, actor.ID)
	return converter.AppointmentToResponse(appointment), nil
}

// Delete removes an appointment outright. Admin only; everyone else corrects
// history through status transitions.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return policy.ErrUnauthorized
	}

	if err := policy.Authorize(actor, policy.ActionAppointmentDelete, policy.Resource{}); err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionAppointmentDelete, "appointment", id.String(), appointment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// findVisible loads an appointment and enforces read visibility, collapsing
// forbidden into not-found.
func (u *appointmentUsecase) findVisible(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := policy.Authorize(actor, policy.ActionAppointmentRead, policy.Owned(appointment.PatientID, appointment.DoctorID)); err != nil {
		if err == policy.ErrForbidden {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return appointment, nil
}
