package usecase

import (
	"context"

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

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	List(ctx context.Context, query *dto.ListPrescriptionsQuery) (*dto.PrescriptionListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		auditService:     auditService,
	}
}

// Create issues a prescription against an appointment. The parent row and all
// detail lines commit in one transaction: a failure on any line leaves
// nothing behind.
func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := policy.Authorize(actor, policy.ActionPrescriptionWrite, policy.Owned(appointment.PatientID, appointment.DoctorID)); err != nil {
		return nil, err
	}

	// Doctors issue under their own id; an admin issues on behalf of the
	// appointment's doctor.
	doctorID := actor.ID
	if actor.Role == entity.RoleAdmin {
		doctorID = appointment.DoctorID
	}

	details := make([]entity.PrescriptionDetail, len(req.Details))
	for i, d := range req.Details {
		details[i] = entity.PrescriptionDetail{
			MedicineName: d.MedicineName,
			Dosage:       d.Dosage,
			Quantity:     d.Quantity,
			Unit:         d.Unit,
			Instructions: d.Instructions,
			Morning:      d.Morning,
			Noon:         d.Noon,
			Afternoon:    d.Afternoon,
			Evening:      d.Evening,
			BeforeMeal:   d.BeforeMeal,
			AfterMeal:    d.AfterMeal,
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription := &entity.Prescription{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      doctorID,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
		Details:       details,
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), prescription); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), prescription.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload prescription %s: %+v", prescription.ID, err)
		return converter.PrescriptionToResponse(prescription), nil
	}

	u.log.Infof("Prescription created: id=%s, appointment=%s, lines=%d", prescription.ID, appointment.ID, len(details))
	return converter.PrescriptionToResponse(full), nil
}

// List returns prescriptions visible to the caller. Patients and doctors are
// scoped to their own side regardless of the query string.
func (u *prescriptionUsecase) List(ctx context.Context, query *dto.ListPrescriptionsQuery) (*dto.PrescriptionListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	filter := &repository.PrescriptionFilter{}

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

	if query.AppointmentID != "" {
		id, err := uuid.Parse(query.AppointmentID)
		if err != nil {
			return nil, ErrAppointmentNotFound
		}
		filter.AppointmentID = &id
	}

	prescriptions, err := u.prescriptionRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	if err := policy.Authorize(actor, policy.ActionPrescriptionRead, policy.Owned(prescription.PatientID, prescription.DoctorID)); err != nil {
		if err == policy.ErrForbidden {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}
