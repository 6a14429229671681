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

type MedicalRecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	List(ctx context.Context, query *dto.ListMedicalRecordsQuery) (*dto.MedicalRecordListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
}

type medicalRecordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	recordRepo      repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:              db,
		log:             log,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Create writes a medical record against an appointment. The patient id is
// always taken from the appointment, never from the request.
func (u *medicalRecordUsecase) Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
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

	if err := policy.Authorize(actor, policy.ActionRecordWrite, policy.Owned(appointment.PatientID, appointment.DoctorID)); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record := &entity.MedicalRecord{
		AppointmentID:  appointment.ID,
		PatientID:      appointment.PatientID,
		RecordType:     req.RecordType,
		ChiefComplaint: req.ChiefComplaint,
		PresentIllness: req.PresentIllness,
		PastHistory:    req.PastHistory,
		Examination:    req.Examination,
		Diagnosis:      req.Diagnosis,
		Treatment:      req.Treatment,
		Content:        req.Content,
		Attachments:    entity.StringArray(req.Attachments),
	}

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionMedicalRecordCreate, "medical_record", record.ID.String(), record); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.recordRepo.FindByID(u.db.WithContext(ctx), record.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload medical record %s: %+v", record.ID, err)
		return converter.MedicalRecordToResponse(record), nil
	}

	return converter.MedicalRecordToResponse(full), nil
}

// List returns medical records visible to the caller. Patients only ever see
// their own regardless of the query string.
func (u *medicalRecordUsecase) List(ctx context.Context, query *dto.ListMedicalRecordsQuery) (*dto.MedicalRecordListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	filter := &repository.MedicalRecordFilter{}

	if actor.Role == entity.RolePatient {
		id := actor.ID
		filter.PatientID = &id
	} else if query.PatientID != "" {
		id, err := uuid.Parse(query.PatientID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		filter.PatientID = &id
	}
	if query.AppointmentID != "" {
		id, err := uuid.Parse(query.AppointmentID)
		if err != nil {
			return nil, ErrAppointmentNotFound
		}
		filter.AppointmentID = &id
	}

	records, err := u.recordRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	record, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// Update applies a free-form patch: only fields present in the request are
// touched.
func (u *medicalRecordUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	record, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionRecordWrite, policy.Owned(record.PatientID, record.Appointment.DoctorID)); err != nil {
		return nil, err
	}

	before := *record

	if req.RecordType != nil {
		record.RecordType = *req.RecordType
	}
	if req.ChiefComplaint != nil {
		record.ChiefComplaint = *req.ChiefComplaint
	}
	if req.PresentIllness != nil {
		record.PresentIllness = *req.PresentIllness
	}
	if req.PastHistory != nil {
		record.PastHistory = *req.PastHistory
	}
	if req.Examination != nil {
		record.Examination = *req.Examination
	}
	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = *req.Treatment
	}
	if req.Content != nil {
		record.Content = *req.Content
	}
	if req.Attachments != nil {
		record.Attachments = entity.StringArray(*req.Attachments)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update medical record %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionMedicalRecordUpdate, "medical_record", id.String(), &before, record); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) findVisible(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.MedicalRecord, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	if err := policy.Authorize(actor, policy.ActionRecordRead, policy.Owned(record.PatientID, record.Appointment.DoctorID)); err != nil {
		if err == policy.ErrForbidden {
			return nil, ErrMedicalRecordNotFound
		}
		return nil, err
	}

	return record, nil
}
