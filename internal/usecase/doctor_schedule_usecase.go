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

type DoctorScheduleUsecase interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	List(ctx context.Context, doctorID string) (*dto.ScheduleListResponse, error)
	Delete(ctx context.Context, id int) error
}

type doctorScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.DoctorScheduleRepository
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// Create declares a weekly availability slot. Doctors declare their own;
// an admin may declare for a named doctor.
func (u *doctorScheduleUsecase) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	doctorID := actor.ID
	if actor.Role == entity.RoleAdmin && req.DoctorID != nil {
		doctorID = *req.DoctorID
	}

	if err := policy.Authorize(actor, policy.ActionScheduleManage, policy.Owned(uuid.Nil, doctorID)); err != nil {
		return nil, err
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	existing, err := u.scheduleRepo.FindByDoctorDaySlot(u.db.WithContext(ctx), doctorID, *req.DayOfWeek, req.StartTime)
	if err != nil {
		u.log.Warnf("Failed to check schedule slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrScheduleSlotTaken
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule := &entity.DoctorSchedule{
		DoctorID:  doctorID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		if isDuplicateKeyError(err, "idx_doctor_day_start") {
			return nil, ErrScheduleSlotTaken
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionScheduleCreate, "doctor_schedule", schedule.DoctorID.String(), schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	schedule.Doctor = *doctor
	return converter.ScheduleToResponse(schedule), nil
}

// List returns availability slots, optionally for one doctor. Readable by any
// authenticated user: patients browse availability before booking.
func (u *doctorScheduleUsecase) List(ctx context.Context, doctorID string) (*dto.ScheduleListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	if err := policy.Authorize(actor, policy.ActionScheduleRead, policy.Resource{}); err != nil {
		return nil, err
	}

	var schedules []entity.DoctorSchedule
	var err error
	if doctorID != "" {
		id, parseErr := uuid.Parse(doctorID)
		if parseErr != nil {
			return nil, ErrDoctorNotFound
		}
		schedules, err = u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), id)
	} else {
		schedules, err = u.scheduleRepo.FindAll(u.db.WithContext(ctx))
	}
	if err != nil {
		u.log.Warnf("Failed to list schedules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

// Delete removes a slot. Owning doctor or admin only.
func (u *doctorScheduleUsecase) Delete(ctx context.Context, id int) error {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return policy.ErrUnauthorized
	}

	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", id, err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	if err := policy.Authorize(actor, policy.ActionScheduleManage, policy.Owned(uuid.Nil, schedule.DoctorID)); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.scheduleRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionScheduleDelete, "doctor_schedule", schedule.DoctorID.String(), schedule); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
