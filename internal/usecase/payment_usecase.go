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

type PaymentUsecase interface {
	Create(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	List(ctx context.Context, query *dto.ListPaymentsQuery) (*dto.PaymentListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error)
}

type paymentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	paymentRepo     repository.PaymentRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	paymentRepo repository.PaymentRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PaymentUsecase {
	return &paymentUsecase{
		db:              db,
		log:             log,
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Create registers the payment for an appointment. Each appointment carries
// at most one payment; a second attempt fails and leaves the first row
// untouched. CASH starts UNPAID (settled at the desk), everything else starts
// PENDING awaiting the provider.
func (u *paymentUsecase) Create(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
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

	if err := policy.Authorize(actor, policy.ActionPaymentCreate, policy.Owned(appointment.PatientID, appointment.DoctorID)); err != nil {
		return nil, err
	}

	existing, err := u.paymentRepo.FindByAppointmentID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to check existing payment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPaymentAlreadyExists
	}

	method := entity.PaymentMethod(req.Method)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	payment := &entity.Payment{
		AppointmentID: appointment.ID,
		Amount:        req.Amount,
		Method:        method,
		Status:        method.InitialStatus(),
		Description:   req.Description,
	}

	if err := u.paymentRepo.Create(tx, payment); err != nil {
		// Unique index on appointment_id backs up the pre-check under races.
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrPaymentAlreadyExists
		}
		u.log.Warnf("Failed to create payment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionPaymentCreate, "payment", payment.ID.String(), payment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.paymentRepo.FindByID(u.db.WithContext(ctx), payment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload payment %s: %+v", payment.ID, err)
		return converter.PaymentToResponse(payment), nil
	}

	return converter.PaymentToResponse(full), nil
}

// List returns payments visible to the caller. Patients only see payments on
// their own appointments.
func (u *paymentUsecase) List(ctx context.Context, query *dto.ListPaymentsQuery) (*dto.PaymentListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	filter := &repository.PaymentFilter{}

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
	if query.Status != "" {
		status := entity.PaymentStatus(query.Status)
		if !status.Valid() {
			return nil, ErrInvalidPaymentStatus
		}
		filter.Status = status
	}

	payments, err := u.paymentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list payments: %+v", err)
		return nil, err
	}

	return &dto.PaymentListResponse{
		Payments: converter.PaymentsToResponses(payments),
		Total:    len(payments),
	}, nil
}

func (u *paymentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	payment, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return converter.PaymentToResponse(payment), nil
}

// UpdateStatus settles or reverses a payment. PAID stamps paid_at; moving to
// any other status clears it again.
func (u *paymentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	payment, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionPaymentSetStatus, policy.Resource{}); err != nil {
		return nil, err
	}

	next := entity.PaymentStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	before := payment.Status

	payment.Status = next
	if next == entity.PaymentStatusPaid {
		now := time.Now()
		payment.PaidAt = &now
	} else {
		payment.PaidAt = nil
	}
	if req.TransactionID != "" {
		payment.TransactionID = req.TransactionID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.paymentRepo.Update(tx, payment); err != nil {
		u.log.Warnf("Failed to update payment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionPaymentStatusChange, "payment", id.String(), string(before), string(next)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Payment %s moved to %s by %s", id, next, actor.ID)
	return converter.PaymentToResponse(payment), nil
}

func (u *paymentUsecase) findVisible(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.Payment, error) {
	payment, err := u.paymentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find payment %s: %+v", id, err)
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	if err := policy.Authorize(actor, policy.ActionPaymentRead, policy.Owned(payment.Appointment.PatientID, payment.Appointment.DoctorID)); err != nil {
		if err == policy.ErrForbidden {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return payment, nil
}
