package repository

import (
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Preload("Appointment.Patient").Preload("Appointment.Doctor").
		Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Where("appointment_id = ?", appointmentID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindAll(db *gorm.DB, filter *domainRepo.PaymentFilter) ([]entity.Payment, error) {
	var payments []entity.Payment
	query := db.Preload("Appointment.Patient").Preload("Appointment.Doctor")

	if filter != nil {
		if filter.PatientID != nil {
			query = query.
				Joins("JOIN appointments ON appointments.id = payments.appointment_id").
				Where("appointments.patient_id = ?", *filter.PatientID)
		}
		if filter.AppointmentID != nil {
			query = query.Where("payments.appointment_id = ?", *filter.AppointmentID)
		}
		if filter.Status != "" {
			query = query.Where("payments.status = ?", filter.Status)
		}
	}

	err := query.Order("payments.created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Update(db *gorm.DB, payment *entity.Payment) error {
	return db.Omit("Appointment").Save(payment).Error
}
