package usecase

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"

	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/policy"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ---- in-memory stand-in for the database handle ----
//
// Usecases only touch the *gorm.DB for WithContext and transaction
// bracketing; every query goes through a mocked repository. This stub driver
// gives gorm a connection whose Begin/Commit/Rollback are no-ops so the
// transaction plumbing runs for real without a server.

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConnector struct{}

func (stubConnector) Connect(context.Context) (driver.Conn, error) { return stubConn{}, nil }
func (stubConnector) Driver() driver.Driver                        { return stubDriver{} }

func newTestDB() *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sql.OpenDB(stubConnector{}),
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	if err != nil {
		panic(err)
	}
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func actorContext(actor policy.Actor) context.Context {
	return middleware.WithActor(context.Background(), actor)
}

// ---- repository mocks ----

type mockUserRepository struct {
	CreateFn      func(db *gorm.DB, user *entity.User) error
	FindByIDFn    func(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmailFn func(db *gorm.DB, email string) (*entity.User, error)
	FindAllFn     func(db *gorm.DB, role entity.Role) ([]entity.User, error)
	UpdateFn      func(db *gorm.DB, user *entity.User) error
	UpdateRoleFn  func(db *gorm.DB, id uuid.UUID, role entity.Role) (int64, error)
}

func (m *mockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, user)
	}
	return nil
}

func (m *mockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(db, email)
	}
	return nil, nil
}

func (m *mockUserRepository) FindAll(db *gorm.DB, role entity.Role) ([]entity.User, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db, role)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(db *gorm.DB, user *entity.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(db, user)
	}
	return nil
}

func (m *mockUserRepository) UpdateRole(db *gorm.DB, id uuid.UUID, role entity.Role) (int64, error) {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(db, id, role)
	}
	return 1, nil
}

type mockAppointmentRepository struct {
	CreateFn                 func(db *gorm.DB, appointment *entity.Appointment) error
	FindByIDFn               func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAllFn                func(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindActiveByDoctorSlotFn func(db *gorm.DB, doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error)
	UpdateStatusFn           func(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	DeleteFn                 func(db *gorm.DB, id uuid.UUID) (int64, error)
}

func (m *mockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, appointment)
	}
	return nil
}

func (m *mockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db, filter)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) FindActiveByDoctorSlot(db *gorm.DB, doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error) {
	if m.FindActiveByDoctorSlotFn != nil {
		return m.FindActiveByDoctorSlotFn(db, doctorID, date, timeOfDay)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(db, id, from, to)
	}
	return 1, nil
}

func (m *mockAppointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(db, id)
	}
	return 1, nil
}

type mockDoctorScheduleRepository struct {
	CreateFn              func(db *gorm.DB, schedule *entity.DoctorSchedule) error
	FindByIDFn            func(db *gorm.DB, id int) (*entity.DoctorSchedule, error)
	FindByDoctorIDFn      func(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorSchedule, error)
	FindAllFn             func(db *gorm.DB) ([]entity.DoctorSchedule, error)
	FindByDoctorDaySlotFn func(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, startTime string) (*entity.DoctorSchedule, error)
	DeleteFn              func(db *gorm.DB, id int) (int64, error)
}

func (m *mockDoctorScheduleRepository) Create(db *gorm.DB, schedule *entity.DoctorSchedule) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, schedule)
	}
	return nil
}

func (m *mockDoctorScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorSchedule, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

func (m *mockDoctorScheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorSchedule, error) {
	if m.FindByDoctorIDFn != nil {
		return m.FindByDoctorIDFn(db, doctorID)
	}
	return nil, nil
}

func (m *mockDoctorScheduleRepository) FindAll(db *gorm.DB) ([]entity.DoctorSchedule, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db)
	}
	return nil, nil
}

func (m *mockDoctorScheduleRepository) FindByDoctorDaySlot(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, startTime string) (*entity.DoctorSchedule, error) {
	if m.FindByDoctorDaySlotFn != nil {
		return m.FindByDoctorDaySlotFn(db, doctorID, dayOfWeek, startTime)
	}
	return nil, nil
}

func (m *mockDoctorScheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(db, id)
	}
	return 1, nil
}

type mockMedicalRecordRepository struct {
	CreateFn   func(db *gorm.DB, record *entity.MedicalRecord) error
	FindByIDFn func(db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error)
	FindAllFn  func(db *gorm.DB, filter *repository.MedicalRecordFilter) ([]entity.MedicalRecord, error)
	UpdateFn   func(db *gorm.DB, record *entity.MedicalRecord) error
}

func (m *mockMedicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, record)
	}
	return nil
}

func (m *mockMedicalRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

func (m *mockMedicalRecordRepository) FindAll(db *gorm.DB, filter *repository.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db, filter)
	}
	return nil, nil
}

func (m *mockMedicalRecordRepository) Update(db *gorm.DB, record *entity.MedicalRecord) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(db, record)
	}
	return nil
}

type mockPrescriptionRepository struct {
	CreateFn   func(db *gorm.DB, prescription *entity.Prescription) error
	FindByIDFn func(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindAllFn  func(db *gorm.DB, filter *repository.PrescriptionFilter) ([]entity.Prescription, error)
}

func (m *mockPrescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, prescription)
	}
	return nil
}

func (m *mockPrescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

func (m *mockPrescriptionRepository) FindAll(db *gorm.DB, filter *repository.PrescriptionFilter) ([]entity.Prescription, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db, filter)
	}
	return nil, nil
}

type mockPaymentRepository struct {
	CreateFn              func(db *gorm.DB, payment *entity.Payment) error
	FindByIDFn            func(db *gorm.DB, id uuid.UUID) (*entity.Payment, error)
	FindByAppointmentIDFn func(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error)
	FindAllFn             func(db *gorm.DB, filter *repository.PaymentFilter) ([]entity.Payment, error)
	UpdateFn              func(db *gorm.DB, payment *entity.Payment) error
}

func (m *mockPaymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, payment)
	}
	return nil
}

func (m *mockPaymentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

func (m *mockPaymentRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error) {
	if m.FindByAppointmentIDFn != nil {
		return m.FindByAppointmentIDFn(db, appointmentID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) FindAll(db *gorm.DB, filter *repository.PaymentFilter) ([]entity.Payment, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db, filter)
	}
	return nil, nil
}

func (m *mockPaymentRepository) Update(db *gorm.DB, payment *entity.Payment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(db, payment)
	}
	return nil
}

type mockAuditLogRepository struct {
	CreateFn   func(db *gorm.DB, log *entity.AuditLog) error
	FindAllFn  func(db *gorm.DB) ([]entity.AuditLog, error)
	FindByIDFn func(db *gorm.DB, id int64) (*entity.AuditLog, error)
}

func (m *mockAuditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	if m.CreateFn != nil {
		return m.CreateFn(db, log)
	}
	return nil
}

func (m *mockAuditLogRepository) FindAll(db *gorm.DB) ([]entity.AuditLog, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(db)
	}
	return nil, nil
}

func (m *mockAuditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(db, id)
	}
	return nil, nil
}

// mockAuditService records every call and never fails.
type mockAuditService struct {
	Actions []string
}

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *mockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}

var _ service.AuditService = (*mockAuditService)(nil)
