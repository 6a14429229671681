package usecase

import "errors"

// Sentinel errors translated into HTTP responses by the delivery layer.
var (
	// auth
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")

	// appointments
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSlotTaken           = errors.New("doctor already has an appointment at this time")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")

	// clinical
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrPrescriptionNotFound  = errors.New("prescription not found")

	// payments
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this appointment")
	ErrInvalidPaymentStatus = errors.New("unknown payment status")

	// schedules
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleSlotTaken = errors.New("schedule slot already exists for this doctor")
	ErrInvalidTimeRange  = errors.New("start_time must be before end_time")

	// users
	ErrInvalidRole   = errors.New("unknown role")
	ErrOwnRoleChange = errors.New("cannot change your own role")

	// audit
	ErrAuditLogNotFound = errors.New("audit log not found")
)
