package dto

// Request DTOs

// CreateUserRequest is the admin-side user provisioning (doctor onboarding,
// extra admins). Specialty and license number only make sense for DOCTOR but
// are not enforced: a doctor without a specialty is valid, just blank.
type CreateUserRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FullName      string `json:"full_name" validate:"required,min=2"`
	Role          string `json:"role" validate:"required,oneof=PATIENT DOCTOR ADMIN"`
	Phone         string `json:"phone" validate:"omitempty,min=8,max=20"`
	Address       string `json:"address" validate:"omitempty"`
	Specialty     string `json:"specialty" validate:"omitempty"`
	LicenseNumber string `json:"license_number" validate:"omitempty"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=PATIENT DOCTOR ADMIN"`
}

// Response DTOs

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
