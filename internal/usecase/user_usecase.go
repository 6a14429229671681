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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserUsecase interface {
	List(ctx context.Context, role string) (*dto.UserListResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	UpdateRole(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *userUsecase) List(ctx context.Context, role string) (*dto.UserListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	if err := policy.Authorize(actor, policy.ActionUserManage, policy.Resource{}); err != nil {
		return nil, err
	}

	var roleFilter entity.Role
	if role != "" {
		roleFilter = entity.Role(role)
		if !roleFilter.Valid() {
			return nil, ErrInvalidRole
		}
	}

	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), roleFilter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// Create provisions a user with any role. This is how doctors and additional
// admins get onboarded; self sign-up only ever yields patients.
func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	if err := policy.Authorize(actor, policy.ActionUserManage, policy.Resource{}); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:         req.Email,
		Password:      string(hashedPassword),
		FullName:      req.FullName,
		Role:          entity.Role(req.Role),
		Phone:         req.Phone,
		Address:       req.Address,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionUserCreate, "user", user.ID.String(), user.Email); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	if err := policy.Authorize(actor, policy.ActionUserManage, policy.Resource{}); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// UpdateRole changes a user's role. Admins cannot change their own role, so
// the clinic can never lock itself out of administration by accident.
func (u *userUsecase) UpdateRole(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, policy.ErrUnauthorized
	}

	if err := policy.Authorize(actor, policy.ActionUserManage, policy.Resource{}); err != nil {
		return nil, err
	}
	if id == actor.ID {
		return nil, ErrOwnRoleChange
	}

	newRole := entity.Role(req.Role)
	if !newRole.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.userRepo.UpdateRole(tx, id, newRole)
	if err != nil {
		u.log.Warnf("Failed to update role for user %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionUserRoleChange, "user", id.String(), string(user.Role), string(newRole)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.Role = newRole
	u.log.Infof("User %s role changed to %s by %s", id, newRole, actor.ID)
	return converter.UserToResponse(user), nil
}
