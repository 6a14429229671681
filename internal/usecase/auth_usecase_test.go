package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-management-api/config"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The redis client is lazily connected; the paths under test never reach the
// token store, so the client is never dialed.
func newAuthUsecase(userRepo *mockUserRepository, audit *mockAuditService) AuthUsecase {
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	redisClient := redis.NewClient(&redis.Options{})
	return NewAuthUsecase(newTestDB(), newTestLogger(), userRepo, jwtService, redisClient, audit)
}

func TestRegisterAlwaysCreatesPatient(t *testing.T) {
	var created *entity.User
	userRepo := &mockUserRepository{
		CreateFn: func(db *gorm.DB, u *entity.User) error {
			u.ID = uuid.New()
			created = u
			return nil
		},
	}
	audit := &mockAuditService{}
	uc := newAuthUsecase(userRepo, audit)

	resp, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "ani@clinic.test",
		Password: "secret123",
		FullName: "Ani Wijaya",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.RolePatient, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	assert.Equal(t, "PATIENT", resp.Role)
	assert.Contains(t, audit.Actions, entity.AuditActionUserRegister)
}

func TestLoginUnknownEmail(t *testing.T) {
	uc := newAuthUsecase(&mockUserRepository{}, &mockAuditService{})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	userRepo := &mockUserRepository{
		FindByEmailFn: func(db *gorm.DB, email string) (*entity.User, error) {
			return &entity.User{ID: uuid.New(), Email: email, Password: string(hashed)}, nil
		},
	}
	uc := newAuthUsecase(userRepo, &mockAuditService{})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ani@clinic.test",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	inactive := false
	userRepo := &mockUserRepository{
		FindByEmailFn: func(db *gorm.DB, email string) (*entity.User, error) {
			return &entity.User{
				ID:       uuid.New(),
				Email:    email,
				Password: string(hashed),
				IsActive: &inactive,
			}, nil
		},
	}
	uc := newAuthUsecase(userRepo, &mockAuditService{})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ani@clinic.test",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	uc := newAuthUsecase(&mockUserRepository{}, &mockAuditService{})

	_, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	uc := newAuthUsecase(&mockUserRepository{}, &mockAuditService{})

	// An access token presented as a refresh token must not rotate.
	accessToken, _, err := jwtService.GenerateAccessToken(uuid.New(), "ani@clinic.test", "PATIENT")
	assert.NoError(t, err)

	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: accessToken,
	})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetCurrentUserMissing(t *testing.T) {
	uc := newAuthUsecase(&mockUserRepository{}, &mockAuditService{})

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
}
