package usecase

import (
	"testing"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAuditLogListAdminOnly(t *testing.T) {
	auditRepo := &mockAuditLogRepository{
		FindAllFn: func(db *gorm.DB) ([]entity.AuditLog, error) {
			return []entity.AuditLog{{ID: 1, Action: entity.AuditActionUserRegister}}, nil
		},
	}
	uc := NewAuditLogUsecase(newTestDB(), newTestLogger(), auditRepo)

	for _, role := range []entity.Role{entity.RolePatient, entity.RoleDoctor} {
		actor := policy.Actor{ID: uuid.New(), Role: role}
		_, err := uc.List(actorContext(actor))
		assert.ErrorIs(t, err, policy.ErrForbidden, "role %s", role)
	}

	admin := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	resp, err := uc.List(actorContext(admin))
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestAuditLogGetMissing(t *testing.T) {
	admin := policy.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	uc := NewAuditLogUsecase(newTestDB(), newTestLogger(), &mockAuditLogRepository{})

	_, err := uc.Get(actorContext(admin), 99)

	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
