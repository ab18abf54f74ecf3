package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/authz"
	"github.com/yohan114/leave-management-system/internal/rbac"
)

type fakeManagerLookup struct {
	managerOfFn func(ctx context.Context, userID string) (*uuid.UUID, error)
}

func (f *fakeManagerLookup) ManagerOf(ctx context.Context, userID string) (*uuid.UUID, error) {
	return f.managerOfFn(ctx, userID)
}

func TestGate_CanCancel(t *testing.T) {
	gate := authz.NewGate(&fakeManagerLookup{})
	requesterID := uuid.New()

	assert.True(t, gate.CanCancel(authz.Actor{ID: requesterID, Role: rbac.RoleEmployee}, requesterID))
	assert.False(t, gate.CanCancel(authz.Actor{ID: uuid.New(), Role: rbac.RoleAdmin}, requesterID))
}

func TestGate_CanDecide(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	managerID := uuid.New()

	lookup := &fakeManagerLookup{
		managerOfFn: func(ctx context.Context, userID string) (*uuid.UUID, error) {
			assert.Equal(t, requesterID.String(), userID)
			return &managerID, nil
		},
	}
	gate := authz.NewGate(lookup)

	t.Run("admin decides anything", func(t *testing.T) {
		ok, err := gate.CanDecide(ctx, authz.Actor{ID: uuid.New(), Role: rbac.RoleAdmin}, requesterID)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("manager decides for direct reports only", func(t *testing.T) {
		ok, err := gate.CanDecide(ctx, authz.Actor{ID: managerID, Role: rbac.RoleManager}, requesterID)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = gate.CanDecide(ctx, authz.Actor{ID: uuid.New(), Role: rbac.RoleManager}, requesterID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("employee never decides", func(t *testing.T) {
		ok, err := gate.CanDecide(ctx, authz.Actor{ID: requesterID, Role: rbac.RoleEmployee}, requesterID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("requester without manager", func(t *testing.T) {
		orphanGate := authz.NewGate(&fakeManagerLookup{
			managerOfFn: func(ctx context.Context, userID string) (*uuid.UUID, error) {
				return nil, nil
			},
		})
		ok, err := orphanGate.CanDecide(ctx, authz.Actor{ID: managerID, Role: rbac.RoleManager}, requesterID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown requester is not decidable", func(t *testing.T) {
		missingGate := authz.NewGate(&fakeManagerLookup{
			managerOfFn: func(ctx context.Context, userID string) (*uuid.UUID, error) {
				return nil, gorm.ErrRecordNotFound
			},
		})
		ok, err := missingGate.CanDecide(ctx, authz.Actor{ID: managerID, Role: rbac.RoleManager}, requesterID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
