// Package authz decides which actor may drive which leave-request
// transition. It is a capability predicate injected into the request
// service, so the state machine stays testable without a full identity
// system.
package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/rbac"
)

// Actor is the authenticated caller of a transition, as decoded from the
// token by the HTTP layer.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// ManagerLookup resolves a user's direct manager. Satisfied by the user
// repository.
type ManagerLookup interface {
	ManagerOf(ctx context.Context, userID string) (*uuid.UUID, error)
}

type Gate interface {
	// CanCancel: only the requester may cancel their own request.
	CanCancel(actor Actor, requesterID uuid.UUID) bool
	// CanDecide: admins may approve or reject anything; managers only
	// requests from their direct reports.
	CanDecide(ctx context.Context, actor Actor, requesterID uuid.UUID) (bool, error)
}

type gate struct {
	users ManagerLookup
}

func NewGate(users ManagerLookup) Gate {
	return &gate{users: users}
}

func (g *gate) CanCancel(actor Actor, requesterID uuid.UUID) bool {
	return actor.ID == requesterID
}

func (g *gate) CanDecide(ctx context.Context, actor Actor, requesterID uuid.UUID) (bool, error) {
	switch actor.Role {
	case rbac.RoleAdmin:
		return true, nil
	case rbac.RoleManager:
		managerID, err := g.users.ManagerOf(ctx, requesterID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return managerID != nil && *managerID == actor.ID, nil
	default:
		return false, nil
	}
}
