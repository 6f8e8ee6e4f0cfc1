package authz

import (
	"context"

	"github.com/dapphari007/LMS/internal/role"
	"github.com/dapphari007/LMS/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Decision explains an authorization outcome so handlers can surface
// the reason instead of a bare 403.
type Decision struct {
	Authorized bool
	Reason     string
}

//go:generate mockgen -source=authz.go -destination=mock/authz_mock.go -package=mock

// Authorizer answers whether an actor may act on another user's leave
// requests. Self-authorization is always denied here; the approval flow
// enforces that an approver never rules on their own request.
type Authorizer interface {
	IsAuthorized(ctx context.Context, actorID, targetUserID uuid.UUID) (Decision, error)
}

type authorizer struct {
	userRepo user.Repository
	logger   *zap.Logger
}

func NewAuthorizer(userRepo user.Repository, logger ...*zap.Logger) Authorizer {
	l := zap.L().Named("authz")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("authz")
	}
	return &authorizer{userRepo: userRepo, logger: l}
}

func (a *authorizer) IsAuthorized(ctx context.Context, actorID, targetUserID uuid.UUID) (Decision, error) {
	if actorID == targetUserID {
		return Decision{Authorized: false, Reason: "cannot act on own request"}, nil
	}

	actor, err := a.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return Decision{}, err
	}

	switch actor.RoleName {
	case role.NameAdmin, role.NameHR:
		return Decision{Authorized: true, Reason: "role grants global approval rights"}, nil
	}

	target, err := a.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return Decision{}, err
	}

	if target.ManagerID != nil && *target.ManagerID == actor.ID {
		return Decision{Authorized: true, Reason: "actor manages the requester"}, nil
	}

	if actor.RoleName == role.NameTeamLead &&
		actor.DepartmentID != nil && target.DepartmentID != nil &&
		*actor.DepartmentID == *target.DepartmentID {
		return Decision{Authorized: true, Reason: "team lead in requester's department"}, nil
	}

	return Decision{Authorized: false, Reason: "no management relationship with requester"}, nil
}
