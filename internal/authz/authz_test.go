package authz_test

import (
	"context"
	"testing"

	"github.com/dapphari007/LMS/internal/authz"
	"github.com/dapphari007/LMS/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindActiveByRoleIDs(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindManagerOf(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, ok := s.users[userID]
	if !ok || u.ManagerID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByID(ctx, *u.ManagerID)
}

func TestAuthorizer_IsAuthorized(t *testing.T) {
	ctx := context.Background()
	deptA := uuid.New()
	deptB := uuid.New()

	manager := &user.User{ID: uuid.New(), RoleName: "manager", DepartmentID: &deptA}
	hr := &user.User{ID: uuid.New(), RoleName: "hr"}
	teamLeadA := &user.User{ID: uuid.New(), RoleName: "team_lead", DepartmentID: &deptA}
	teamLeadB := &user.User{ID: uuid.New(), RoleName: "team_lead", DepartmentID: &deptB}
	report := &user.User{ID: uuid.New(), RoleName: "employee", DepartmentID: &deptA, ManagerID: &manager.ID}
	peer := &user.User{ID: uuid.New(), RoleName: "employee", DepartmentID: &deptA}

	repo := &stubUserRepo{users: map[uuid.UUID]*user.User{
		manager.ID:   manager,
		hr.ID:        hr,
		teamLeadA.ID: teamLeadA,
		teamLeadB.ID: teamLeadB,
		report.ID:    report,
		peer.ID:      peer,
	}}
	az := authz.NewAuthorizer(repo)

	tests := []struct {
		name   string
		actor  uuid.UUID
		target uuid.UUID
		want   bool
	}{
		{name: "self is denied", actor: report.ID, target: report.ID, want: false},
		{name: "hr is always allowed", actor: hr.ID, target: report.ID, want: true},
		{name: "direct manager is allowed", actor: manager.ID, target: report.ID, want: true},
		{name: "team lead in same department is allowed", actor: teamLeadA.ID, target: report.ID, want: true},
		{name: "team lead in other department is denied", actor: teamLeadB.ID, target: report.ID, want: false},
		{name: "unrelated peer is denied", actor: peer.ID, target: report.ID, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := az.IsAuthorized(ctx, tt.actor, tt.target)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, decision.Authorized)
			assert.NotEmpty(t, decision.Reason)
		})
	}
}
