package workflow_test

import (
	"context"
	"testing"

	"github.com/dapphari007/LMS/internal/user"
	"github.com/dapphari007/LMS/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	findActiveByRoleIDsFn func(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindActiveByRoleIDs(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error) {
	if s.findActiveByRoleIDsFn != nil {
		return s.findActiveByRoleIDsFn(ctx, roleIDs, departmentID)
	}
	return nil, nil
}

func (s *stubUserRepo) FindManagerOf(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestApproverResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.New()
	requesterID := uuid.New()
	deptID := uuid.New()

	t.Run("excludes the requester", func(t *testing.T) {
		users := &stubUserRepo{
			findActiveByRoleIDsFn: func(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error) {
				return []user.User{
					{ID: requesterID, RoleID: roleID},
					{ID: uuid.New(), RoleID: roleID},
				}, nil
			},
		}
		resolver := workflow.NewApproverResolver(users)

		approvers, err := resolver.Resolve(ctx, workflow.ApprovalLevel{Level: 1, RoleIDs: []uuid.UUID{roleID}}, requesterID, nil)

		assert.NoError(t, err)
		assert.Len(t, approvers, 1)
		assert.NotEqual(t, requesterID, approvers[0].ID)
	})

	t.Run("deduplicates candidates", func(t *testing.T) {
		dup := user.User{ID: uuid.New(), RoleID: roleID}
		users := &stubUserRepo{
			findActiveByRoleIDsFn: func(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error) {
				return []user.User{dup, dup}, nil
			},
		}
		resolver := workflow.NewApproverResolver(users)

		approvers, err := resolver.Resolve(ctx, workflow.ApprovalLevel{Level: 1, RoleIDs: []uuid.UUID{roleID}}, requesterID, nil)

		assert.NoError(t, err)
		assert.Len(t, approvers, 1)
	})

	t.Run("department filter only when level is department specific", func(t *testing.T) {
		var gotDept *uuid.UUID
		users := &stubUserRepo{
			findActiveByRoleIDsFn: func(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error) {
				gotDept = departmentID
				return nil, nil
			},
		}
		resolver := workflow.NewApproverResolver(users)

		_, err := resolver.Resolve(ctx, workflow.ApprovalLevel{Level: 1, RoleIDs: []uuid.UUID{roleID}, DepartmentSpecific: true}, requesterID, &deptID)
		assert.NoError(t, err)
		assert.Equal(t, &deptID, gotDept)

		_, err = resolver.Resolve(ctx, workflow.ApprovalLevel{Level: 1, RoleIDs: []uuid.UUID{roleID}}, requesterID, &deptID)
		assert.NoError(t, err)
		assert.Nil(t, gotDept)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		resolver := workflow.NewApproverResolver(&stubUserRepo{})

		approvers, err := resolver.Resolve(ctx, workflow.ApprovalLevel{Level: 1, RoleIDs: []uuid.UUID{roleID}}, requesterID, nil)

		assert.NoError(t, err)
		assert.Empty(t, approvers)
	})
}
