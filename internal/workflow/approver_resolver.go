package workflow

import (
	"context"

	"github.com/dapphari007/LMS/internal/user"

	"github.com/google/uuid"
)

// ApproverResolver computes the concrete approver set for one approval
// level. Resolution is deterministic: same inputs and user table state
// always yield the same set, ordered by user id.
type ApproverResolver struct {
	users user.Repository
}

func NewApproverResolver(users user.Repository) *ApproverResolver {
	return &ApproverResolver{users: users}
}

// Resolve returns the active users eligible to approve at level. The
// requester is always excluded: nobody approves their own request. An
// empty result is not an error here; callers decide whether an empty
// approver set is a configuration failure.
func (r *ApproverResolver) Resolve(
	ctx context.Context,
	level ApprovalLevel,
	requesterID uuid.UUID,
	departmentID *uuid.UUID,
) ([]user.User, error) {
	var deptFilter *uuid.UUID
	if level.DepartmentSpecific && departmentID != nil {
		deptFilter = departmentID
	}

	candidates, err := r.users.FindActiveByRoleIDs(ctx, level.RoleIDs, deptFilter)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(candidates))
	approvers := make([]user.User, 0, len(candidates))
	for _, u := range candidates {
		if u.ID == requesterID || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		approvers = append(approvers, u)
	}

	return approvers, nil
}
