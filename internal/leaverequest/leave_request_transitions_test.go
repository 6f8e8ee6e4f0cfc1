package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"github.com/dapphari007/LMS/internal/leaverequest"
	leaverequesterrors "github.com/dapphari007/LMS/internal/leaverequest/errors"
	"github.com/dapphari007/LMS/internal/user"
	"github.com/dapphari007/LMS/internal/workflow"
	workflowerrors "github.com/dapphari007/LMS/internal/workflow/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// userDirectory wires findByIDFn to a fixed set of users keyed by id.
func userDirectory(deps *requestServiceDeps, users ...*user.User) {
	byID := make(map[uuid.UUID]*user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	deps.users.findByIDFn = func(ctx context.Context, id uuid.UUID) (*user.User, error) {
		if u, ok := byID[id]; ok {
			return u, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
}

func pendingRequest(requesterID uuid.UUID, wf *workflow.Workflow, requiredLevels []int) *leaverequest.LeaveRequest {
	start, _ := time.ParseInLocation("2006-01-02", testStart, time.UTC)
	end, _ := time.ParseInLocation("2006-01-02", testEnd, time.UTC)
	return &leaverequest.LeaveRequest{
		ID:           uuid.New(),
		UserID:       requesterID,
		LeaveTypeID:  uuid.New(),
		StartDate:    start,
		EndDate:      end,
		RequestType:  leaverequest.RequestTypeFullDay,
		NumberOfDays: decimal.NewFromInt(3),
		Status:       leaverequest.StatusPending,
		Metadata: leaverequest.WorkflowMetadata{
			RequestUserRole:        "employee",
			WorkflowID:             wf.ID.String(),
			CurrentApprovalLevel:   0,
			RequiredApprovalLevels: requiredLevels,
			ApprovalHistory:        []leaverequest.ApprovalHistoryEntry{},
		},
	}
}

func serveRequest(deps *requestServiceDeps, request *leaverequest.LeaveRequest) {
	deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
		if id == request.ID {
			return request, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
}

func serveWorkflow(deps *requestServiceDeps, wf *workflow.Workflow) {
	deps.wfRepo.findByIDFn = func(ctx context.Context, id string) (*workflow.Workflow, error) {
		if id == wf.ID.String() {
			return wf, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
}

func TestLeaveRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	teamLead := &user.User{ID: uuid.New(), Name: "Tanvi Rao", RoleID: teamLeadRoleID, RoleName: "team_lead", IsActive: true}
	hr := &user.User{ID: uuid.New(), Name: "Farah Khan", RoleID: hrRoleID, RoleName: "hr", IsActive: true}

	t.Run("partial approval advances level", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, teamLead, hr, employeeUser(requesterID))

		addUsedCalled := false
		deps.balanceRepo.addUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			addUsedCalled = true
			return nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			assert.Equal(t, leaverequest.StatusPartiallyApproved, r.Status)
			assert.Equal(t, 1, r.Metadata.CurrentApprovalLevel)
			assert.Len(t, r.Metadata.ApprovalHistory, 1)
			assert.Equal(t, teamLead.ID.String(), r.Metadata.ApprovalHistory[0].ApproverID)
			assert.False(t, r.Metadata.IsFullyApproved)
			return nil
		}

		resp, err := deps.service.Approve(ctx, teamLead.ID.String(), request.ID.String(), leaverequest.DecisionRequest{Comments: "ok"})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusPartiallyApproved, resp.Status)
		assert.False(t, addUsedCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("final approval settles balance", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusPartiallyApproved
		request.Metadata.CurrentApprovalLevel = 1
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, teamLead, hr, employeeUser(requesterID))

		addUsedCalled := false
		deps.balanceRepo.addUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			addUsedCalled = true
			assert.Equal(t, requesterID, uid)
			assert.Equal(t, 2030, year)
			assert.True(t, decimal.NewFromInt(3).Equal(days))
			return nil
		}

		resp, err := deps.service.Approve(ctx, hr.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.True(t, addUsedCalled)
		assert.True(t, request.Metadata.IsFullyApproved)
		// The approval notification rides the same transaction as the
		// status change and balance settle.
		assert.True(t, deps.notifier.allInTx())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approving the only required level finalizes directly", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		// Level 1 was filtered out at creation; level 2 is all that remains.
		request := pendingRequest(requesterID, wf, []int{2})
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, hr, employeeUser(requesterID))

		addUsedCalled := false
		deps.balanceRepo.addUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			addUsedCalled = true
			return nil
		}

		resp, err := deps.service.Approve(ctx, hr.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.True(t, addUsedCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative self approval", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)
		userDirectory(deps, employeeUser(requesterID))

		_, err := deps.service.Approve(ctx, requesterID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, leaverequesterrors.ErrSelfApproval)
	})

	t.Run("negative role not on any level", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		outsider := &user.User{ID: uuid.New(), Name: "Dev Nair", RoleID: uuid.New(), RoleName: "employee", IsActive: true}
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, outsider, employeeUser(requesterID))

		_, err := deps.service.Approve(ctx, outsider.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAuthorized)
	})

	t.Run("negative level one role cannot approve past level", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusPartiallyApproved
		request.Metadata.CurrentApprovalLevel = 1
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, teamLead, employeeUser(requesterID))

		_, err := deps.service.Approve(ctx, teamLead.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAuthorized)
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusApproved
		serveRequest(deps, request)

		_, err := deps.service.Approve(ctx, teamLead.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidState)
	})

	t.Run("negative overlap with approved leave blocks approval", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, teamLead, employeeUser(requesterID))

		deps.repo.findOverlappingFn = func(ctx context.Context, uid uuid.UUID, start, end time.Time, statuses []string, excludeID *uuid.UUID) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, []string{leaverequest.StatusApproved}, statuses)
			assert.NotNil(t, excludeID)
			assert.Equal(t, request.ID, *excludeID)
			return []leaverequest.LeaveRequest{{ID: uuid.New(), Status: leaverequest.StatusApproved}}, nil
		}
		updateCalled := false
		deps.repo.updateFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			updateCalled = true
			return nil
		}

		_, err := deps.service.Approve(ctx, teamLead.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, leaverequesterrors.ErrOverlapConflict)
		assert.False(t, updateCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative workflow no longer exists", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)
		userDirectory(deps, teamLead, employeeUser(requesterID))

		_, err := deps.service.Approve(ctx, teamLead.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, workflowerrors.ErrWorkflowNotFound)
	})
}

func TestLeaveRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	teamLead := &user.User{ID: uuid.New(), Name: "Tanvi Rao", RoleID: teamLeadRoleID, RoleName: "team_lead", IsActive: true}

	t.Run("success", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, teamLead, employeeUser(requesterID))

		deps.repo.updateFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			assert.Equal(t, leaverequest.StatusRejected, r.Status)
			// Rejections leave no approval history behind.
			assert.Empty(t, r.Metadata.ApprovalHistory)
			return nil
		}

		resp, err := deps.service.Reject(ctx, teamLead.ID.String(), request.ID.String(), leaverequest.DecisionRequest{Comments: "headcount"})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative role not on any level", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		outsider := &user.User{ID: uuid.New(), RoleID: uuid.New(), RoleName: "employee", IsActive: true}
		serveRequest(deps, request)
		serveWorkflow(deps, wf)
		userDirectory(deps, outsider, employeeUser(requesterID))

		_, err := deps.service.Reject(ctx, outsider.ID.String(), request.ID.String(), leaverequest.DecisionRequest{})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAuthorized)
	})
}

func TestLeaveRequestService_Cancel(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	t.Run("approved future request reverts balance", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusApproved
		serveRequest(deps, request)

		revertCalled := false
		deps.balanceRepo.revertUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			revertCalled = true
			assert.Equal(t, 2030, year)
			assert.True(t, decimal.NewFromInt(3).Equal(days))
			return nil
		}

		resp, err := deps.service.Cancel(ctx, requesterID.String(), request.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusCancelled, resp.Status)
		assert.True(t, revertCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("pending request cancels without revert", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)

		revertCalled := false
		deps.balanceRepo.revertUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			revertCalled = true
			return nil
		}

		_, err := deps.service.Cancel(ctx, requesterID.String(), request.ID.String())

		assert.NoError(t, err)
		assert.False(t, revertCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative second cancel", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusCancelled
		serveRequest(deps, request)

		_, err := deps.service.Cancel(ctx, requesterID.String(), request.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidState)
	})

	t.Run("negative approved leave already started", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusApproved
		request.StartDate = time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
		serveRequest(deps, request)

		_, err := deps.service.Cancel(ctx, requesterID.String(), request.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrApprovedAlreadyStarted)
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)

		_, err := deps.service.Cancel(ctx, uuid.NewString(), request.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotOwner)
	})
}

func TestLeaveRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	requester := employeeUser(requesterID)
	admin := &user.User{ID: uuid.New(), Name: "Root", RoleID: uuid.New(), RoleName: "admin", IsActive: true}

	t.Run("owner deleting approved multi level request defers to approval", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusApproved
		serveRequest(deps, request)
		userDirectory(deps, requester)

		deleteCalled := false
		deps.repo.deleteFn = func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			assert.Equal(t, leaverequest.StatusPendingDeletion, r.Status)
			assert.Equal(t, leaverequest.StatusApproved, r.Metadata.OriginalStatus)
			assert.Equal(t, requesterID.String(), r.Metadata.DeletionRequestedBy)
			assert.NotNil(t, r.Metadata.DeletionRequestedAt)
			return nil
		}

		outcome, err := deps.service.Delete(ctx, requesterID.String(), request.ID.String())

		assert.NoError(t, err)
		assert.True(t, outcome.PendingDeletion)
		assert.False(t, outcome.Deleted)
		assert.False(t, deleteCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("owner deleting pending request removes it", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)
		userDirectory(deps, requester)

		deleteCalled := false
		revertCalled := false
		deps.repo.deleteFn = func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		}
		deps.balanceRepo.revertUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			revertCalled = true
			return nil
		}

		outcome, err := deps.service.Delete(ctx, requesterID.String(), request.ID.String())

		assert.NoError(t, err)
		assert.True(t, outcome.Deleted)
		assert.True(t, deleteCalled)
		assert.False(t, revertCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin deleting approved request reverts balance", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusApproved
		serveRequest(deps, request)
		userDirectory(deps, admin, requester)

		revertCalled := false
		deps.balanceRepo.revertUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			revertCalled = true
			return nil
		}

		outcome, err := deps.service.Delete(ctx, admin.ID.String(), request.ID.String())

		assert.NoError(t, err)
		assert.True(t, outcome.Deleted)
		assert.True(t, revertCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unrelated user", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		stranger := &user.User{ID: uuid.New(), RoleID: uuid.New(), RoleName: "employee", IsActive: true}
		serveRequest(deps, request)
		userDirectory(deps, stranger, requester)

		_, err := deps.service.Delete(ctx, stranger.ID.String(), request.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAuthorized)
	})
}

func TestLeaveRequestService_DeletionDecisions(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	hr := &user.User{ID: uuid.New(), Name: "Farah Khan", RoleID: hrRoleID, RoleName: "hr", IsActive: true}

	pendingDeletionRequest := func(wf *workflow.Workflow) *leaverequest.LeaveRequest {
		request := pendingRequest(requesterID, wf, []int{1, 2})
		request.Status = leaverequest.StatusPendingDeletion
		request.Metadata.OriginalStatus = leaverequest.StatusApproved
		request.Metadata.DeletionRequestedBy = requesterID.String()
		now := time.Now().UTC()
		request.Metadata.DeletionRequestedAt = &now
		return request
	}

	t.Run("approve deletion reverts and removes", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingDeletionRequest(wf)
		serveRequest(deps, request)
		userDirectory(deps, hr, employeeUser(requesterID))

		revertCalled := false
		deleteCalled := false
		deps.balanceRepo.revertUsedFn = func(ctx context.Context, uid, ltid uuid.UUID, year int, days decimal.Decimal) error {
			revertCalled = true
			return nil
		}
		deps.repo.deleteFn = func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			assert.Equal(t, request.ID, id)
			return nil
		}

		err := deps.service.ApproveDeletion(ctx, hr.ID.String(), request.ID.String())

		assert.NoError(t, err)
		assert.True(t, revertCalled)
		assert.True(t, deleteCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing original status", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingDeletionRequest(wf)
		request.Metadata.OriginalStatus = ""
		serveRequest(deps, request)
		userDirectory(deps, hr)

		err := deps.service.ApproveDeletion(ctx, hr.ID.String(), request.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrMissingOriginalStatus)
	})

	t.Run("negative not pending deletion", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		wf := twoLevelWorkflow()
		request := pendingRequest(requesterID, wf, []int{1, 2})
		serveRequest(deps, request)

		err := deps.service.ApproveDeletion(ctx, hr.ID.String(), request.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidState)
	})

	t.Run("reject deletion restores original status", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		wf := twoLevelWorkflow()
		request := pendingDeletionRequest(wf)
		serveRequest(deps, request)
		userDirectory(deps, hr, employeeUser(requesterID))

		deps.repo.updateFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			assert.Equal(t, leaverequest.StatusApproved, r.Status)
			assert.Empty(t, r.Metadata.OriginalStatus)
			assert.Empty(t, r.Metadata.DeletionRequestedBy)
			assert.Nil(t, r.Metadata.DeletionRequestedAt)
			assert.Equal(t, hr.ID.String(), r.Metadata.DeletionRejectedBy)
			assert.Equal(t, "keep the record", r.Metadata.DeletionRejectionComments)
			return nil
		}

		resp, err := deps.service.RejectDeletion(ctx, hr.ID.String(), request.ID.String(), leaverequest.DecisionRequest{Comments: "keep the record"})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
