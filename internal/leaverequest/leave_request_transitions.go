package leaverequest

import (
	"context"
	"errors"
	"time"

	"github.com/dapphari007/LMS/internal/events"
	leaverequesterrors "github.com/dapphari007/LMS/internal/leaverequest/errors"
	"github.com/dapphari007/LMS/internal/notification"
	"github.com/dapphari007/LMS/internal/user"
	workflowerrors "github.com/dapphari007/LMS/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *service) Approve(ctx context.Context, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("approve leave request attempt",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	request, actor, err := s.loadForDecision(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	matchedLevel, err := s.matchApprovalLevel(ctx, request, actor)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	request.Metadata.ApprovalHistory = append(request.Metadata.ApprovalHistory, ApprovalHistoryEntry{
		Level:        matchedLevel,
		ApproverID:   actor.ID.String(),
		ApproverName: actor.Name,
		ApprovedAt:   now,
		Comments:     req.Comments,
	})
	request.Metadata.CurrentApprovalLevel = matchedLevel
	request.ApproverID = &actor.ID
	request.ApproverComments = req.Comments

	final := matchedLevel == request.Metadata.HighestRequiredLevel()

	// Every advance re-checks approved siblings: two requests of one
	// user must never both hold the same calendar day as approved.
	conflicts, err := s.repo.FindOverlapping(ctx, request.UserID, request.StartDate, request.EndDate,
		[]string{StatusApproved}, &request.ID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if len(conflicts) > 0 {
		s.logger.Warn("approval blocked by overlapping approved leave",
			zap.String("leave_request_id", id),
			zap.Int("conflicts", len(conflicts)),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrOverlapConflict.WithDetails(mapOverlapDetails(conflicts))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if final {
		request.Status = StatusApproved
		request.ApprovedAt = &now
		request.Metadata.IsFullyApproved = true

		year := request.StartDate.Year()
		if err := s.balanceRepo.WithTx(tx).AddUsed(ctx, request.UserID, request.LeaveTypeID, year, request.NumberOfDays); err != nil {
			s.logger.Error("increment used balance failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	} else {
		request.Status = StatusPartiallyApproved
	}

	if err := qtx.Update(ctx, request); err != nil {
		return LeaveRequestResponse{}, err
	}

	ntx := s.notifier.WithTx(tx)
	if final {
		s.notifyUser(ctx, ntx, request.UserID, request, events.EventLeaveApproved,
			"Your leave request has been approved.")
	} else {
		s.notifyUser(ctx, ntx, request.UserID, request, events.EventLeaveSubmitted,
			"Your leave request advanced to the next approval level.")
		s.notifyNextLevelApprovers(ctx, ntx, request)
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	if final {
		s.logger.Info("leave request approved",
			zap.String("leave_request_id", id),
			zap.String("approver_id", actorID),
			zap.Int("level", matchedLevel),
		)
		return mapToResponse(request), nil
	}

	s.logger.Info("leave request partially approved",
		zap.String("leave_request_id", id),
		zap.String("approver_id", actorID),
		zap.Int("level", matchedLevel),
	)

	return mapToResponse(request), nil
}

func (s *service) Reject(ctx context.Context, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("reject leave request attempt",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	request, actor, err := s.loadForDecision(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	// A rejection requires the same level standing as an approval, but
	// terminates the request at once. No history entry is appended:
	// history records approvals only.
	if _, err := s.matchApprovalLevel(ctx, request, actor); err != nil {
		return LeaveRequestResponse{}, err
	}

	request.Status = StatusRejected
	request.ApproverID = &actor.ID
	request.ApproverComments = req.Comments

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, request); err != nil {
		return LeaveRequestResponse{}, err
	}
	s.notifyUser(ctx, s.notifier.WithTx(tx), request.UserID, request, events.EventLeaveRejected,
		"Your leave request has been rejected.")
	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request rejected",
		zap.String("leave_request_id", id),
		zap.String("approver_id", actorID),
	)

	return mapToResponse(request), nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	s.logger.Debug("cancel leave request attempt",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	aid, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}
	if aid != request.UserID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotOwner
	}

	switch request.Status {
	case StatusCancelled, StatusPendingDeletion:
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidState
	}

	wasApproved := request.Status == StatusApproved
	if wasApproved && request.StartDate.Before(truncateToDay(time.Now().UTC())) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrApprovedAlreadyStarted
	}

	request.Status = StatusCancelled

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	if wasApproved {
		year := request.StartDate.Year()
		if err := s.balanceRepo.WithTx(tx).RevertUsed(ctx, request.UserID, request.LeaveTypeID, year, request.NumberOfDays); err != nil {
			s.logger.Error("revert used balance failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := s.repo.WithTx(tx).Update(ctx, request); err != nil {
		return LeaveRequestResponse{}, err
	}
	s.notifyManager(ctx, s.notifier.WithTx(tx), request, events.EventLeaveCancelled,
		"A leave request of your report has been cancelled.")
	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request cancelled",
		zap.String("leave_request_id", id),
		zap.Bool("balance_reverted", wasApproved),
	)

	return mapToResponse(request), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) (DeleteOutcome, error) {
	s.logger.Debug("delete leave request attempt",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return DeleteOutcome{}, err
	}

	aid, err := uuid.Parse(actorID)
	if err != nil {
		return DeleteOutcome{}, leaverequesterrors.ErrInvalidRequestID
	}
	actor, err := s.users.FindByID(ctx, aid)
	if err != nil {
		return DeleteOutcome{}, err
	}

	isOwner := aid == request.UserID
	privileged := isPrivilegedRole(actor.RoleName)
	if !isOwner && !privileged {
		return DeleteOutcome{}, leaverequesterrors.ErrNotAuthorized
	}

	approvedLike := request.Status == StatusApproved || request.Status == StatusPartiallyApproved

	// An owner deleting an already-approved request under a multi-level
	// workflow does not delete immediately: the deletion itself goes
	// through approval.
	if approvedLike && isOwner && !privileged && len(request.Metadata.RequiredApprovalLevels) > 1 {
		now := time.Now().UTC()
		request.Metadata.OriginalStatus = request.Status
		request.Metadata.DeletionRequestedBy = actorID
		request.Metadata.DeletionRequestedAt = &now
		request.Status = StatusPendingDeletion

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return DeleteOutcome{}, err
		}
		defer tx.Rollback()

		if err := s.repo.WithTx(tx).Update(ctx, request); err != nil {
			return DeleteOutcome{}, err
		}
		s.notifyManager(ctx, s.notifier.WithTx(tx), request, events.EventLeaveDeletionPending,
			"A report requested deletion of an approved leave request.")
		if err := tx.Commit(); err != nil {
			return DeleteOutcome{}, err
		}

		s.logger.Info("leave request deletion pending approval",
			zap.String("leave_request_id", id),
			zap.String("original_status", request.Metadata.OriginalStatus),
		)

		return DeleteOutcome{PendingDeletion: true, Status: StatusPendingDeletion}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeleteOutcome{}, err
	}
	defer tx.Rollback()

	if approvedLike {
		year := request.StartDate.Year()
		if err := s.balanceRepo.WithTx(tx).RevertUsed(ctx, request.UserID, request.LeaveTypeID, year, request.NumberOfDays); err != nil {
			s.logger.Error("revert used balance failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			return DeleteOutcome{}, err
		}
	}

	if err := s.repo.WithTx(tx).Delete(ctx, request.ID); err != nil {
		return DeleteOutcome{}, err
	}
	s.notifyManager(ctx, s.notifier.WithTx(tx), request, events.EventLeaveDeleted,
		"A leave request of your report has been deleted.")
	if err := tx.Commit(); err != nil {
		return DeleteOutcome{}, err
	}

	s.logger.Info("leave request deleted",
		zap.String("leave_request_id", id),
		zap.Bool("balance_reverted", approvedLike),
	)

	return DeleteOutcome{Deleted: true}, nil
}

func (s *service) ApproveDeletion(ctx context.Context, actorID, id string) error {
	s.logger.Debug("approve deletion attempt",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	request, err := s.loadForDeletionDecision(ctx, actorID, id)
	if err != nil {
		return err
	}

	original := request.Metadata.OriginalStatus
	if original == "" {
		// The snapshot is written when entering pending_deletion; its
		// absence means the row was corrupted, not that a default applies.
		s.logger.Error("pending_deletion request without original status",
			zap.String("leave_request_id", id),
		)
		return leaverequesterrors.ErrMissingOriginalStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if original == StatusApproved || original == StatusPartiallyApproved {
		year := request.StartDate.Year()
		if err := s.balanceRepo.WithTx(tx).RevertUsed(ctx, request.UserID, request.LeaveTypeID, year, request.NumberOfDays); err != nil {
			s.logger.Error("revert used balance failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			return err
		}
	}

	if err := s.repo.WithTx(tx).Delete(ctx, request.ID); err != nil {
		return err
	}
	s.notifyUser(ctx, s.notifier.WithTx(tx), request.UserID, request, events.EventLeaveDeletionApproved,
		"Your leave request deletion was approved; the request has been removed.")
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("leave request deletion approved",
		zap.String("leave_request_id", id),
		zap.String("approver_id", actorID),
		zap.String("original_status", original),
	)

	return nil
}

func (s *service) RejectDeletion(ctx context.Context, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("reject deletion attempt",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	request, err := s.loadForDeletionDecision(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	original := request.Metadata.OriginalStatus
	if original == "" {
		s.logger.Error("pending_deletion request without original status",
			zap.String("leave_request_id", id),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrMissingOriginalStatus
	}

	now := time.Now().UTC()
	request.Status = original
	request.Metadata.OriginalStatus = ""
	request.Metadata.DeletionRequestedBy = ""
	request.Metadata.DeletionRequestedAt = nil
	request.Metadata.DeletionRejectedBy = actorID
	request.Metadata.DeletionRejectedAt = &now
	request.Metadata.DeletionRejectionComments = req.Comments

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, request); err != nil {
		return LeaveRequestResponse{}, err
	}
	s.notifyUser(ctx, s.notifier.WithTx(tx), request.UserID, request, events.EventLeaveDeletionRejected,
		"Your leave request deletion was rejected; the request has been restored.")
	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request deletion rejected",
		zap.String("leave_request_id", id),
		zap.String("restored_status", original),
	)

	return mapToResponse(request), nil
}

func (s *service) loadRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// loadForDecision loads a request plus the acting user and enforces the
// shared approve/reject preconditions: decidable status, no
// self-approval, actor either related to the requester or holding a
// role on an upcoming level.
func (s *service) loadForDecision(ctx context.Context, actorID, id string) (*LeaveRequest, *user.User, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if request.Status != StatusPending && request.Status != StatusPartiallyApproved {
		return nil, nil, leaverequesterrors.ErrInvalidState.WithDetails(map[string]any{
			"status": request.Status,
		})
	}

	aid, err := uuid.Parse(actorID)
	if err != nil {
		return nil, nil, leaverequesterrors.ErrInvalidRequestID
	}
	if aid == request.UserID {
		return nil, nil, leaverequesterrors.ErrSelfApproval
	}

	actor, err := s.users.FindByID(ctx, aid)
	if err != nil {
		return nil, nil, err
	}
	return request, actor, nil
}

// matchApprovalLevel decides which level the actor approves at. A
// partially approved request accepts only the single next required
// level; a pending request accepts the first required level whose role
// set contains the actor's role.
func (s *service) matchApprovalLevel(ctx context.Context, request *LeaveRequest, actor *user.User) (int, error) {
	wf, err := s.workflowRepo.FindByID(ctx, request.Metadata.WorkflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, workflowerrors.ErrWorkflowNotFound
		}
		return 0, err
	}

	if request.Status == StatusPartiallyApproved {
		next := request.Metadata.NextRequiredLevel()
		if next == 0 {
			return 0, leaverequesterrors.ErrInvalidState
		}
		def, ok := wf.ApprovalLevels.ByNumber(next)
		if !ok || !def.HasRole(actor.RoleID) {
			return 0, leaverequesterrors.ErrNotAuthorized
		}
		return next, nil
	}

	for _, lvl := range request.Metadata.RequiredApprovalLevels {
		def, ok := wf.ApprovalLevels.ByNumber(lvl)
		if !ok {
			continue
		}
		if def.HasRole(actor.RoleID) {
			return lvl, nil
		}
	}

	// No level matches the actor's role. Report the relationship reason
	// when there is one, it makes the 403 diagnosable.
	decision, err := s.authorizer.IsAuthorized(ctx, actor.ID, request.UserID)
	if err != nil {
		return 0, err
	}
	if decision.Authorized {
		return 0, leaverequesterrors.ErrNotAuthorized.WithDetails("no approval level matches your role")
	}
	return 0, leaverequesterrors.ErrNotAuthorized.WithDetails(decision.Reason)
}

// loadForDeletionDecision enforces the approve/reject-deletion gates:
// pending_deletion status and a manager/HR/admin relationship to the
// requester.
func (s *service) loadForDeletionDecision(ctx context.Context, actorID, id string) (*LeaveRequest, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status != StatusPendingDeletion {
		return nil, leaverequesterrors.ErrInvalidState.WithDetails(map[string]any{
			"status": request.Status,
		})
	}

	aid, err := uuid.Parse(actorID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidRequestID
	}

	actor, err := s.users.FindByID(ctx, aid)
	if err != nil {
		return nil, err
	}
	if isPrivilegedRole(actor.RoleName) {
		return request, nil
	}

	decision, err := s.authorizer.IsAuthorized(ctx, aid, request.UserID)
	if err != nil {
		return nil, err
	}
	if !decision.Authorized {
		return nil, leaverequesterrors.ErrNotAuthorized.WithDetails(decision.Reason)
	}
	return request, nil
}

// notifyNextLevelApprovers resolves and notifies the approvers of the
// next required level after a partial approval.
func (s *service) notifyNextLevelApprovers(ctx context.Context, n notification.Notifier, request *LeaveRequest) {
	next := request.Metadata.NextRequiredLevel()
	if next == 0 {
		return
	}

	wf, err := s.workflowRepo.FindByID(ctx, request.Metadata.WorkflowID)
	if err != nil {
		s.logger.Error("resolve workflow for notification failed",
			zap.String("leave_request_id", request.ID.String()),
			zap.Error(err),
		)
		return
	}
	def, ok := wf.ApprovalLevels.ByNumber(next)
	if !ok {
		return
	}

	requester, err := s.users.FindByID(ctx, request.UserID)
	if err != nil {
		s.logger.Error("resolve requester for notification failed",
			zap.String("leave_request_id", request.ID.String()),
			zap.Error(err),
		)
		return
	}

	approvers, err := s.resolver.Resolve(ctx, def, request.UserID, requester.DepartmentID)
	if err != nil {
		s.logger.Error("resolve next level approvers failed",
			zap.String("leave_request_id", request.ID.String()),
			zap.Int("level", next),
			zap.Error(err),
		)
		return
	}
	for _, approver := range approvers {
		s.notifyUser(ctx, n, approver.ID, request, events.EventLeaveApprovalRequired,
			"A leave request is awaiting your approval.")
	}
}
