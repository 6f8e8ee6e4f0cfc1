package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dapphari007/LMS/internal/authz"
	"github.com/dapphari007/LMS/internal/balance"
	"github.com/dapphari007/LMS/internal/events"
	"github.com/dapphari007/LMS/internal/holiday"
	leaverequesterrors "github.com/dapphari007/LMS/internal/leaverequest/errors"
	"github.com/dapphari007/LMS/internal/leavetype"
	"github.com/dapphari007/LMS/internal/notification"
	"github.com/dapphari007/LMS/internal/role"
	"github.com/dapphari007/LMS/internal/user"
	"github.com/dapphari007/LMS/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_request_service.go -destination=mock/leave_request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	GetMine(ctx context.Context, userID, status string, page, perPage int) ([]LeaveRequestResponse, int64, error)
	GetAll(ctx context.Context, status string, page, perPage int) ([]LeaveRequestResponse, int64, error)
	Approve(ctx context.Context, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	Delete(ctx context.Context, actorID, id string) (DeleteOutcome, error)
	ApproveDeletion(ctx context.Context, actorID, id string) error
	RejectDeletion(ctx context.Context, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	balanceRepo  balance.Repository
	balances     balance.Service
	workflowRepo workflow.Repository
	workflows    workflow.Service
	resolver     *workflow.ApproverResolver
	users        user.Repository
	leaveTypes   leavetype.Repository
	holidays     holiday.Repository
	authorizer   authz.Authorizer
	notifier     notification.Notifier
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balanceRepo balance.Repository,
	balances balance.Service,
	workflowRepo workflow.Repository,
	workflows workflow.Service,
	resolver *workflow.ApproverResolver,
	users user.Repository,
	leaveTypes leavetype.Repository,
	holidays holiday.Repository,
	authorizer authz.Authorizer,
	notifier notification.Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		balanceRepo:  balanceRepo,
		balances:     balances,
		workflowRepo: workflowRepo,
		workflows:    workflows,
		resolver:     resolver,
		users:        users,
		leaveTypes:   leaveTypes,
		holidays:     holidays,
		authorizer:   authorizer,
		notifier:     notifier,
		logger:       l,
	}
}

// overlapBlockingStatuses are the statuses that occupy calendar days at
// creation time. Final approval re-checks against approved only.
var overlapBlockingStatuses = []string{StatusPending, StatusPartiallyApproved, StatusApproved}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request attempt", zap.String("user_id", userID))

	uid, err := uuid.Parse(userID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}

	requester, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.Before(truncateToDay(time.Now().UTC())) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrPastStartDate
	}

	holidaysInRange, err := s.holidays.ListBetween(ctx, startDate, endDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if len(holidaysInRange) > 0 {
		dates := make([]string, len(holidaysInRange))
		for i, h := range holidaysInRange {
			dates[i] = h.Date.Format(dateLayout)
		}
		return LeaveRequestResponse{}, leaverequesterrors.ErrHolidayInRange.WithDetails(dates)
	}

	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}
	leaveType, err := s.leaveTypes.FindByID(ctx, leaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeInactive
	}
	if !leaveType.AppliesTo(requester.Gender) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeNotApplicable
	}

	requestType := req.RequestType
	if requestType == "" {
		requestType = RequestTypeFullDay
	}

	numberOfDays, err := s.computeDays(requestType, startDate, endDate, leaveType)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	overlapping, err := s.repo.FindOverlapping(ctx, uid, startDate, endDate, overlapBlockingStatuses, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if len(overlapping) > 0 {
		s.logger.Warn("leave request overlaps existing requests",
			zap.String("user_id", userID),
			zap.Int("conflicts", len(overlapping)),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrOverlapConflict.WithDetails(mapOverlapDetails(overlapping))
	}

	year := startDate.Year()
	pendingDays, err := s.repo.SumPendingDays(ctx, uid, leaveTypeID, year)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	availability, available, err := s.balances.Available(ctx, uid, leaveTypeID, year, pendingDays)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if numberOfDays.GreaterThan(available) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInsufficientBalance.WithDetails(map[string]any{
			"requested":     numberOfDays.String(),
			"available":     availability.Available,
			"pending":       availability.Pending,
			"balance":       availability.Balance,
			"carry_forward": availability.CarryForward,
			"used":          availability.Used,
		})
	}

	wf, err := s.workflows.FindApplicable(ctx, numberOfDays)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	requiredLevels, firstApprovers, err := s.planApprovalLevels(ctx, wf, requester)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	request := &LeaveRequest{
		ID:           uuid.New(),
		UserID:       uid,
		LeaveTypeID:  leaveTypeID,
		StartDate:    startDate,
		EndDate:      endDate,
		RequestType:  requestType,
		NumberOfDays: numberOfDays,
		Reason:       req.Reason,
		Status:       StatusPending,
		Metadata: WorkflowMetadata{
			RequestUserRole:        requester.RoleName,
			WorkflowID:             wf.ID.String(),
			CurrentApprovalLevel:   0,
			RequiredApprovalLevels: requiredLevels,
			ApprovalHistory:        []ApprovalHistoryEntry{},
		},
	}

	// A request whose every level would be self-approved needs nobody's
	// sign-off: it is finalized at creation.
	autoApprove := len(requiredLevels) == 0

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if autoApprove {
		now := time.Now().UTC()
		request.Status = StatusApproved
		request.ApprovedAt = &now
		request.Metadata.IsFullyApproved = true
	}

	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("persist leave request failed", zap.String("user_id", userID), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if autoApprove {
		if err := s.balanceRepo.WithTx(tx).AddUsed(ctx, uid, leaveTypeID, year, numberOfDays); err != nil {
			s.logger.Error("increment used balance failed", zap.String("user_id", userID), zap.Error(err))
			return LeaveRequestResponse{}, err
		}
	}

	ntx := s.notifier.WithTx(tx)
	if autoApprove {
		s.notifyUser(ctx, ntx, requester.ID, request, events.EventLeaveApproved,
			"Your leave request was approved automatically: no separate approval level applies to your role.")
	} else {
		s.notifyUser(ctx, ntx, requester.ID, request, events.EventLeaveSubmitted,
			"Your leave request was submitted and is awaiting approval.")
		for _, approver := range firstApprovers {
			s.notifyUser(ctx, ntx, approver.ID, request, events.EventLeaveApprovalRequired,
				"A leave request is awaiting your approval.")
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	if autoApprove {
		s.logger.Info("leave request auto-approved",
			zap.String("leave_request_id", request.ID.String()),
			zap.String("user_id", userID),
		)
		return mapToResponse(request), nil
	}

	s.logger.Info("leave request created",
		zap.String("leave_request_id", request.ID.String()),
		zap.String("user_id", userID),
		zap.String("number_of_days", numberOfDays.String()),
	)

	return mapToResponse(request), nil
}

// planApprovalLevels filters the workflow's levels down to the ones
// this requester actually needs: levels approvable by the requester's
// own role are dropped, and optional levels nobody can currently
// approve are skipped. A required level with an empty approver set is a
// configuration failure surfaced to the caller.
func (s *service) planApprovalLevels(
	ctx context.Context,
	wf *workflow.Workflow,
	requester *user.User,
) ([]int, []user.User, error) {
	required := make([]int, 0, len(wf.ApprovalLevels))
	var firstApprovers []user.User

	for _, lvl := range wf.ApprovalLevels.Sorted() {
		if lvl.HasRole(requester.RoleID) {
			continue
		}

		approvers, err := s.resolver.Resolve(ctx, lvl, requester.ID, requester.DepartmentID)
		if err != nil {
			return nil, nil, err
		}
		if len(approvers) == 0 {
			if lvl.Required {
				return nil, nil, leaverequesterrors.ErrNoApproverConfigured.WithDetails(map[string]any{
					"level": lvl.Level,
				})
			}
			continue
		}

		required = append(required, lvl.Level)
		if firstApprovers == nil {
			firstApprovers = approvers
		}
	}

	return required, firstApprovers, nil
}

func (s *service) computeDays(requestType string, startDate, endDate time.Time, leaveType *leavetype.LeaveType) (decimal.Decimal, error) {
	if requestType == RequestTypeFirstHalf || requestType == RequestTypeSecondHalf {
		if !startDate.Equal(endDate) {
			return decimal.Zero, leaverequesterrors.ErrHalfDayMultipleDays
		}
		if !leaveType.AllowHalfDay {
			return decimal.Zero, leaverequesterrors.ErrHalfDayNotAllowed
		}
		// The single date still has to be a working day.
		if CountBusinessDays(startDate, endDate, nil).IsZero() {
			return decimal.Zero, leaverequesterrors.ErrZeroBusinessDays
		}
		return HalfDayCount, nil
	}

	days := CountBusinessDays(startDate, endDate, nil)
	if days.IsZero() {
		return decimal.Zero, leaverequesterrors.ErrZeroBusinessDays
	}
	return days, nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	aid, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}
	if aid != request.UserID {
		actor, err := s.users.FindByID(ctx, aid)
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		if !isPrivilegedRole(actor.RoleName) {
			decision, err := s.authorizer.IsAuthorized(ctx, aid, request.UserID)
			if err != nil {
				return LeaveRequestResponse{}, err
			}
			if !decision.Authorized {
				return LeaveRequestResponse{}, leaverequesterrors.ErrNotAuthorized.WithDetails(decision.Reason)
			}
		}
	}

	return mapToResponse(request), nil
}

func (s *service) GetMine(ctx context.Context, userID, status string, page, perPage int) ([]LeaveRequestResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, leaverequesterrors.ErrInvalidRequestID
	}

	limit, offset := pagination(page, perPage)
	requests, total, err := s.repo.FindAllByUser(ctx, uid, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToResponses(requests), total, nil
}

func (s *service) GetAll(ctx context.Context, status string, page, perPage int) ([]LeaveRequestResponse, int64, error) {
	limit, offset := pagination(page, perPage)
	requests, total, err := s.repo.FindAll(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToResponses(requests), total, nil
}

func mapToResponses(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i := range requests {
		resp[i] = mapToResponse(&requests[i])
	}
	return resp
}

func pagination(page, perPage int) (limit, offset int) {
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return perPage, (page - 1) * perPage
}

func isPrivilegedRole(roleName string) bool {
	return roleName == role.NameAdmin || roleName == role.NameHR
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateRange
	}
	endDate, err := time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateRange
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

// notifyUser enqueues one notification through n, normally the
// tx-bound notifier of the running transition, and swallows the
// failure: enqueue problems are logged, never propagated into the
// transition.
func (s *service) notifyUser(ctx context.Context, n notification.Notifier, recipientID uuid.UUID, request *LeaveRequest, eventType, message string) {
	err := n.Notify(ctx, notification.Notification{
		RecipientID:    recipientID.String(),
		LeaveRequestID: request.ID.String(),
		RequesterID:    request.UserID.String(),
		EventType:      eventType,
		Status:         request.Status,
		Message:        message,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("notification dispatch failed",
			zap.String("event_type", eventType),
			zap.String("recipient_id", recipientID.String()),
			zap.String("leave_request_id", request.ID.String()),
			zap.Error(err),
		)
	}
}

// notifyManager notifies the requester's manager when one exists.
func (s *service) notifyManager(ctx context.Context, n notification.Notifier, request *LeaveRequest, eventType, message string) {
	manager, err := s.users.FindManagerOf(ctx, request.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("resolve manager for notification failed",
				zap.String("leave_request_id", request.ID.String()),
				zap.Error(err),
			)
		}
		return
	}
	s.notifyUser(ctx, n, manager.ID, request, eventType, message)
}
