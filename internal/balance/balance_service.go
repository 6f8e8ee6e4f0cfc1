package balance

import (
	"context"
	"errors"

	balanceerrors "github.com/dapphari007/LMS/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetByUser(ctx context.Context, userID string, year int) ([]BalanceResponse, error)
	// Available computes balance + carryForward - used - pendingDays for
	// one user, leave type and year. A missing ledger row counts as zero
	// entitlement rather than an error, so availability checks can still
	// reject the request with a meaningful figure.
	Available(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, pendingDays decimal.Decimal) (Availability, decimal.Decimal, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByUser(ctx context.Context, userID string, year int) ([]BalanceResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, balanceerrors.ErrInvalidUserID
	}

	balances, err := s.repo.FindAllByUser(ctx, uid, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Available(
	ctx context.Context,
	userID, leaveTypeID uuid.UUID,
	year int,
	pendingDays decimal.Decimal,
) (Availability, decimal.Decimal, error) {
	b, err := s.repo.FindByUserTypeYear(ctx, userID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b = &LeaveBalance{
				UserID:      userID,
				LeaveTypeID: leaveTypeID,
				Year:        year,
			}
		} else {
			return Availability{}, decimal.Zero, err
		}
	}

	available := b.Remaining().Sub(pendingDays)

	return Availability{
		Balance:      b.Balance.String(),
		CarryForward: b.CarryForward.String(),
		Used:         b.Used.String(),
		Pending:      pendingDays.String(),
		Available:    available.String(),
	}, available, nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:           b.ID.String(),
		UserID:       b.UserID.String(),
		LeaveTypeID:  b.LeaveTypeID.String(),
		Year:         b.Year,
		Balance:      b.Balance.String(),
		Used:         b.Used.String(),
		CarryForward: b.CarryForward.String(),
		Remaining:    b.Remaining().String(),
	}
}
