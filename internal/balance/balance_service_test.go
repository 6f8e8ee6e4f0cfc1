package balance_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dapphari007/LMS/internal/balance"
	balanceerrors "github.com/dapphari007/LMS/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	findByUserTypeYearFn func(ctx context.Context, userID, leaveTypeID uuid.UUID, year int) (*balance.LeaveBalance, error)
	findAllByUserFn      func(ctx context.Context, userID uuid.UUID, year int) ([]balance.LeaveBalance, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) FindByUserTypeYear(ctx context.Context, userID, leaveTypeID uuid.UUID, year int) (*balance.LeaveBalance, error) {
	if f.findByUserTypeYearFn != nil {
		return f.findByUserTypeYearFn(ctx, userID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindAllByUser(ctx context.Context, userID uuid.UUID, year int) ([]balance.LeaveBalance, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *balance.LeaveBalance) error { return nil }

func (f *fakeBalanceRepository) Update(ctx context.Context, b *balance.LeaveBalance) error { return nil }

func (f *fakeBalanceRepository) AddUsed(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, days decimal.Decimal) error {
	return nil
}

func (f *fakeBalanceRepository) RevertUsed(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, days decimal.Decimal) error {
	return nil
}

func TestBalanceService_Available(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByUserTypeYearFn: func(ctx context.Context, uid, ltid uuid.UUID, year int) (*balance.LeaveBalance, error) {
				return &balance.LeaveBalance{
					UserID:       uid,
					LeaveTypeID:  ltid,
					Year:         year,
					Balance:      decimal.NewFromInt(20),
					CarryForward: decimal.NewFromInt(3),
					Used:         decimal.NewFromInt(5),
				}, nil
			},
		}
		service := balance.NewService(repo)

		availability, available, err := service.Available(ctx, userID, leaveTypeID, 2030, decimal.NewFromInt(2))

		assert.NoError(t, err)
		// 20 + 3 - 5 - 2
		assert.Equal(t, "16", available.String())
		assert.Equal(t, "16", availability.Available)
		assert.Equal(t, "2", availability.Pending)
		assert.Equal(t, "5", availability.Used)
	})

	t.Run("missing ledger row counts as zero entitlement", func(t *testing.T) {
		service := balance.NewService(&fakeBalanceRepository{})

		availability, available, err := service.Available(ctx, userID, leaveTypeID, 2030, decimal.NewFromInt(1))

		assert.NoError(t, err)
		assert.Equal(t, "-1", available.String())
		assert.Equal(t, "0", availability.Balance)
	})

	t.Run("half day precision survives", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByUserTypeYearFn: func(ctx context.Context, uid, ltid uuid.UUID, year int) (*balance.LeaveBalance, error) {
				return &balance.LeaveBalance{
					Balance: decimal.NewFromInt(10),
					Used:    decimal.NewFromFloat(2.5),
				}, nil
			},
		}
		service := balance.NewService(repo)

		_, available, err := service.Available(ctx, userID, leaveTypeID, 2030, decimal.NewFromFloat(0.5))

		assert.NoError(t, err)
		assert.Equal(t, "7", available.String())
	})
}

func TestBalanceService_GetByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		repo := &fakeBalanceRepository{
			findAllByUserFn: func(ctx context.Context, uid uuid.UUID, year int) ([]balance.LeaveBalance, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, 2030, year)
				return []balance.LeaveBalance{{
					ID:          uuid.New(),
					UserID:      uid,
					LeaveTypeID: uuid.New(),
					Year:        year,
					Balance:     decimal.NewFromInt(12),
					Used:        decimal.NewFromInt(4),
				}}, nil
			},
		}
		service := balance.NewService(repo)

		resp, err := service.GetByUser(ctx, userID.String(), 2030)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "8", resp[0].Remaining)
	})

	t.Run("negative invalid user id", func(t *testing.T) {
		service := balance.NewService(&fakeBalanceRepository{})

		_, err := service.GetByUser(ctx, "not-a-uuid", 2030)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidUserID)
	})
}
