package balance

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByUserTypeYear(ctx context.Context, userID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID, year int) ([]LeaveBalance, error)
	Create(ctx context.Context, b *LeaveBalance) error
	Update(ctx context.Context, b *LeaveBalance) error
	// AddUsed increments Used by days. The row must exist.
	AddUsed(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, days decimal.Decimal) error
	// RevertUsed decrements Used by days, clamped at zero.
	RevertUsed(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, days decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements all run on tx, so ledger
// mutations commit or roll back together with the caller's writes.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) FindByUserTypeYear(ctx context.Context, userID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uuid.UUID, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("year = ?", year).
		Order("leave_type_id ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) AddUsed(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, days decimal.Decimal) error {
	b, err := r.FindByUserTypeYear(ctx, userID, leaveTypeID, year)
	if err != nil {
		return err
	}

	b.Used = b.Used.Add(days)
	return r.Update(ctx, b)
}

func (r *repository) RevertUsed(ctx context.Context, userID, leaveTypeID uuid.UUID, year int, days decimal.Decimal) error {
	b, err := r.FindByUserTypeYear(ctx, userID, leaveTypeID, year)
	if err != nil {
		return err
	}

	b.Used = b.Used.Sub(days)
	if b.Used.IsNegative() {
		b.Used = decimal.Zero
	}
	return r.Update(ctx, b)
}
