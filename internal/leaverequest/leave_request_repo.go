package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_request_repo.go -destination=mock/leave_request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]LeaveRequest, int64, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]LeaveRequest, int64, error)
	// FindOverlapping returns this user's requests in the given statuses
	// that share at least one calendar day with [start, end], excluding
	// excludeID when non-nil.
	FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time, statuses []string, excludeID *uuid.UUID) ([]LeaveRequest, error)
	// SumPendingDays totals number_of_days over the user's pending and
	// partially approved requests for one leave type within a year.
	SumPendingDays(ctx context.Context, userID, leaveTypeID uuid.UUID, year int) (decimal.Decimal, error)
	Update(ctx context.Context, req *LeaveRequest) error
	// Delete removes the row permanently. Only the deletion-approval flow
	// and the direct-delete path call this.
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements all run on tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]LeaveRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&LeaveRequest{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []LeaveRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindAll(ctx context.Context, status string, limit, offset int) ([]LeaveRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []LeaveRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindOverlapping(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
	statuses []string,
	excludeID *uuid.UUID,
) ([]LeaveRequest, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", statuses).
		Where("NOT (end_date < ? OR start_date > ?)", start, end)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var requests []LeaveRequest
	err := query.Order("start_date ASC").Find(&requests).Error
	return requests, err
}

func (r *repository) SumPendingDays(ctx context.Context, userID, leaveTypeID uuid.UUID, year int) (decimal.Decimal, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("SUM(number_of_days)").
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status IN ?", []string{StatusPending, StatusPartiallyApproved}).
		Where("start_date BETWEEN ? AND ?", yearStart, yearEnd).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) Update(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return result.Error
}
