package workflow

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workflow_repo.go -destination=mock/workflow_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Workflow) error
	FindAll(ctx context.Context, activeOnly bool) ([]Workflow, error)
	FindByID(ctx context.Context, id string) (*Workflow, error)
	Update(ctx context.Context, w *Workflow) error
	Delete(ctx context.Context, id string) error
	// FindApplicable returns the active workflow whose day range contains
	// numberOfDays, or gorm.ErrRecordNotFound.
	FindApplicable(ctx context.Context, numberOfDays decimal.Decimal) (*Workflow, error)
	HasOverlappingRange(ctx context.Context, minDays, maxDays decimal.Decimal, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, w *Workflow) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Workflow, error) {
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var workflows []Workflow
	err := db.Order("min_days ASC").Find(&workflows).Error
	return workflows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Workflow, error) {
	var w Workflow
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	return &w, err
}

func (r *repository) Update(ctx context.Context, w *Workflow) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Workflow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindApplicable(ctx context.Context, numberOfDays decimal.Decimal) (*Workflow, error) {
	var w Workflow
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("min_days <= ?", numberOfDays).
		Where("max_days >= ?", numberOfDays).
		Order("min_days ASC").
		First(&w).Error
	return &w, err
}

func (r *repository) HasOverlappingRange(ctx context.Context, minDays, maxDays decimal.Decimal, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Workflow{}).
		Where("is_active = ?", true).
		Where("NOT (max_days < ? OR min_days > ?)", minDays, maxDays)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
