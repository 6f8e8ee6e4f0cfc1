package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindActiveByRoleIDs returns active users whose role is in roleIDs,
	// optionally restricted to one department. Results are ordered by id
	// so resolution is deterministic.
	FindActiveByRoleIDs(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]User, error)
	FindManagerOf(ctx context.Context, userID uuid.UUID) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindActiveByRoleIDs(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]User, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	db := r.db.WithContext(ctx).
		Where("role_id IN ?", roleIDs).
		Where("is_active = ?", true)

	if departmentID != nil {
		db = db.Where("department_id = ?", *departmentID)
	}

	var users []User
	err := db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *repository) FindManagerOf(ctx context.Context, userID uuid.UUID) (*User, error) {
	u, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.ManagerID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, *u.ManagerID)
}
