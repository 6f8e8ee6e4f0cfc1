package role

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	// ResolveRef accepts either a role id or a role name and returns the
	// role id. Workflow level definitions are normalized through this
	// once, at write time.
	ResolveRef(ctx context.Context, ref string) (uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	return &role, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	return &role, err
}

func (r *repository) ResolveRef(ctx context.Context, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		role, err := r.FindByID(ctx, id)
		if err != nil {
			return uuid.Nil, err
		}
		return role.ID, nil
	}

	role, err := r.FindByName(ctx, ref)
	if err != nil {
		return uuid.Nil, err
	}
	return role.ID, nil
}
