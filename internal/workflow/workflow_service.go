package workflow

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dapphari007/LMS/internal/role"
	workflowerrors "github.com/dapphari007/LMS/internal/workflow/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workflow_service.go -destination=mock/workflow_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateWorkflowRequest) (WorkflowResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]WorkflowResponse, error)
	GetByID(ctx context.Context, id string) (WorkflowResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkflowRequest) (WorkflowResponse, error)
	Delete(ctx context.Context, id string) error
	// FindApplicable selects the active workflow whose day range contains
	// numberOfDays. There is no fallback default: a miss is a hard error.
	FindApplicable(ctx context.Context, numberOfDays decimal.Decimal) (*Workflow, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	roles  role.Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roles role.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workflow.service")
	}
	return &service{db: db, repo: repo, roles: roles, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateWorkflowRequest) (WorkflowResponse, error) {
	s.logger.Debug("create workflow requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create workflow begin tx failed", zap.Error(err))
		return WorkflowResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	minDays, maxDays, err := parseDayRange(req.MinDays, req.MaxDays)
	if err != nil {
		s.logger.Warn("create workflow validation failed", zap.Error(err))
		return WorkflowResponse{}, err
	}

	levels, err := s.resolveLevels(ctx, req.Levels)
	if err != nil {
		s.logger.Warn("create workflow level validation failed", zap.Error(err))
		return WorkflowResponse{}, err
	}

	overlap, err := qtx.HasOverlappingRange(ctx, minDays, maxDays, nil)
	if err != nil {
		s.logger.Error("create workflow overlap check failed", zap.Error(err))
		return WorkflowResponse{}, err
	}
	if overlap {
		return WorkflowResponse{}, workflowerrors.ErrOverlappingRange
	}

	w := &Workflow{
		ID:             uuid.New(),
		Name:           req.Name,
		MinDays:        minDays,
		MaxDays:        maxDays,
		ApprovalLevels: levels,
		IsActive:       true,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return WorkflowResponse{}, workflowerrors.ErrInvalidWorkflowID
		}
		w.CategoryID = &categoryID
	}

	if err := qtx.Create(ctx, w); err != nil {
		s.logger.Error("create workflow persist failed", zap.Error(err))
		return WorkflowResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create workflow commit failed", zap.Error(err))
		return WorkflowResponse{}, err
	}
	s.logger.Info("create workflow success",
		zap.String("workflow_id", w.ID.String()),
		zap.String("name", w.Name),
	)

	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]WorkflowResponse, error) {
	workflows, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(workflows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkflowResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkflowResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkflowRequest) (WorkflowResponse, error) {
	s.logger.Debug("update workflow requested", zap.String("workflow_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update workflow begin tx failed", zap.Error(err))
		return WorkflowResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkflowResponse{}, mapRepositoryError(err)
	}

	minDays, maxDays, err := parseDayRange(req.MinDays, req.MaxDays)
	if err != nil {
		s.logger.Warn("update workflow validation failed", zap.Error(err))
		return WorkflowResponse{}, err
	}

	levels, err := s.resolveLevels(ctx, req.Levels)
	if err != nil {
		s.logger.Warn("update workflow level validation failed", zap.Error(err))
		return WorkflowResponse{}, err
	}

	overlap, err := qtx.HasOverlappingRange(ctx, minDays, maxDays, &id)
	if err != nil {
		s.logger.Error("update workflow overlap check failed", zap.Error(err))
		return WorkflowResponse{}, err
	}
	if overlap {
		return WorkflowResponse{}, workflowerrors.ErrOverlappingRange
	}

	w.Name = req.Name
	w.MinDays = minDays
	w.MaxDays = maxDays
	w.ApprovalLevels = levels
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return WorkflowResponse{}, workflowerrors.ErrInvalidWorkflowID
		}
		w.CategoryID = &categoryID
	}

	if err := qtx.Update(ctx, w); err != nil {
		s.logger.Error("update workflow persist failed", zap.String("workflow_id", id), zap.Error(err))
		return WorkflowResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update workflow commit failed", zap.String("workflow_id", id), zap.Error(err))
		return WorkflowResponse{}, err
	}
	s.logger.Info("update workflow success", zap.String("workflow_id", id))

	return mapToResponse(*w), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func (s *service) FindApplicable(ctx context.Context, numberOfDays decimal.Decimal) (*Workflow, error) {
	w, err := s.repo.FindApplicable(ctx, numberOfDays)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowerrors.ErrNoApplicableWorkflow
		}
		return nil, err
	}
	return w, nil
}

func parseDayRange(minStr, maxStr string) (decimal.Decimal, decimal.Decimal, error) {
	minDays, err := decimal.NewFromString(minStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, workflowerrors.ErrInvalidDayRange
	}
	maxDays, err := decimal.NewFromString(maxStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, workflowerrors.ErrInvalidDayRange
	}
	if !minDays.IsPositive() || minDays.GreaterThan(maxDays) {
		return decimal.Zero, decimal.Zero, workflowerrors.ErrInvalidDayRange
	}
	return minDays, maxDays, nil
}

// resolveLevels validates the level definitions once and normalizes all
// role references to ids, so nothing downstream ever re-parses them.
func (s *service) resolveLevels(ctx context.Context, inputs []LevelInput) (ApprovalLevels, error) {
	if len(inputs) == 0 {
		return nil, workflowerrors.ErrNoLevels
	}

	seen := make(map[int]bool, len(inputs))
	levels := make(ApprovalLevels, 0, len(inputs))

	for _, in := range inputs {
		if in.Level <= 0 {
			return nil, workflowerrors.ErrInvalidLevelNumber
		}
		if seen[in.Level] {
			return nil, workflowerrors.ErrDuplicateLevelNumber
		}
		seen[in.Level] = true

		if len(in.Roles) == 0 {
			return nil, workflowerrors.ErrLevelWithoutRoles
		}

		roleIDs := make([]uuid.UUID, 0, len(in.Roles))
		dedup := make(map[uuid.UUID]bool, len(in.Roles))
		for _, ref := range in.Roles {
			roleID, err := s.roles.ResolveRef(ctx, ref)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, workflowerrors.ErrUnknownRole
				}
				return nil, err
			}
			if !dedup[roleID] {
				dedup[roleID] = true
				roleIDs = append(roleIDs, roleID)
			}
		}

		levels = append(levels, ApprovalLevel{
			Level:              in.Level,
			RoleIDs:            roleIDs,
			DepartmentSpecific: in.DepartmentSpecific,
			Required:           in.Required,
		})
	}

	return levels.Sorted(), nil
}

func mapToResponse(w Workflow) WorkflowResponse {
	levels := make([]LevelResponse, len(w.ApprovalLevels))
	for i, l := range w.ApprovalLevels {
		roleIDs := make([]string, len(l.RoleIDs))
		for j, id := range l.RoleIDs {
			roleIDs[j] = id.String()
		}
		levels[i] = LevelResponse{
			Level:              l.Level,
			RoleIDs:            roleIDs,
			DepartmentSpecific: l.DepartmentSpecific,
			Required:           l.Required,
		}
	}

	resp := WorkflowResponse{
		ID:       w.ID.String(),
		Name:     w.Name,
		MinDays:  w.MinDays.String(),
		MaxDays:  w.MaxDays.String(),
		Levels:   levels,
		IsActive: w.IsActive,
	}
	if w.CategoryID != nil {
		v := w.CategoryID.String()
		resp.CategoryID = &v
	}
	return resp
}

func mapToListResponse(workflows []Workflow) []WorkflowResponse {
	resp := make([]WorkflowResponse, len(workflows))
	for i, w := range workflows {
		resp[i] = mapToResponse(w)
	}
	return resp
}
