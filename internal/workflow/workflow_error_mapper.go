package workflow

import (
	"errors"
	"strings"

	workflowerrors "github.com/dapphari007/LMS/internal/workflow/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflowerrors.ErrWorkflowNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_workflow_name" {
			return workflowerrors.ErrDuplicateName
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_workflow_name") {
		return workflowerrors.ErrDuplicateName
	}

	return err
}
