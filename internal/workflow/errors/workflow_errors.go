package workflowerrors

import (
	"net/http"

	"github.com/dapphari007/LMS/internal/shared/apperror"
)

var (
	ErrWorkflowNotFound = apperror.New(
		apperror.CodeNotFound,
		"workflow not found",
		http.StatusNotFound,
	)
	ErrDuplicateName = apperror.New(
		apperror.CodeConflict,
		"a workflow with this name already exists",
		http.StatusConflict,
	)
	ErrOverlappingRange = apperror.New(
		apperror.CodeConflict,
		"day range overlaps another active workflow",
		http.StatusConflict,
	)
	ErrInvalidDayRange = apperror.New(
		apperror.CodeInvalidInput,
		"min_days must be positive and not exceed max_days",
		http.StatusBadRequest,
	)
	ErrNoLevels = apperror.New(
		apperror.CodeInvalidInput,
		"a workflow requires at least one approval level",
		http.StatusBadRequest,
	)
	ErrDuplicateLevelNumber = apperror.New(
		apperror.CodeInvalidInput,
		"approval level numbers must be unique",
		http.StatusBadRequest,
	)
	ErrInvalidLevelNumber = apperror.New(
		apperror.CodeInvalidInput,
		"approval level numbers must be positive",
		http.StatusBadRequest,
	)
	ErrLevelWithoutRoles = apperror.New(
		apperror.CodeInvalidInput,
		"every approval level needs at least one role",
		http.StatusBadRequest,
	)
	ErrUnknownRole = apperror.New(
		apperror.CodeInvalidInput,
		"approval level references an unknown role",
		http.StatusBadRequest,
	)
	ErrNoApplicableWorkflow = apperror.New(
		apperror.CodeNoWorkflow,
		"no active workflow covers the requested number of days",
		http.StatusBadRequest,
	)
	ErrInvalidWorkflowID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid workflow id",
		http.StatusBadRequest,
	)
)
