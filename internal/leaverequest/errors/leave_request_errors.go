package leaverequesterrors

import (
	"net/http"

	"github.com/dapphari007/LMS/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"leave request id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be after end date",
		http.StatusBadRequest,
	)
	ErrPastStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be in the past",
		http.StatusBadRequest,
	)
	ErrHolidayInRange = apperror.New(
		apperror.CodeInvalidInput,
		"the requested range includes a company holiday",
		http.StatusBadRequest,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not active",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotApplicable = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not applicable to this user",
		http.StatusBadRequest,
	)
	ErrHalfDayNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"half-day requests are not allowed for this leave type",
		http.StatusBadRequest,
	)
	ErrHalfDayMultipleDays = apperror.New(
		apperror.CodeInvalidInput,
		"half-day requests must cover exactly one date",
		http.StatusBadRequest,
	)
	ErrZeroBusinessDays = apperror.New(
		apperror.CodeInvalidInput,
		"the requested range contains no business days",
		http.StatusBadRequest,
	)
	ErrOverlapConflict = apperror.New(
		apperror.CodeConflict,
		"the requested dates overlap an existing leave request",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance for the requested days",
		http.StatusBadRequest,
	)
	ErrNoApproverConfigured = apperror.New(
		apperror.CodeNoApprover,
		"no approver is configured for the first approval level",
		http.StatusBadRequest,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"operation is not valid for the current request status",
		http.StatusConflict,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot approve your own leave request",
		http.StatusForbidden,
	)
	ErrNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"you are not authorized to act on this leave request",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting user may perform this action",
		http.StatusForbidden,
	)
	ErrApprovedAlreadyStarted = apperror.New(
		apperror.CodeInvalidState,
		"an approved request that already started cannot be cancelled",
		http.StatusConflict,
	)
	ErrMissingOriginalStatus = apperror.New(
		apperror.CodeInternalError,
		"deletion metadata is missing the original status",
		http.StatusInternalServerError,
	)
)
