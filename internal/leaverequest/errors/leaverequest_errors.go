package leaverequesterrors

import (
	"net/http"

	"github.com/yohan114/leave-management-system/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave balance exists for this leave type and year",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"insufficient leave balance for the requested days",
		http.StatusBadRequest,
	)
	ErrOverlappingRequest = apperror.New(
		apperror.CodeConflict,
		"an active leave request already covers part of this period",
		http.StatusConflict,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	// Stale client state: the request already left PENDING. Never treated as
	// an idempotent no-op.
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not pending",
		http.StatusBadRequest,
	)
	ErrMissingReason = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting a request",
		http.StatusBadRequest,
	)
	ErrUnauthorizedTransition = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to perform this transition",
		http.StatusForbidden,
	)
)
