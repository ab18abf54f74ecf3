package holidayerrors

import (
	"net/http"

	"github.com/yohan114/leave-management-system/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"Holiday not found",
		http.StatusNotFound,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
