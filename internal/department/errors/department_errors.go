package departmenterrors

import (
	"net/http"

	"github.com/yohan114/leave-management-system/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"A department with this name already exists",
		http.StatusConflict,
	)

	ErrDepartmentNotEmpty = apperror.New(
		apperror.CodeConflict,
		"Department still has members assigned",
		http.StatusConflict,
	)
)
