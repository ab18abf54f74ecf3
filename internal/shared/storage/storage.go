package storage

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/shared/apperror"
)

// Postgres error codes this service cares about.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var ErrConflict = apperror.New(
	apperror.CodeStorageConflict,
	"The operation could not be committed, please retry",
	http.StatusConflict,
)

// MapError normalizes storage failures into AppErrors. Serialization
// failures and deadlocks surface as a retryable STORAGE_CONFLICT: nothing
// was persisted, so the caller may resubmit the same logical operation.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return ErrConflict
		case pgUniqueViolation:
			return apperror.Wrap(err, apperror.CodeConflict, "Resource already exists", http.StatusConflict)
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
