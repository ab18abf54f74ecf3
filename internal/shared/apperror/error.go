package apperror

import "fmt"

// AppError is the single error type crossing service boundaries. Handlers
// map it to the HTTP envelope via ToHTTP.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Field      string // offending field/date/amount, when known
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// WithField returns a copy carrying the offending field name, so validation
// failures stay specific enough for the UI to render a targeted message.
func (e *AppError) WithField(field string) *AppError {
	clone := *e
	clone.Field = field
	return &clone
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
