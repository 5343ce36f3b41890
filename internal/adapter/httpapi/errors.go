package httpapi

import "net/http"

// ErrorCode identifies the class of an API error in responses.
type ErrorCode string

const (
	ErrCodeInvalidJSON ErrorCode = "validation_invalid_json"
	ErrCodeValidation  ErrorCode = "validation_failed"
	ErrCodeNotFound    ErrorCode = "resource_not_found"
	ErrCodeInternal    ErrorCode = "internal_unexpected_error"
)

// AppError is an error with a client-facing code and message. Wrapped
// internals are logged but never exposed to clients.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus maps the error code to its response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidJSON, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
