package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the single error shape surfaced to the view layer. StatusCode is
// the backend HTTP status when one was received, 0 otherwise.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithStatus(statusCode int) *AppError {
	e.StatusCode = statusCode

	return e
}

const (
	ErrCodeAuth            = "AUTH_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNetwork         = "NETWORK_ERROR"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeCancelled       = "CANCELLED"
	ErrCodeStorage         = "STORAGE_ERROR"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// bad credentials or an expired/rejected token
func AuthError(message string) *AppError {
	return NewAppError(ErrCodeAuth, message, http.StatusUnauthorized)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, 0)
}

// the request never completed
func NetworkError(message string) *AppError {
	return NewAppError(ErrCodeNetwork, message, 0)
}

// non-admin identity attempting an admin operation
func AuthorizationError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func CancelledError(message string) *AppError {
	return NewAppError(ErrCodeCancelled, message, 0)
}

func StorageError(message string) *AppError {
	return NewAppError(ErrCodeStorage, message, 0)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, 0)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, 0)
}

// FromStatus maps a non-2xx backend response onto the client taxonomy.
func FromStatus(statusCode int, message string) *AppError {

	if message == "" {
		message = http.StatusText(statusCode)
	}

	var appErr *AppError

	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		appErr = ValidationError(message)
	case http.StatusUnauthorized:
		appErr = AuthError(message)
	case http.StatusForbidden:
		appErr = AuthorizationError(message)
	case http.StatusNotFound:
		appErr = NotFoundError(message)
	default:
		appErr = ThirdPartyError(message)
	}

	return appErr.WithStatus(statusCode)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
