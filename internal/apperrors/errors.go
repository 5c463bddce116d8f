package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP status code alongside a user-facing message.
// Handlers can pass it straight to c.JSON(appErr.Code, appErr).
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

func newAppError(code int, message string, sentinel error) *AppError {
	return &AppError{Code: code, Message: message, err: sentinel}
}

// NewBadRequestError creates a 400 error wrapping ErrValidation.
func NewBadRequestError(message string) *AppError {
	return newAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewUnauthorizedError creates a 401 error wrapping ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return newAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

// NewForbiddenError creates a 403 error wrapping ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return newAppError(http.StatusForbidden, message, ErrForbidden)
}

// NewNotFoundError creates a 404 error wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return newAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewConflictError creates a 409 error wrapping ErrDuplicate.
func NewConflictError(message string) *AppError {
	return newAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewInternalServerError creates a 500 error. The message is returned to the
// client verbatim; internal detail belongs in the server-side log, not here.
func NewInternalServerError(message string) *AppError {
	return newAppError(http.StatusInternalServerError, message, nil)
}
