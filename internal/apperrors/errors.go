package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a concurrent modification aborted the operation.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrUnavailable indicates an upstream dependency (database, auth provider) is unavailable.
var ErrUnavailable = errors.New("service unavailable")

// ErrInsufficientFunds indicates the source account balance does not cover the amount.
var ErrInsufficientFunds = fmt.Errorf("%w: insufficient balance", ErrValidation)

// ErrCurrencyMismatch indicates a transfer between accounts in different currencies.
var ErrCurrencyMismatch = fmt.Errorf("%w: cannot transfer between different currencies", ErrValidation)

// AppError carries an HTTP-ish status code and a safe message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
