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

// ErrForbidden indicates that the resource does not belong to the requesting user.
var ErrForbidden = errors.New("forbidden")

// ErrCurrencyMismatch indicates that two amounts in different currencies were combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrConflict indicates a concurrent modification of the same resource.
var ErrConflict = errors.New("concurrent modification")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// InvalidArgumentError reports a malformed value or a broken invariant.
type InvalidArgumentError struct {
	Message string
}

func NewInvalidArgument(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func (e *InvalidArgumentError) Error() string { return e.Message }

func (e *InvalidArgumentError) Unwrap() error { return ErrValidation }

// CurrencyMismatchError reports an operation mixing two currencies.
type CurrencyMismatchError struct {
	Expected string
	Actual   string
}

func NewCurrencyMismatch(expected, actual string) *CurrencyMismatchError {
	return &CurrencyMismatchError{Expected: expected, Actual: actual}
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e *CurrencyMismatchError) Unwrap() error { return ErrCurrencyMismatch }

// EntityDoesNotExistError reports a referenced id that has no stored entity.
type EntityDoesNotExistError struct {
	Entity string
	ID     string
}

func NewEntityDoesNotExist(entity, id string) *EntityDoesNotExistError {
	return &EntityDoesNotExistError{Entity: entity, ID: id}
}

func (e *EntityDoesNotExistError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Entity, e.ID)
}

func (e *EntityDoesNotExistError) Unwrap() error { return ErrNotFound }

// AuthorizationError reports an entity that does not belong to the requesting user.
type AuthorizationError struct {
	Entity string
	ID     string
	UserID string
}

func NewAuthorization(entity, id, userID string) *AuthorizationError {
	return &AuthorizationError{Entity: entity, ID: id, UserID: userID}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s %s does not belong to user %s", e.Entity, e.ID, e.UserID)
}

func (e *AuthorizationError) Unwrap() error { return ErrForbidden }

// AppError carries an HTTP-ish status code for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping err.
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
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}
