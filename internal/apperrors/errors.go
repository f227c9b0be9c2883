package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks. The
// caller can fix the input and resubmit.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a lifecycle/state violation, e.g. posting a journal
// that is not in draft or reversing one that is not posted. The input may be
// fine; the operation is not legal for the record's current state.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrLockContention indicates that a posting attempt could not acquire its
// account row locks within the configured timeout. The whole operation rolled
// back and may be retried from scratch by the caller; nothing retries
// internally.
var ErrLockContention = errors.New("could not acquire account locks")

// ErrImmutable indicates an attempt to change a write-once record (general
// ledger rows, audit trail entries, posted journal entries).
var ErrImmutable = errors.New("record is immutable")

// ErrIntegrity indicates a mutation that can never succeed, e.g. deleting a
// system account or an account still referenced by journal entries.
var ErrIntegrity = errors.New("integrity violation")

// ErrInternal indicates an unexpected failure that is propagated unchanged.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP status code alongside the wrapped cause so
// handlers can map service errors without switching on strings.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError with an explicit status code and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 error wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates a 400 error wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError creates a 409 error wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewDuplicateError creates a 409 error wrapping ErrDuplicate.
func NewDuplicateError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewLockContentionError creates a retryable 409 error wrapping ErrLockContention.
func NewLockContentionError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrLockContention}
}

// NewImmutableError creates a 409 error wrapping ErrImmutable.
func NewImmutableError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrImmutable}
}

// NewIntegrityError creates a 409 error wrapping ErrIntegrity.
func NewIntegrityError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrIntegrity}
}

// NewInternalError creates a 500 error keeping the original cause.
func NewInternalError(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// IsRetryable reports whether the caller may retry the whole operation.
// Only lock contention qualifies; validation, state and integrity failures
// never become retryable by waiting.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockContention)
}

// StatusCode extracts the HTTP status for err: the AppError code when one is
// in the chain, otherwise a mapping of the bare sentinels, defaulting to 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrLockContention),
		errors.Is(err, ErrImmutable),
		errors.Is(err, ErrIntegrity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
