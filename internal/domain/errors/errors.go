package errors

import (
	"habit/internal/errors"
)

// Kind classifies an AppError for callers that branch on failure category.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInvalidInput
	KindConflict
	KindAuthentication
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Failure category
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same error code, so values produced by
// WithDetails still compare equal to the predefined error they came from.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the failure category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		KindValidation,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrWeakPassword = NewBaseError(
		KindValidation,
		"PASSWORD_STRENGTH",
		"password does not meet security requirements",
		"",
	)

	ErrPasswordUnchanged = NewBaseError(
		KindValidation,
		"PASSWORD_UNCHANGED",
		"new password must be different from the current password",
		"",
	)

	ErrInvalidInput = NewBaseError(
		KindInvalidInput,
		"INVALID_INPUT",
		"password must not be empty",
		"",
	)

	// Conflict-related errors
	ErrUserAlreadyExists = NewBaseError(
		KindConflict,
		"USER_ALREADY_EXISTS",
		"username is already taken",
		"",
	)

	ErrEmailAlreadyExists = NewBaseError(
		KindConflict,
		"EMAIL_ALREADY_EXISTS",
		"email is already registered",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		KindAuthentication,
		"INVALID_CREDENTIALS",
		"invalid username or password",
		"",
	)

	ErrReauthenticationRequired = NewBaseError(
		KindAuthentication,
		"REAUTHENTICATION_REQUIRED",
		"current password is required to change username or email",
		"",
	)

	// Lookup-related errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	// Storage-related errors
	ErrStorageUnavailable = NewBaseError(
		KindStorage,
		"STORAGE_UNAVAILABLE",
		"user store is unavailable",
		"",
	)
)

// StorageError represents a user store failure, implementing the AppError interface
type StorageError struct {
	err     error
	details string
}

// NewStorageError creates a storage-related error
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.err == nil {
		return "storage operation failed: " + e.details
	}

	return errors.Wrap(e.err, "storage operation failed").Error()
}

// Unwrap exposes the underlying cause
func (e *StorageError) Unwrap() error {
	return e.err
}

// Is lets errors.Is(err, ErrStorageUnavailable) match any StorageError
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == ErrStorageUnavailable.errorCode
}

// Kind returns the failure category
func (e *StorageError) Kind() Kind {
	return KindStorage
}

// ErrorCode returns the business error code
func (e *StorageError) ErrorCode() string {
	return ErrStorageUnavailable.errorCode
}

// Message returns the user-friendly error message
func (e *StorageError) Message() string {
	return ErrStorageUnavailable.message
}

// Details returns detailed error information
func (e *StorageError) Details() string {
	return e.details
}

// KindOf returns the Kind of the first AppError in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindUnknown
}

// MessageOf returns a user-facing message for err.
func MessageOf(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		if appErr.Details() != "" && appErr.Kind() == KindValidation {
			return appErr.Details()
		}

		return appErr.Message()
	}

	return "unexpected error"
}
