package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure reported to clients
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists         ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail       ErrorCode = "INVALID_EMAIL"

	// Domain errors
	ErrCodePropertyNotFound ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeTicketNotFound   ErrorCode = "TICKET_NOT_FOUND"
	ErrCodeBookingNotFound  ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeBookingConflict  ErrorCode = "BOOKING_CONFLICT"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"

	// Storage errors
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidRange  ErrorCode = "INVALID_RANGE"
)

// AppError carries a client-facing code and message plus the underlying cause
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is, or wraps, an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")

	// Property errors
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyExists   = errors.New("property id already exists")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingConflict = errors.New("this booking overlaps with an existing booking")

	// Ticket errors
	ErrTicketNotFound = errors.New("ticket not found")

	// Media errors
	ErrUploadDisabled = errors.New("image upload is not configured")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
