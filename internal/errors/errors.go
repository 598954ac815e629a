package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"

	// Drill engine taxonomy. None of these abort a session.
	ErrCodeParseFailure     = "PARSE_FAILURE"
	ErrCodeRuleSetupFailure = "RULE_SETUP_FAILURE"
	ErrCodeStaleEvent       = "STALE_EVENT"
	ErrCodeNetworkFailure   = "NETWORK_FAILURE"
)

// ErrStaleEvent marks an interaction or response that no longer belongs to the
// active session. It is logged, never surfaced.
var ErrStaleEvent = &AppError{Code: ErrCodeStaleEvent, Message: "event does not match the active session"}

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "NETWORK_FAILURE")
	Message string // Human-readable error message
	Status  int    // HTTP status code, 0 for errors that never reach HTTP
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so errors.Is(err, ErrStaleEvent) works on copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewParseFailure reports board notation that could not be parsed.
func NewParseFailure(notation string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParseFailure,
		Message: fmt.Sprintf("malformed board notation %q", notation),
		Err:     err,
	}
}

// NewRuleSetupFailure reports notation that parsed but is not a legal setup.
func NewRuleSetupFailure(notation, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeRuleSetupFailure,
		Message: fmt.Sprintf("illegal setup %q: %s", notation, reason),
	}
}

// NewNetworkFailure wraps a failed request to the drill server.
func NewNetworkFailure(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetworkFailure,
		Message: fmt.Sprintf("%s request failed", op),
		Status:  502,
		Err:     err,
	}
}
