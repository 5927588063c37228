package errors

import "fmt"

// ErrorCode represents a taskflow error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrUnknownStatus  ErrorCode = "UNKNOWN_STATUS"  // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// TaskError represents a structured error with code, status, and details.
type TaskError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TaskError {
	return &TaskError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnknownStatus creates a 400 error for a status token outside the closed
// enumeration. Raised before any mutation occurs.
func NewUnknownStatus(status string) *TaskError {
	return &TaskError{
		Code:    ErrUnknownStatus,
		Status:  400,
		Message: fmt.Sprintf("unknown status: %q (valid: now, next, waiting, someday, done)", status),
		Details: map[string]any{"status": status},
	}
}

// NewNotFound creates a 404 error for when a task cannot be found.
func NewNotFound(id string) *TaskError {
	return &TaskError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("task not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *TaskError {
	return &TaskError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TaskError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TaskError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TaskError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TaskError); ok {
		return tErr.Code == code
	}
	return false
}
