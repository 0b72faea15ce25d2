package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProjectNotFound is returned when a project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectForbidden is returned when a project exists but belongs to another user.
	ErrProjectForbidden = errors.New("you are not authorized to access this project")
	// ErrTaskForbidden is returned when a task exists but belongs to another user.
	ErrTaskForbidden = errors.New("you are not authorized to access this task")
)

// ValidationError carries a client-facing validation failure message.
// The operation was not attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a validation error with the given message.
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Not-found and forbidden
// stay distinct here even when user-facing messages read alike.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, verr.Message, "VALIDATION_FAILED")
	}

	switch {
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProjectForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PROJECT_FORBIDDEN")
	case errors.Is(err, ErrTaskForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "TASK_FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
