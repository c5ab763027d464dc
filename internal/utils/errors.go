package utils

import (
	"net/http"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type AppError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewValidationError carries the list of rejected fields back to the client.
func NewValidationError(errs []FieldError) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Errors:     errs,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

// NewExternalServiceError wraps a failure from object storage or the reviewer platform.
// The cause is kept for logs but never shown to the client.
func NewExternalServiceError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

// NewPersistenceError wraps a store failure.
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}
