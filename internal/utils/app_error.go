package utils

import (
	"net/http"
)

type AppError struct {
	Code    int         // HTTP status code (e.g., 404, 400, 500)
	Message string      // User-facing message
	Details interface{} // Optional structured detail (violations, decode path)
	err     error       // Internal-facing error for logging purposes
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// WithDetails attaches structured detail to the response body.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// --- Error Helper Functions ---

// NewNotFoundError creates a 404 Not Found error.
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a 400 Bad Request error.
func NewBadRequestError(message string, originalError ...error) *AppError {
	e := &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
	if len(originalError) > 0 {
		e.err = originalError[0]
	}
	return e
}

// NewConflictError creates a 409 Conflict error.
func NewConflictError(message string, originalError error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
		err:     originalError,
	}
}

// NewUnprocessableError creates a 422 error for documents that decode but
// break structural rules.
func NewUnprocessableError(message string, originalError error) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		err:     originalError,
	}
}

// NewServiceUnavailableError creates a 503 error.
func NewServiceUnavailableError(message string, originalError error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: message,
		err:     originalError,
	}
}

// NewInternalServerError creates a 500 Internal Server Error.
func NewInternalServerError(message string, originalError error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		err:     originalError,
	}
}

// StandardResponse is the envelope of every JSON response.
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse creates a success response
func SuccessResponse(message string, data interface{}) StandardResponse {
	return StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// ErrorResponse creates an error response
func ErrorResponse(message string) StandardResponse {
	return StandardResponse{
		Status:  "error",
		Message: message,
	}
}

// ListResponse represents a list response
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
	Limit int         `json:"limit,omitempty"`
}
