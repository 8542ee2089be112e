// Package errors defines the structured error responses of the preview
// server API.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")

	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrFileSystem     = New(http.StatusInternalServerError, "FILESYSTEM_ERROR", "File system error")

	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
)

// DatasetNotFoundError reports a table id with no saved dataset
func DatasetNotFoundError(tableID string) *APIError {
	return NewWithDetails(http.StatusNotFound, "DATASET_NOT_FOUND",
		fmt.Sprintf("No dataset found for table %s", tableID), tableID)
}

// DatasetCorruptedError reports a dataset file that cannot be decoded
func DatasetCorruptedError(tableID string, err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "DATASET_CORRUPTED",
		fmt.Sprintf("Dataset for table %s cannot be decoded", tableID), err.Error())
}

// CatalogUnavailableError reports that the indicator catalog cannot be read
func CatalogUnavailableError(err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
		"Indicator catalog is unavailable", err.Error())
}

// CalendarUnavailableError reports that the release calendar cannot be fetched
func CalendarUnavailableError(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, "CALENDAR_UNAVAILABLE",
		"INE release calendar is unavailable", err.Error())
}

// InternalServerError creates an internal error with details
func InternalServerError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", err.Error())
}
