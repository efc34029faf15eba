package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// Taxonomy helpers. Every failure in the chat core falls into one of these
// buckets and is surfaced to the caller as an ack or JSON body, never a panic.

func NewAuthenticationError(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, msg, "auth")
}

func NewAuthorizationError(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg, "authorization")
}

func NewValidationError(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

func NewNotFoundError(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg, "not-found")
}

func NewStoreError(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg, "db-error")
}
