// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"

	"catalogo/internal/apperr"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Regla  string            `json:"regla,omitempty"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// StatusError is input the transport layer rejected before any service ran.
// Its body is sent as is.
type StatusError struct {
	Status int
	Body   any
}

func (e *StatusError) Error() string {
	switch b := e.Body.(type) {
	case *APIError:
		return b.Detail
	case *ValidationError:
		return b.Detail
	}
	return http.StatusText(e.Status)
}

// BadRequest is a 400 for a body or path parameter that cannot be parsed.
func BadRequest(msg string) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Body: New(msg)}
}

// NotFound is a 404 for lookups that have no store-level not-found error.
func NotFound(msg string) *StatusError {
	return &StatusError{Status: http.StatusNotFound, Body: New(msg)}
}

// Invalid is a 422 listing the request fields whose tags failed.
func Invalid(fields map[string]string) *StatusError {
	return &StatusError{Status: http.StatusUnprocessableEntity, Body: NewValidation(fields)}
}

// FromError maps an error attached to a request to its HTTP status and
// response body. Validation failures are reported with the violated rule and
// field, also when they surfaced inside a transaction. Unknown errors become
// a generic 500.
func FromError(err error) (int, any) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, se.Body
	}
	var v *apperr.ValidationError
	if errors.As(err, &v) {
		return http.StatusUnprocessableEntity, &ValidationError{
			Detail: "Error de validacion",
			Regla:  string(v.Regla),
			Fields: map[string]string{v.Campo: v.Mensaje},
		}
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, New(nf.Error())
	}
	return http.StatusInternalServerError, New("Error interno del servidor")
}
