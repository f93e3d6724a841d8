// Package domainerrors defines the coded errors shared by all modules. Codes
// travel from services to the HTTP layer, which maps them onto status codes
// and the JSON envelope without inspecting error strings.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain failure.
type Code string

const (
	CodeBadRequest        Code = "bad_request"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeConflict          Code = "conflict"
	CodeGeofenceViolation Code = "geofence_violation"
	CodeUnprocessable     Code = "unprocessable"
	CodeUnavailable       Code = "unavailable"
	CodeInternal          Code = "internal"
)

// DomainError carries a machine-readable code plus a message safe to show to
// API clients. Optional Fields hold structured detail such as the measured
// geofence distance.
type DomainError struct {
	Code    Code
	Message string
	Fields  map[string]any
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a DomainError with the given code and client-safe message.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithField attaches one structured detail field and returns the error so
// call sites can chain it onto New.
func (e *DomainError) WithField(key string, value any) *DomainError {
	if e.Fields == nil {
		e.Fields = make(map[string]any, 1)
	}
	e.Fields[key] = value
	return e
}

// CodeOf extracts the domain code from an error chain, defaulting to
// CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FromHTTPStatus maps an HTTP status back onto a domain code. API clients use
// it to rebuild coded errors from envelope responses.
func FromHTTPStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeUnprocessable
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// ToHTTPStatus maps a domain code onto the HTTP status used by the JSON API.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeGeofenceViolation, CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
