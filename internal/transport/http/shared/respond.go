// Package shared holds the JSON envelope helpers used by every handler. All
// API responses use the same shape: {success, message?, data?, errors?}.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "vokasia/pkg/domain-errors"
)

// Envelope is the uniform API response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// WriteJSON writes a success envelope.
func WriteJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Message: message, Data: data})
}

// WriteError translates a domain error into the envelope. Unclassified errors
// become a generic 500 so internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	var fields map[string]any

	var de *dErrors.DomainError
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		message = de.Message
		fields = de.Fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: message, Errors: fields})
}
