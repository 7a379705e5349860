package api

import (
	"encoding/json"
	"net/http"
)

// ErrInvalidJSON is the error string returned for malformed request bodies.
// It is the only failure the handlers themselves produce.
const ErrInvalidJSON = "Invalid JSON data"

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a structured error response
func WriteError(w http.ResponseWriter, message, details string, status int) {
	WriteJSON(w, ErrorResponse{Error: message, Details: details}, status)
}

// InvalidJSON writes the 400 response for a malformed request body.
// The parse error is surfaced verbatim in the details field.
func InvalidJSON(w http.ResponseWriter, err error) {
	WriteError(w, ErrInvalidJSON, err.Error(), http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, details string) {
	WriteError(w, "Not Found", details, http.StatusNotFound)
}

// MethodNotAllowed writes a 405 Method Not Allowed error
func MethodNotAllowed(w http.ResponseWriter, method string) {
	WriteError(w, "Method Not Allowed", method+" is not supported on this path", http.StatusMethodNotAllowed)
}

// Unauthorized writes a 401 Unauthorized error
func Unauthorized(w http.ResponseWriter, details string) {
	WriteError(w, "Unauthorized", details, http.StatusUnauthorized)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, details string) {
	WriteError(w, "Internal server error", details, http.StatusInternalServerError)
}
