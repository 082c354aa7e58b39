// Package httputil writes JSON responses and the uniform error body.
package httputil

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// InternalErrorMessage replaces the message of unclassified failures.
const InternalErrorMessage = "Internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	ErrorStatusValue int    `json:"errorStatusValue"`
	ErrorStatus      string `json:"errorStatus"`
	ErrorTime        string `json:"errorTime"`
	ErrorMessage     string `json:"errorMessage"`
}

// NewErrorResponse renders status as e.g. BAD_REQUEST and now in UTC.
func NewErrorResponse(status int, message string, now time.Time) ErrorResponse {
	return ErrorResponse{
		ErrorStatusValue: status,
		ErrorStatus:      StatusName(status),
		ErrorTime:        now.UTC().Format(time.RFC3339),
		ErrorMessage:     message,
	}
}

// StatusName turns http.StatusText into an upper snake case constant.
func StatusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorResponse writes the uniform error body.
func WriteErrorResponse(w http.ResponseWriter, status int, message string, now time.Time) {
	WriteJSON(w, status, NewErrorResponse(status, message, now))
}
