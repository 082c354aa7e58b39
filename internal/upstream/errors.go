// Package upstream holds what the Accounts and Clients clients share: the
// error type they return and the request plumbing.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// API names used in error messages.
const (
	APIAccounts = "Accounts"
	APIClients  = "Clients"
)

// Error reports a failed upstream call. StatusCode is 0 when no response was
// received. Message is safe to show to callers.
type Error struct {
	API        string
	StatusCode int
	Body       string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsClientError reports whether the upstream rejected the request with a 4xx.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// StatusError classifies a non-2xx response. 4xx is reported as a server
// rejection; 5xx and anything else as an internal error.
func StatusError(api string, status int, body []byte) *Error {
	statusText := StatusLabel(status)
	e := &Error{
		API:        api,
		StatusCode: status,
		Body:       string(body),
	}
	if e.IsClientError() {
		e.Message = fmt.Sprintf("%s server error when calling %s API: %s", api, api, statusText)
	} else {
		e.Message = fmt.Sprintf("Internal error when calling %s API: %s", api, statusText)
	}
	e.Cause = errors.New(statusText)
	return e
}

// InternalError wraps a failure that produced no usable response.
func InternalError(api string, cause error) *Error {
	return &Error{
		API:     api,
		Message: fmt.Sprintf("Internal error when calling %s API: %s", api, cause.Error()),
		Cause:   cause,
	}
}

// StatusLabel renders a status as "404 NOT_FOUND".
func StatusLabel(status int) string {
	text := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	if text == "" {
		return fmt.Sprintf("%d", status)
	}
	return fmt.Sprintf("%d %s", status, text)
}
