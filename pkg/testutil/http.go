// Package testutil provides common test utilities for handler and router tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eligibility/pkg/platform/httputil"
)

// NewEligibilityRequest builds GET /api/v1/eligibility. Empty values leave
// the corresponding header unset.
func NewEligibilityRequest(t *testing.T, clientID, correlationID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/eligibility", nil)
	if clientID != "" {
		req.Header.Set("clientId", clientID)
	}
	if correlationID != "" {
		req.Header.Set("correlation-id", correlationID)
	}
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse unmarshals the response body into the target struct.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), "failed to unmarshal response: %s", rr.Body.String())
	return &result
}

// UnmarshalErrorResponse unmarshals the uniform error body.
func UnmarshalErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	return *UnmarshalResponse[httputil.ErrorResponse](t, rr)
}

// AssertErrorResponse asserts the status and that the error body agrees with
// it. The message is returned for further checks.
func AssertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int) string {
	t.Helper()
	require.Equal(t, status, rr.Code, "unexpected status code: %s", rr.Body.String())
	body := UnmarshalErrorResponse(t, rr)
	assert.Equal(t, status, body.ErrorStatusValue)
	assert.Equal(t, httputil.StatusName(status), body.ErrorStatus)
	assert.NotEmpty(t, body.ErrorTime)
	return body.ErrorMessage
}
