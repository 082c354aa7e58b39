package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Header names used on outbound calls.
const (
	HeaderAPIKey        = "api-key"
	HeaderClientID      = "clientId"
	HeaderCorrelationID = "correlation-id"
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Call performs one JSON request and decodes a 2xx body into out. Every
// failure comes back as *Error attributed to api.
func Call(ctx context.Context, client Doer, api string, req *http.Request, out any) error {
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return InternalError(api, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return InternalError(api, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StatusError(api, resp.StatusCode, body)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return InternalError(api, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// JoinURL appends path segments to base without doubling slashes.
func JoinURL(base string, segments ...string) string {
	u := strings.TrimRight(base, "/")
	for _, s := range segments {
		u += "/" + strings.Trim(s, "/")
	}
	return u
}
