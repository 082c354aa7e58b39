// Package accounts calls the Accounts upstream to list the accounts a client
// owns.
package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"eligibility/internal/upstream"
)

// Client lists client accounts. The http.Client is expected to carry the
// audit transport.
type Client struct {
	http    upstream.Doer
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(httpClient upstream.Doer, baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientAccounts calls GET {base}/list. The result is never nil: a missing
// or null accounts field yields an empty slice.
func (c *Client) ClientAccounts(ctx context.Context, clientID, correlationID string) ([]Account, error) {
	payload, err := json.Marshal(listRequest{ClientID: clientID})
	if err != nil {
		return nil, upstream.InternalError(upstream.APIAccounts, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstream.JoinURL(c.baseURL, "list"), bytes.NewReader(payload))
	if err != nil {
		return nil, upstream.InternalError(upstream.APIAccounts, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(upstream.HeaderClientID, clientID)
	req.Header.Set(upstream.HeaderAPIKey, c.apiKey)
	if correlationID != "" {
		req.Header.Set(upstream.HeaderCorrelationID, correlationID)
	}

	var resp listResponse
	if err := upstream.Call(ctx, c.http, upstream.APIAccounts, req, &resp); err != nil {
		return nil, err
	}

	if resp.Accounts == nil {
		return []Account{}, nil
	}
	for _, a := range resp.Accounts {
		if a.Kind == KindUnknown {
			c.logger.WarnContext(ctx, "unrecognised account variant",
				"correlation_id", correlationID,
				"raw", string(a.Raw),
			)
		}
	}
	return resp.Accounts, nil
}
