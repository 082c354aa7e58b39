// Package clients calls the Clients upstream for a client's profile.
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"eligibility/internal/upstream"
)

// Address is the registered address of a client.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Detail is the client profile. BirthDate is an ISO date (YYYY-MM-DD),
// validated by the caller.
type Detail struct {
	ClientID                string   `json:"clientId"`
	Forename                string   `json:"forename"`
	Surname                 string   `json:"surname"`
	BirthDate               string   `json:"birthDate"`
	Gender                  string   `json:"gender"`
	PEP                     bool     `json:"pep"`
	ClientVerificationLevel string   `json:"clientVerificationLevel"`
	PrimaryEmail            string   `json:"primaryEmail"`
	PrimaryPhone            string   `json:"primaryPhone"`
	Address                 *Address `json:"address"`
	Nationality             string   `json:"nationality"`
}

// Client fetches client profiles.
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

// ClientDetail calls GET {base}/{clientId}.
func (c *Client) ClientDetail(ctx context.Context, clientID, correlationID string) (Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstream.JoinURL(c.baseURL, url.PathEscape(clientID)), nil)
	if err != nil {
		return Detail{}, upstream.InternalError(upstream.APIClients, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set(upstream.HeaderAPIKey, c.apiKey)
	if correlationID != "" {
		req.Header.Set(upstream.HeaderCorrelationID, correlationID)
	}

	var detail Detail
	if err := upstream.Call(ctx, c.http, upstream.APIClients, req, &detail); err != nil {
		return Detail{}, err
	}
	c.logger.DebugContext(ctx, "client detail fetched",
		"correlation_id", correlationID,
		"verification_level", detail.ClientVerificationLevel,
	)
	return detail, nil
}
