package adapters

import (
	"context"

	"eligibility/internal/decision/ports"
	"eligibility/internal/upstream/clients"
)

// ClientsAdapter implements ports.ClientsPort on the HTTP clients client.
type ClientsAdapter struct {
	client *clients.Client
}

func NewClientsAdapter(client *clients.Client) ports.ClientsPort {
	return &ClientsAdapter{client: client}
}

func (a *ClientsAdapter) ClientDetail(ctx context.Context, clientID, correlationID string) (ports.ClientProfile, error) {
	detail, err := a.client.ClientDetail(ctx, clientID, correlationID)
	if err != nil {
		return ports.ClientProfile{}, err
	}
	return ports.ClientProfile{ClientID: detail.ClientID, BirthDate: detail.BirthDate}, nil
}
