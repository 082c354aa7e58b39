package adapters

import (
	"context"

	"eligibility/internal/decision/ports"
	"eligibility/internal/upstream/accounts"
)

// AccountsAdapter implements ports.AccountsPort on the HTTP accounts client.
type AccountsAdapter struct {
	client *accounts.Client
}

func NewAccountsAdapter(client *accounts.Client) ports.AccountsPort {
	return &AccountsAdapter{client: client}
}

func (a *AccountsAdapter) ClientAccounts(ctx context.Context, clientID, correlationID string) ([]ports.Account, error) {
	list, err := a.client.ClientAccounts(ctx, clientID, correlationID)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Account, 0, len(list))
	for _, acc := range list {
		out = append(out, ports.Account{Kind: string(acc.Kind), ProductID: acc.ProductID})
	}
	return out, nil
}
