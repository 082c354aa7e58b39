package ports

import "context"

// AccountsPort lists the accounts a client owns. Implementations return a
// non-nil slice on success.
type AccountsPort interface {
	ClientAccounts(ctx context.Context, clientID, correlationID string) ([]Account, error)
}

// ClientsPort fetches a client's profile.
type ClientsPort interface {
	ClientDetail(ctx context.Context, clientID, correlationID string) (ClientProfile, error)
}

// Account is the part of an upstream account the rule needs (port model).
type Account struct {
	Kind      string
	ProductID string
}

// ClientProfile is the part of the client profile the rule needs (port model).
// BirthDate is YYYY-MM-DD.
type ClientProfile struct {
	ClientID  string
	BirthDate string
}
