package accounts

import (
	"encoding/json"
)

// Kind tells which account variant the upstream sent.
type Kind string

const (
	KindInternational Kind = "INTERNATIONAL"
	KindNational      Kind = "NATIONAL"
	// KindUnknown is an entry that matched no known variant. It still counts
	// as an owned account.
	KindUnknown Kind = "UNKNOWN"
)

// Account is one entry of the accounts list. The upstream mixes international
// (iban) and national (number + bankCode) shapes in one array and is not
// consistent about field naming, so decoding classifies by shape and accepts
// both camelCase and snake_case keys.
type Account struct {
	Kind        Kind
	IBAN        string
	Number      string
	Prefix      string
	BankCode    string
	Currency    string
	ProductID   string
	ClosingDate *string
	Raw         json.RawMessage
}

type accountWire struct {
	IBAN             string  `json:"iban"`
	Number           string  `json:"number"`
	Prefix           string  `json:"prefix"`
	BankCode         string  `json:"bankCode"`
	BankCodeSnake    string  `json:"bank_code"`
	Currency         string  `json:"currency"`
	ProductID        string  `json:"productId"`
	ProductIDSnake   string  `json:"product_id"`
	ClosingDate      *string `json:"closingDate"`
	ClosingDateSnake *string `json:"closing_date"`
}

func (a *Account) UnmarshalJSON(b []byte) error {
	a.Raw = append(json.RawMessage(nil), b...)

	var w accountWire
	if err := json.Unmarshal(b, &w); err != nil {
		// Arrays, scalars and objects with mistyped fields still count.
		a.Kind = KindUnknown
		return nil
	}

	a.IBAN = w.IBAN
	a.Number = w.Number
	a.Prefix = w.Prefix
	a.BankCode = firstNonEmpty(w.BankCode, w.BankCodeSnake)
	a.Currency = w.Currency
	a.ProductID = firstNonEmpty(w.ProductID, w.ProductIDSnake)
	a.ClosingDate = w.ClosingDate
	if a.ClosingDate == nil {
		a.ClosingDate = w.ClosingDateSnake
	}

	switch {
	case w.IBAN != "":
		a.Kind = KindInternational
	case w.Number != "":
		a.Kind = KindNational
	default:
		a.Kind = KindUnknown
	}
	return nil
}

// Owner is the client summary the accounts upstream returns with the list.
type Owner struct {
	ClientID string `json:"clientId"`
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
}

type listRequest struct {
	ClientID string `json:"clientId"`
}

type listResponse struct {
	Client   *Owner    `json:"client"`
	Accounts []Account `json:"accounts"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
