package accounts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eligibility/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientAccounts_SendsContractAndDecodesVariants(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotHeader http.Header
		gotBody   listRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"client": {"forename":"John","surname":"Doe","clientId":"c-1"},
			"accounts": [
				{"iban":"CZ3908000000000735147003","currency":"CZK","product_id":"SB0_22291","closing_date":null},
				{"number":"123456789","bankCode":"0800","currency":"CZK","productId":"KB1","closingDate":"2030-01-01"},
				{"something":"else"}
			]
		}`))
	}))
	defer srv.Close()

	client := New(srv.Client(), srv.URL+"/", "accounts-key", WithLogger(discardLogger()))
	accounts, err := client.ClientAccounts(context.Background(), "c-1", "corr-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/list", gotPath)
	assert.Equal(t, "c-1", gotHeader.Get("clientId"))
	assert.Equal(t, "accounts-key", gotHeader.Get("api-key"))
	assert.Equal(t, "corr-1", gotHeader.Get("correlation-id"))
	assert.Equal(t, "c-1", gotBody.ClientID)

	require.Len(t, accounts, 3)
	assert.Equal(t, KindInternational, accounts[0].Kind)
	assert.Equal(t, "SB0_22291", accounts[0].ProductID)
	assert.Nil(t, accounts[0].ClosingDate)

	assert.Equal(t, KindNational, accounts[1].Kind)
	assert.Equal(t, "0800", accounts[1].BankCode)
	assert.Equal(t, "KB1", accounts[1].ProductID)
	require.NotNil(t, accounts[1].ClosingDate)
	assert.Equal(t, "2030-01-01", *accounts[1].ClosingDate)

	assert.Equal(t, KindUnknown, accounts[2].Kind)
}

func TestClientAccounts_MissingListIsEmptyNotNil(t *testing.T) {
	for _, body := range []string{`{"client":{}}`, `{"accounts":null}`, ``} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		accounts, err := New(srv.Client(), srv.URL, "k").ClientAccounts(context.Background(), "c-1", "")
		srv.Close()

		require.NoError(t, err, "body %q", body)
		assert.NotNil(t, accounts)
		assert.Empty(t, accounts)
	}
}

func TestClientAccounts_OmitsEmptyCorrelationHeader(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Correlation-Id"]
		_, _ = w.Write([]byte(`{"accounts":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.Client(), srv.URL, "k").ClientAccounts(context.Background(), "c-1", "")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestClientAccounts_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.Client(), srv.URL, "k").ClientAccounts(context.Background(), "c-1", "corr")

	var uerr *upstream.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, upstream.APIAccounts, uerr.API)
	assert.Equal(t, http.StatusNotFound, uerr.StatusCode)
	assert.Equal(t, "Accounts server error when calling Accounts API: 404 NOT_FOUND", uerr.Error())
}

func TestClientAccounts_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(http.DefaultClient, url, "k").ClientAccounts(context.Background(), "c-1", "corr")

	var uerr *upstream.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 0, uerr.StatusCode)
	assert.Contains(t, uerr.Error(), "Internal error when calling Accounts API: ")
}

func TestAccount_NonObjectEntryCountsAsUnknown(t *testing.T) {
	var accounts []Account
	require.NoError(t, json.Unmarshal([]byte(`[42, "x", {"iban": 7}]`), &accounts))
	require.Len(t, accounts, 3)
	for _, a := range accounts {
		assert.Equal(t, KindUnknown, a.Kind)
	}
}
