package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eligibility/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientID = "1234-56-78-90.12.34.567890"

func TestClientDetail_SendsContractAndDecodes(t *testing.T) {
	var (
		gotPath   string
		gotHeader http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"clientId": "1234-56-78-90.12.34.567890",
			"forename": "Jana",
			"surname": "Nováková",
			"birthDate": "1990-05-17",
			"gender": "F",
			"pep": false,
			"clientVerificationLevel": "FULL",
			"primaryEmail": "jana@example.com",
			"primaryPhone": "+420123456789",
			"address": {"street": "Dlouhá 1", "city": "Praha", "zipCode": "11000", "country": "CZ"},
			"nationality": "CZ"
		}`))
	}))
	defer srv.Close()

	detail, err := New(srv.Client(), srv.URL, "clients-key").ClientDetail(context.Background(), clientID, "corr-1")
	require.NoError(t, err)

	assert.Equal(t, "/"+clientID, gotPath)
	assert.Equal(t, "clients-key", gotHeader.Get("api-key"))
	assert.Equal(t, "corr-1", gotHeader.Get("correlation-id"))

	assert.Equal(t, "1990-05-17", detail.BirthDate)
	assert.Equal(t, "Nováková", detail.Surname)
	assert.Equal(t, "FULL", detail.ClientVerificationLevel)
	require.NotNil(t, detail.Address)
	assert.Equal(t, "Praha", detail.Address.City)
}

func TestClientDetail_ClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad id"}`))
	}))
	defer srv.Close()

	_, err := New(srv.Client(), srv.URL, "k").ClientDetail(context.Background(), clientID, "")

	var uerr *upstream.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Clients server error when calling Clients API: 400 BAD_REQUEST", uerr.Error())
	assert.Equal(t, `{"error":"bad id"}`, uerr.Body)
}

func TestClientDetail_ServerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.Client(), srv.URL, "k").ClientDetail(context.Background(), clientID, "")

	var uerr *upstream.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Internal error when calling Clients API: 500 INTERNAL_SERVER_ERROR", uerr.Error())
}
