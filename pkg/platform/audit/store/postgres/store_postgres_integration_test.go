//go:build integration

package postgres_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/platform/audit/store/postgres"
	"eligibility/pkg/testutil/containers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = postgres.New(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_logs"))
}

func (s *PostgresStoreSuite) TestRoundTripPreservesNullableFields() {
	ctx := context.Background()
	createdAt := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	rec := audit.NewBuilder(uuid.NewString(), audit.APIClientsServer).
		Request("GET", "http://clients/42", `[api-key:"***"]`, nil).
		CorrelationID("corr-1").
		Failure("dial tcp: connection refused", "*net.OpError").
		Build()
	rec.CreatedAt = createdAt
	s.Require().NoError(s.store.Append(ctx, rec))

	got, err := s.store.ListByCorrelationID(ctx, "corr-1")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Nil(got[0].ResponseStatus)
	s.Nil(got[0].RequestBody)
	s.Nil(got[0].ResponseBody)
	s.False(got[0].Success)
	s.Equal("*net.OpError", *got[0].ExceptionName)
	s.Equal(audit.APIClientsServer, got[0].APIName)
	s.True(createdAt.Equal(got[0].CreatedAt))
}

func (s *PostgresStoreSuite) TestListByRequestIDs() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	for _, id := range ids {
		rec := audit.NewBuilder(id, audit.APIApplicationServer).Response(200, "[]", []byte("{}")).Build()
		s.Require().NoError(s.store.Append(ctx, rec))
	}

	got, err := s.store.ListByRequestIDs(ctx, ids[:2])
	s.Require().NoError(err)
	s.Len(got, 2)

	empty, err := s.store.ListByRequestIDs(ctx, nil)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *PostgresStoreSuite) TestListFailedAndWindow() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	ok := audit.NewBuilder("ok", audit.APIAccountsServer).Response(200, "[]", nil).Build()
	ok.CreatedAt = base
	bad := audit.NewBuilder("bad", audit.APIAccountsServer).Response(500, "[]", nil).Build()
	bad.CreatedAt = base.Add(time.Minute)
	late := audit.NewBuilder("late", audit.APIAccountsServer).Response(200, "[]", nil).Build()
	late.CreatedAt = base.Add(3 * time.Hour)

	for _, r := range []audit.Record{ok, bad, late} {
		s.Require().NoError(s.store.Append(ctx, r))
	}

	failed, err := s.store.ListFailed(ctx)
	s.Require().NoError(err)
	s.Require().Len(failed, 1)
	s.Equal("bad", failed[0].RequestID)
	s.Equal(500, *failed[0].ResponseStatus)

	window, err := s.store.ListByAPINameBetween(ctx, audit.APIAccountsServer, base, base.Add(time.Hour))
	s.Require().NoError(err)
	s.Len(window, 2)
}

func (s *PostgresStoreSuite) TestStoresTruncatedBodies() {
	ctx := context.Background()
	body := strings.Repeat("z", audit.MaxTextLength+1)
	rec := audit.NewBuilder("big", audit.APIApplicationServer).
		Response(200, "[]", []byte(body)).
		Build().Truncated()
	s.Require().NoError(s.store.Append(ctx, rec))

	got, err := s.store.ListByRequestIDs(ctx, []string{"big"})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.True(strings.HasSuffix(*got[0].ResponseBody, audit.TruncationMarker))
}

func (s *PostgresStoreSuite) TestConcurrentAppends() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := audit.NewBuilder(uuid.NewString(), audit.APIApplicationServer).
				CorrelationID("burst").
				Response(200, "[]", nil).
				Build()
			s.NoError(s.store.Append(ctx, rec))
		}()
	}
	wg.Wait()

	got, err := s.store.ListByCorrelationID(ctx, "burst")
	s.Require().NoError(err)
	s.Len(got, goroutines)
}
