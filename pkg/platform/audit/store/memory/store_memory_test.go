package memory

import (
	"context"
	"testing"
	"time"

	audit "eligibility/pkg/platform/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_Queries(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	ok := audit.NewBuilder("req-1", audit.APIAccountsServer).
		CorrelationID("corr-1").
		Response(200, "[]", nil).
		Build()
	ok.CreatedAt = base

	failed := audit.NewBuilder("req-2", audit.APIClientsServer).
		CorrelationID("corr-1").
		Failure("dial tcp: refused", "*net.OpError").
		Build()
	failed.CreatedAt = base.Add(time.Minute)

	other := audit.NewBuilder("req-3", audit.APIAccountsServer).
		Response(503, "[]", nil).
		Build()
	other.CreatedAt = base.Add(2 * time.Hour)

	for _, r := range []audit.Record{ok, failed, other} {
		require.NoError(t, store.Append(ctx, r))
	}

	byCorr, err := store.ListByCorrelationID(ctx, "corr-1")
	require.NoError(t, err)
	assert.Len(t, byCorr, 2)

	byReq, err := store.ListByRequestIDs(ctx, []string{"req-1", "req-3"})
	require.NoError(t, err)
	require.Len(t, byReq, 2)
	assert.Equal(t, "req-1", byReq[0].RequestID)
	assert.Equal(t, "req-3", byReq[1].RequestID)

	failedOnly, err := store.ListFailed(ctx)
	require.NoError(t, err)
	require.Len(t, failedOnly, 2)
	assert.Equal(t, "req-2", failedOnly[0].RequestID)

	window, err := store.ListByAPINameBetween(ctx, audit.APIAccountsServer, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "req-1", window[0].RequestID)
}

func TestInMemoryStore_EmptyResultIsNotNil(t *testing.T) {
	got, err := NewInMemoryStore().ListFailed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
