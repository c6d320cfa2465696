package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestEventLedgerFirstSeen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ledger := NewEventLedger(client, 24*time.Hour)
	ctx := context.Background()

	first, err := ledger.FirstSeen(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, first)

	// Same id again is a redelivery.
	first, err = ledger.FirstSeen(ctx, "evt_1")
	require.NoError(t, err)
	require.False(t, first)

	// Different ids are independent.
	first, err = ledger.FirstSeen(ctx, "evt_2")
	require.NoError(t, err)
	require.True(t, first)
}

func TestEventLedgerEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ledger := NewEventLedger(client, time.Hour)
	ctx := context.Background()

	_, err := ledger.FirstSeen(ctx, "evt_1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	// After the retention window the id reads as fresh again; the
	// provider stops retrying long before that.
	first, err := ledger.FirstSeen(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, first)
}
