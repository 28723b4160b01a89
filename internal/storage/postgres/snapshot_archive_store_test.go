package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/storage"
	pgstore "ipv4-waitlist-lab/internal/storage/postgres"
)

func TestSnapshotArchiveStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewSnapshotArchiveStore(pool)
	ctx := context.Background()

	snap := &domain.ArchivedSnapshot{
		RefID:      "3f2c1a",
		CommitTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Payload:    []byte(`[{"waitListActionDate":"2024-01-01T00:00:00Z","maximumCidr":24}]`),
	}
	require.NoError(t, store.Insert(ctx, snap))

	got, err := store.GetByRefID(ctx, "3f2c1a")
	require.NoError(t, err)
	require.Equal(t, snap.Payload, got.Payload)
	require.True(t, snap.CommitTime.Equal(got.CommitTime))
}

func TestSnapshotArchiveStore_DuplicateRef(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewSnapshotArchiveStore(pool)
	ctx := context.Background()

	snap := &domain.ArchivedSnapshot{
		RefID:      "3f2c1a",
		CommitTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Payload:    []byte(`[]`),
	}
	require.NoError(t, store.Insert(ctx, snap))
	require.ErrorIs(t, store.Insert(ctx, snap), storage.ErrDuplicateKey)
}

func TestSnapshotArchiveStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewSnapshotArchiveStore(pool)
	_, err := store.GetByRefID(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSnapshotArchiveStore_ListOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewSnapshotArchiveStore(pool)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, ref := range []string{"c2", "c0", "c1"} {
		require.NoError(t, store.Insert(ctx, &domain.ArchivedSnapshot{
			RefID:      ref,
			CommitTime: base.AddDate(0, 0, (i*7)%3), // deliberately unordered
			Payload:    []byte(`[]`),
		}))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		require.False(t, list[i].CommitTime.Before(list[i-1].CommitTime),
			"list must be ordered by commit time")
	}
}
