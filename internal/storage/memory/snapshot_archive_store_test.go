package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/storage"
)

func archived(ref string, day int) *domain.ArchivedSnapshot {
	return &domain.ArchivedSnapshot{
		RefID:      ref,
		CommitTime: time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
		Payload:    []byte(`[]`),
	}
}

func TestSnapshotArchiveStore_InsertAndGet(t *testing.T) {
	store := NewSnapshotArchiveStore()
	ctx := context.Background()

	snap := archived("abc123", 1)
	if err := store.Insert(ctx, snap); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByRefID(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetByRefID failed: %v", err)
	}
	if !bytes.Equal(got.Payload, snap.Payload) {
		t.Errorf("payload mismatch: got %q", got.Payload)
	}
}

func TestSnapshotArchiveStore_Duplicate(t *testing.T) {
	store := NewSnapshotArchiveStore()
	ctx := context.Background()

	if err := store.Insert(ctx, archived("abc123", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := store.Insert(ctx, archived("abc123", 2))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestSnapshotArchiveStore_NotFound(t *testing.T) {
	store := NewSnapshotArchiveStore()
	_, err := store.GetByRefID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotArchiveStore_ListOrdered(t *testing.T) {
	store := NewSnapshotArchiveStore()
	ctx := context.Background()

	for _, s := range []*domain.ArchivedSnapshot{
		archived("c3", 3), archived("c1", 1), archived("c2", 2),
	} {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(list))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if list[i].RefID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, list[i].RefID)
		}
	}
}
