// Package memory provides in-memory store implementations for tests and
// fixture-driven runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/storage"
)

// SnapshotArchiveStore is an in-memory implementation of
// storage.SnapshotArchiveStore.
type SnapshotArchiveStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ArchivedSnapshot // keyed by ref id
}

// NewSnapshotArchiveStore creates a new in-memory snapshot archive.
func NewSnapshotArchiveStore() *SnapshotArchiveStore {
	return &SnapshotArchiveStore{
		data: make(map[string]*domain.ArchivedSnapshot),
	}
}

// Compile-time interface check.
var _ storage.SnapshotArchiveStore = (*SnapshotArchiveStore)(nil)

// Insert archives one payload. Returns ErrDuplicateKey if the ref exists.
func (s *SnapshotArchiveStore) Insert(_ context.Context, snap *domain.ArchivedSnapshot) error {
	if snap == nil || snap.RefID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.RefID]; exists {
		return storage.ErrDuplicateKey
	}

	stored := *snap
	stored.Payload = append([]byte(nil), snap.Payload...)
	s.data[snap.RefID] = &stored
	return nil
}

// GetByRefID retrieves one archived payload.
func (s *SnapshotArchiveStore) GetByRefID(_ context.Context, refID string) (*domain.ArchivedSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[refID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	out := *snap
	out.Payload = append([]byte(nil), snap.Payload...)
	return &out, nil
}

// List retrieves all archived snapshots ordered by commit time ASC,
// ref id as tie-breaker.
func (s *SnapshotArchiveStore) List(_ context.Context) ([]*domain.ArchivedSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ArchivedSnapshot, 0, len(s.data))
	for _, snap := range s.data {
		c := *snap
		c.Payload = append([]byte(nil), snap.Payload...)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CommitTime.Equal(out[j].CommitTime) {
			return out[i].CommitTime.Before(out[j].CommitTime)
		}
		return out[i].RefID < out[j].RefID
	})
	return out, nil
}
