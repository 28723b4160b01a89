package postgres

import (
	"context"
	"fmt"

	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/storage"
)

// SnapshotArchiveStore implements storage.SnapshotArchiveStore using
// PostgreSQL.
type SnapshotArchiveStore struct {
	pool *Pool
}

// NewSnapshotArchiveStore creates a new SnapshotArchiveStore.
func NewSnapshotArchiveStore(pool *Pool) *SnapshotArchiveStore {
	return &SnapshotArchiveStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotArchiveStore = (*SnapshotArchiveStore)(nil)

// Insert archives one payload. Returns ErrDuplicateKey if the ref exists.
func (s *SnapshotArchiveStore) Insert(ctx context.Context, snap *domain.ArchivedSnapshot) error {
	if snap == nil || snap.RefID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO snapshot_archive (ref_id, commit_time, payload)
		VALUES ($1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query, snap.RefID, snap.CommitTime, snap.Payload)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert archived snapshot: %w", err)
	}
	return nil
}

// GetByRefID retrieves one archived payload. Returns ErrNotFound if absent.
func (s *SnapshotArchiveStore) GetByRefID(ctx context.Context, refID string) (*domain.ArchivedSnapshot, error) {
	query := `
		SELECT ref_id, commit_time, payload
		FROM snapshot_archive
		WHERE ref_id = $1
	`

	snap := &domain.ArchivedSnapshot{}
	err := s.pool.QueryRow(ctx, query, refID).Scan(&snap.RefID, &snap.CommitTime, &snap.Payload)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get archived snapshot: %w", err)
	}
	return snap, nil
}

// List retrieves all archived snapshots, commit time ASC, ref id as
// tie-breaker.
func (s *SnapshotArchiveStore) List(ctx context.Context) ([]*domain.ArchivedSnapshot, error) {
	query := `
		SELECT ref_id, commit_time, payload
		FROM snapshot_archive
		ORDER BY commit_time ASC, ref_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list archived snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.ArchivedSnapshot
	for rows.Next() {
		snap := &domain.ArchivedSnapshot{}
		if err := rows.Scan(&snap.RefID, &snap.CommitTime, &snap.Payload); err != nil {
			return nil, fmt.Errorf("scan archived snapshot: %w", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived snapshots: %w", err)
	}
	return out, nil
}
