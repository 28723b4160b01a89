// Package storage defines the optional archive sinks behind the replay CLI.
// The core algorithms never depend on these; rows and payloads flow in one
// direction, from a replay into a store.
package storage

import (
	"context"
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

// SnapshotArchiveStore retains raw historical snapshot payloads.
type SnapshotArchiveStore interface {
	// Insert archives one payload. Returns ErrDuplicateKey if the ref
	// already exists.
	Insert(ctx context.Context, s *domain.ArchivedSnapshot) error

	// GetByRefID retrieves one archived payload. Returns ErrNotFound if it
	// does not exist.
	GetByRefID(ctx context.Context, refID string) (*domain.ArchivedSnapshot, error)

	// List retrieves all archived snapshots, ordered by commit time ASC.
	List(ctx context.Context) ([]*domain.ArchivedSnapshot, error)
}

// TimeseriesRowStore retains computed aggregate rows, one per snapshot.
type TimeseriesRowStore interface {
	// Insert adds one row. Returns ErrDuplicateKey if a row with the same
	// timestamp exists.
	Insert(ctx context.Context, row *domain.AggregateRow) error

	// InsertBulk adds multiple rows atomically. Fails the entire batch on
	// any duplicate.
	InsertBulk(ctx context.Context, rows []*domain.AggregateRow) error

	// GetByTimeRange retrieves rows with timestamps in [start, end]
	// (inclusive), ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.AggregateRow, error)

	// GetAll retrieves every row, ordered by timestamp ASC.
	GetAll(ctx context.Context) ([]*domain.AggregateRow, error)
}
