// Package history enumerates historical revisions of a tracked snapshot
// artifact. It is an external collaborator of the replay core: the core only
// sees ordered refs with commit instants and opaque payloads.
package history

import (
	"context"
	"time"
)

// SnapshotRef identifies one historical revision of the tracked artifact.
type SnapshotRef struct {
	ID         string    // provider-specific revision identifier
	CommitTime time.Time // authoritative instant for the snapshot
}

// Provider enumerates and retrieves historical snapshot payloads.
type Provider interface {
	// List returns all revisions of the tracked artifact, oldest first.
	List(ctx context.Context) ([]SnapshotRef, error)

	// Payload returns the raw artifact contents at the given revision.
	Payload(ctx context.Context, ref SnapshotRef) ([]byte, error)
}
