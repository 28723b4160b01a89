package history

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingPayload is returned by Stub for refs with no stored payload,
// modeling a tracked revision that no longer resolves.
var ErrMissingPayload = errors.New("no payload for ref")

// Stub is an in-memory Provider for tests and fixtures.
type Stub struct {
	Refs     []SnapshotRef
	Payloads map[string][]byte // keyed by ref ID; missing entries fail
}

var _ Provider = (*Stub)(nil)

// List returns the configured refs in order.
func (s *Stub) List(_ context.Context) ([]SnapshotRef, error) {
	return s.Refs, nil
}

// Payload returns the stored payload or ErrMissingPayload.
func (s *Stub) Payload(_ context.Context, ref SnapshotRef) ([]byte, error) {
	payload, ok := s.Payloads[ref.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPayload, ref.ID)
	}
	return payload, nil
}
