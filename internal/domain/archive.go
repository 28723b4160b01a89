package domain

import "time"

// ArchivedSnapshot is one raw historical snapshot payload retained by the
// optional archive sink. Archiving lets a replay be rerun without the
// original history source.
type ArchivedSnapshot struct {
	RefID      string    // revision identifier from the history provider
	CommitTime time.Time // the snapshot's reference instant
	Payload    []byte    // raw waitlist JSON as fetched
}
