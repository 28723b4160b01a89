package domain

import "time"

// Snapshot is one point-in-time capture of the full waitlist.
// Immutable once built; the replayer holds at most two at a time.
type Snapshot struct {
	Requests []*Request

	// Reference is the snapshot's reference instant: the maximum ActionTime
	// present, or an externally supplied commit instant when the snapshot
	// came from version-control history. Zero for an empty snapshot with no
	// override.
	Reference time.Time
}

// Len returns the number of requests in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Requests)
}

// CountByClass counts requests per MaxCIDR class. The returned map contains
// an entry for every class observed, recognized or not.
func (s *Snapshot) CountByClass() map[int]int {
	counts := make(map[int]int)
	if s == nil {
		return counts
	}
	for _, r := range s.Requests {
		counts[r.MaxCIDR]++
	}
	return counts
}

// Index builds the identity-to-request mapping used by the differ.
// When two requests share an identity the later one in input order wins,
// matching the upstream data's own ambiguity.
func (s *Snapshot) Index() map[Identity]*Request {
	if s == nil {
		return map[Identity]*Request{}
	}
	idx := make(map[Identity]*Request, len(s.Requests))
	for _, r := range s.Requests {
		idx[r.Identity()] = r
	}
	return idx
}
