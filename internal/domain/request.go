package domain

import "time"

// Recognized CIDR size classes on the waitlist. A smaller class number
// means a larger address block: a /22 holds four times the space of a /24.
const (
	Class22 = 22
	Class23 = 23
	Class24 = 24
)

// Classes lists the recognized size classes in block-size order.
var Classes = []int{Class22, Class23, Class24}

// IsRecognizedClass reports whether c is one of the waitlist size classes.
func IsRecognizedClass(c int) bool {
	return c == Class22 || c == Class23 || c == Class24
}

// Identity is the identity of a request across snapshots.
//
// The upstream data carries no stable request ID, so the action timestamp
// doubles as the identity. Two requests actioned at the exact same instant
// would collide; the explicit type exists so a stronger identifier can be
// substituted later without touching the diffing algorithm.
type Identity string

// IdentityOf derives the cross-snapshot identity for an action instant.
func IdentityOf(t time.Time) Identity {
	return Identity(t.UTC().Format(time.RFC3339Nano))
}

// Request is one canonical waitlist entry.
// Built once by the normalizer and never mutated afterwards.
type Request struct {
	ActionTime time.Time // creation/action instant, doubles as identity
	MinCIDR    *int      // optional lower bound; nil when the source omitted it
	MaxCIDR    int       // required size classification
}

// Identity returns the request's cross-snapshot identity.
func (r *Request) Identity() Identity {
	return IdentityOf(r.ActionTime)
}

// IsExact reports whether the request asks for exactly one block size.
// A request with no lower bound is neither exact nor flexible.
func (r *Request) IsExact() bool {
	return r.MinCIDR != nil && *r.MinCIDR == r.MaxCIDR
}

// IsFlexible reports whether the request accepts a range of block sizes.
func (r *Request) IsFlexible() bool {
	return r.MinCIDR != nil && *r.MinCIDR != r.MaxCIDR
}

// Flexibility returns |MaxCIDR - MinCIDR| and whether both bounds are present.
func (r *Request) Flexibility() (int, bool) {
	if r.MinCIDR == nil {
		return 0, false
	}
	d := r.MaxCIDR - *r.MinCIDR
	if d < 0 {
		d = -d
	}
	return d, true
}
