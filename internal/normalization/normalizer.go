// Package normalization turns raw waitlist payloads into canonical snapshots.
//
// Two key conventions exist in the wild: the live REST endpoint emits
// camelCase keys (waitListActionDate, maximumCidr) while historical exports
// produced by the HTML extractor use all-lowercase keys (waitlistactiondate,
// maximumcidr). Both are accepted, and numeric fields may arrive as JSON
// numbers or digit strings.
package normalization

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

// ErrParse indicates the top-level payload could not be decoded at all.
// Individual malformed records never produce this; they are dropped silently.
var ErrParse = errors.New("unparseable waitlist payload")

// Key conventions checked in order for each field.
var (
	actionDateKeys = []string{"waitListActionDate", "waitlistactiondate"}
	maxCidrKeys    = []string{"maximumCidr", "maximumcidr"}
	minCidrKeys    = []string{"minimumCidr", "minimumcidr"}
)

// Normalize decodes a raw waitlist JSON array into a canonical snapshot.
//
// A record is retained only if it carries a parseable action timestamp and a
// usable maximum CIDR under either key convention; anything else is dropped
// without error. The snapshot's Reference is the maximum action timestamp
// seen (zero time when no record survives).
func Normalize(payload []byte) (*domain.Snapshot, error) {
	var raw []map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return NormalizeRecords(raw), nil
}

// NormalizeRecords builds a snapshot from already-decoded raw records.
func NormalizeRecords(raw []map[string]any) *domain.Snapshot {
	snap := &domain.Snapshot{
		Requests: make([]*domain.Request, 0, len(raw)),
	}

	for _, rec := range raw {
		actionTime, ok := lookupTime(rec, actionDateKeys)
		if !ok {
			continue
		}
		maxCidr, ok := lookupInt(rec, maxCidrKeys)
		if !ok {
			continue
		}

		req := &domain.Request{
			ActionTime: actionTime,
			MaxCIDR:    maxCidr,
		}
		// Presence means "decoded to a non-null value"; a zero lower bound
		// is kept rather than treated as absent.
		if minCidr, ok := lookupInt(rec, minCidrKeys); ok {
			req.MinCIDR = &minCidr
		}

		snap.Requests = append(snap.Requests, req)
		if actionTime.After(snap.Reference) {
			snap.Reference = actionTime
		}
	}

	return snap
}

// lookupTime finds the first key that decodes to an ISO-8601 instant.
func lookupTime(rec map[string]any, keys []string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// lookupInt finds the first key that coerces to an integer.
// JSON numbers decode as float64; historical exports carry digit strings.
func lookupInt(rec map[string]any, keys []string) (int, bool) {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n), true
		case string:
			if i, err := strconv.Atoi(n); err == nil {
				return i, true
			}
		case json.Number:
			if i, err := strconv.Atoi(n.String()); err == nil {
				return i, true
			}
		}
	}
	return 0, false
}
