// Package diffing computes churn between two consecutive waitlist snapshots.
package diffing

import "ipv4-waitlist-lab/internal/domain"

// ClassCounter counts requests per size class.
type ClassCounter map[int]int

// Total returns the sum of all class counts.
func (c ClassCounter) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Get returns the count for a class, zero when absent.
func (c ClassCounter) Get(class int) int {
	return c[class]
}

// FlexibilityStats describes how flexible the current snapshot's requests are.
// Requests with no lower bound are excluded from all three fields.
type FlexibilityStats struct {
	FlexibleCount  int     // MinCIDR != MaxCIDR
	ExactCount     int     // MinCIDR == MaxCIDR
	AvgFlexibility float64 // mean |MaxCIDR - MinCIDR| over requests with both bounds
}

// SizeChangeStats counts revisions among requests present in both snapshots.
type SizeChangeStats struct {
	SizeChanges        int // any (min, max) difference
	UpsizeChanges      int // max strictly decreased: the request wants more space
	DownsizeChanges    int // max strictly increased
	FlexibilityChanges int // flipped between exact and flexible
}

// Result is the outcome of diffing a snapshot against its predecessor.
type Result struct {
	Added        ClassCounter
	Removed      ClassCounter
	AddedTotal   int
	RemovedTotal int
	Flexibility  FlexibilityStats
	SizeChanges  SizeChangeStats
}

// Diff compares the current snapshot against the previous one.
//
// Identity is the action timestamp. A nil or empty previous snapshot is the
// first-observation case: every current request counts as added, nothing is
// removed, and all size-change stats are zero. Diff is a pure function of the
// two snapshots; replay correctness depends on that.
func Diff(current, previous *domain.Snapshot) *Result {
	curIdx := current.Index()
	prevIdx := previous.Index()

	res := &Result{
		Added:   make(ClassCounter),
		Removed: make(ClassCounter),
	}

	for id, req := range curIdx {
		if _, exists := prevIdx[id]; !exists {
			res.Added[req.MaxCIDR]++
		}
	}
	for id, req := range prevIdx {
		if _, exists := curIdx[id]; !exists {
			res.Removed[req.MaxCIDR]++
		}
	}
	res.AddedTotal = res.Added.Total()
	res.RemovedTotal = res.Removed.Total()

	// Requests surviving from the previous snapshot: compare their bounds.
	for id, cur := range curIdx {
		prev, exists := prevIdx[id]
		if !exists {
			continue
		}
		if !equalBounds(cur, prev) {
			res.SizeChanges.SizeChanges++
		}
		if cur.MaxCIDR < prev.MaxCIDR {
			res.SizeChanges.UpsizeChanges++
		} else if cur.MaxCIDR > prev.MaxCIDR {
			res.SizeChanges.DownsizeChanges++
		}
		if cur.IsExact() != prev.IsExact() {
			res.SizeChanges.FlexibilityChanges++
		}
	}

	res.Flexibility = computeFlexibility(current)
	return res
}

// equalBounds reports whether two revisions carry the same (min, max) pair.
func equalBounds(a, b *domain.Request) bool {
	if a.MaxCIDR != b.MaxCIDR {
		return false
	}
	if (a.MinCIDR == nil) != (b.MinCIDR == nil) {
		return false
	}
	if a.MinCIDR != nil && *a.MinCIDR != *b.MinCIDR {
		return false
	}
	return true
}

// computeFlexibility classifies the current snapshot's requests and averages
// the flexibility value over those carrying both bounds.
func computeFlexibility(snap *domain.Snapshot) FlexibilityStats {
	var stats FlexibilityStats
	if snap == nil {
		return stats
	}

	sum := 0
	counted := 0
	for _, r := range snap.Requests {
		flex, ok := r.Flexibility()
		if !ok {
			continue
		}
		if flex == 0 {
			stats.ExactCount++
		} else {
			stats.FlexibleCount++
		}
		sum += flex
		counted++
	}
	if counted > 0 {
		stats.AvgFlexibility = float64(sum) / float64(counted)
	}
	return stats
}
