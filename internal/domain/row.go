package domain

import "time"

// AgeBuckets counts requests by elapsed time since their action instant.
// Bucket edges are at 3, 6, 12 and 24 elapsed months (30.44-day months).
type AgeBuckets struct {
	Under3Mo int // [0, 3) months, also catches negative ages
	Mo3To6   int // [3, 6)
	Mo6To12  int // [6, 12)
	Mo12To24 int // [12, 24)
	Over24Mo int // [24, inf)
}

// Total returns the sum of all bucket counts.
func (b AgeBuckets) Total() int {
	return b.Under3Mo + b.Mo3To6 + b.Mo6To12 + b.Mo12To24 + b.Over24Mo
}

// AggregateRow is the fully computed statistics for one snapshot. One row per
// snapshot; rows across a replay form the time series. A row depends only on
// its own snapshot and the immediately preceding one, so a replay can be
// reconstructed from any injected previous state.
type AggregateRow struct {
	Timestamp time.Time // the snapshot's reference instant

	// Queue depth
	TotalRequests int
	Requests22    int
	Requests23    int
	Requests24    int

	// Churn against the previous snapshot
	AddedTotal   int
	Added22      int
	Added23      int
	Added24      int
	RemovedTotal int
	Removed22    int
	Removed23    int
	Removed24    int

	// Flexibility over the current snapshot
	FlexibleCount  int
	ExactCount     int
	AvgFlexibility float64

	// Revisions of surviving requests
	SizeChanges        int
	UpsizeChanges      int
	DownsizeChanges    int
	FlexibilityChanges int

	// Age distribution relative to the reference instant
	Ages          AgeBuckets
	AgesByClass   map[int]AgeBuckets // keyed by recognized MinCIDR class
	MeanAgeDays   float64
	MedianAgeDays float64
	MinAgeDays    float64
	MaxAgeDays    float64

	// Historical clearance rates (blocks per quarter)
	AvgCleared22 float64
	AvgCleared23 float64
	AvgCleared24 float64

	// Projected wait; +Inf when the clearance rate is zero
	Quarters22 float64
	Quarters23 float64
	Quarters24 float64
	Years22    float64
	Years23    float64
	Years24    float64
}
