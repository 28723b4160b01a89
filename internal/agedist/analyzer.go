// Package agedist buckets waitlist requests by elapsed time since their
// action instant, relative to an arbitrary reference instant.
package agedist

import (
	"sort"
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

// DaysPerMonth is the fixed month length used for bucket thresholds.
const DaysPerMonth = 30.44

// Result holds the age distribution for one snapshot.
type Result struct {
	Buckets domain.AgeBuckets

	// ByClass breaks the buckets down by MinCIDR for recognized classes.
	// Requests with an unrecognized or absent MinCIDR appear only in the
	// overall buckets.
	ByClass map[int]domain.AgeBuckets

	// Summary statistics over the raw age-in-days list.
	MeanDays   float64
	MedianDays float64
	MinDays    float64
	MaxDays    float64

	// Analyzed counts the requests with a usable action instant.
	Analyzed int
}

// Analyze computes the age distribution of a snapshot relative to reference.
//
// Age may be negative when a request was actioned after the reference
// instant; such requests land in the youngest bucket. Requests with a zero
// action instant are skipped. An empty snapshot yields an all-zero result.
func Analyze(snap *domain.Snapshot, reference time.Time) *Result {
	res := &Result{
		ByClass: make(map[int]domain.AgeBuckets),
	}
	if snap == nil {
		return res
	}

	ages := make([]float64, 0, len(snap.Requests))
	for _, r := range snap.Requests {
		if r.ActionTime.IsZero() {
			continue
		}
		days := reference.Sub(r.ActionTime).Hours() / 24
		ages = append(ages, days)

		addToBucket(&res.Buckets, days)
		if r.MinCIDR != nil && domain.IsRecognizedClass(*r.MinCIDR) {
			b := res.ByClass[*r.MinCIDR]
			addToBucket(&b, days)
			res.ByClass[*r.MinCIDR] = b
		}
	}

	res.Analyzed = len(ages)
	if len(ages) == 0 {
		return res
	}

	sorted := make([]float64, len(ages))
	copy(sorted, ages)
	sort.Float64s(sorted)

	res.MeanDays = mean(ages)
	res.MedianDays = sorted[len(sorted)/2] // lower median for even lengths
	res.MinDays = sorted[0]
	res.MaxDays = sorted[len(sorted)-1]
	return res
}

// addToBucket increments exactly one bucket for the given age.
func addToBucket(b *domain.AgeBuckets, days float64) {
	months := days / DaysPerMonth
	switch {
	case months < 3:
		b.Under3Mo++
	case months < 6:
		b.Mo3To6++
	case months < 12:
		b.Mo6To12++
	case months < 24:
		b.Mo12To24++
	default:
		b.Over24Mo++
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
