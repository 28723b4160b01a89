// Package rates estimates historical per-quarter clearance rates from the
// ledger of resolved waitlist requests.
package rates

import (
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

// ClearanceRates computes the average number of blocks cleared per quarter
// for each size class, using only ledger entries resolved at or before the
// cutoff instant.
//
// The averaging denominator is the number of calendar quarters in the
// continuous span from the first to the last observed quarter in the
// filtered ledger, inclusive. Interior quarters with no entries count as
// zero and dilute the average; quarters outside the observed span do not.
// Classes absent from the filtered ledger are absent from the returned map,
// which readers treat as a rate of zero. An empty filtered ledger yields an
// empty map.
func ClearanceRates(ledger []domain.ClearanceEntry, cutoff time.Time) map[int]float64 {
	counts := make(map[int]int)
	first, last := 0, 0
	seen := false

	for _, e := range ledger {
		if e.Resolved.After(cutoff) {
			continue
		}
		q := quarterIndex(e.Resolved)
		if !seen || q < first {
			first = q
		}
		if !seen || q > last {
			last = q
		}
		seen = true
		counts[e.Class]++
	}

	rates := make(map[int]float64, len(counts))
	if !seen {
		return rates
	}

	quarters := last - first + 1
	for class, n := range counts {
		rates[class] = float64(n) / float64(quarters)
	}
	return rates
}

// Rate returns the clearance rate for a class, zero when absent.
func Rate(rates map[int]float64, class int) float64 {
	return rates[class]
}

// quarterIndex maps an instant to a monotonically increasing quarter number.
func quarterIndex(t time.Time) int {
	return t.Year()*4 + (int(t.Month())-1)/3
}
