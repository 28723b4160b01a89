// Package projection estimates remaining wait from queue depth and
// historical clearance rates.
package projection

import (
	"math"

	"ipv4-waitlist-lab/internal/domain"
)

// Projection is the estimated wait for one size class.
// Both fields are +Inf when the clearance rate is zero.
type Projection struct {
	Quarters float64
	Years    float64
}

// Project estimates the wait for every recognized size class.
//
// A partial quarter still costs a full quarter, so quarters is always
// rounded up. A zero rate means the queue never drains: +Inf, never a
// division error.
func Project(depthByClass map[int]int, ratesByClass map[int]float64) map[int]Projection {
	out := make(map[int]Projection, len(domain.Classes))
	for _, class := range domain.Classes {
		depth := depthByClass[class]
		rate := ratesByClass[class]

		var quarters float64
		if rate > 0 {
			quarters = math.Ceil(float64(depth) / rate)
		} else {
			quarters = math.Inf(1)
		}
		out[class] = Projection{
			Quarters: quarters,
			Years:    quarters / 4,
		}
	}
	return out
}
