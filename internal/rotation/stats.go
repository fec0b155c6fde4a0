package rotation

import (
	"math"
	"sort"
)

// Fairness summarises how evenly playing time is spread.
type Fairness struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	Min    int
	Max    int
	Spread int // Max - Min
}

// Fairness reports play totals over both games for the active players.
func (s *State) Fairness() Fairness {
	var totals []int
	for _, slot := range s.ActiveIndices() {
		totals = append(totals, s.PlayerTotal(slot))
	}
	return calcFairness(totals)
}

// calcFairness computes mean/variance/median/range for integer samples.
func calcFairness(xs []int) Fairness {
	n := len(xs)
	if n == 0 {
		return Fairness{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	var median float64
	if n%2 == 1 {
		median = float64(cp[n/2])
	} else {
		median = float64(cp[n/2-1]+cp[n/2]) / 2
	}

	return Fairness{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    median,
		Min:    cp[0],
		Max:    cp[n-1],
		Spread: cp[n-1] - cp[0],
	}
}
