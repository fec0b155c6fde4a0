// Package sim replays a session many times under random availability changes
// to measure how fair the replanned rotations stay.
package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/xtding233/hoops-rotation/internal/rotation"
)

// Goal selects what one trial records.
type Goal string

const (
	// Spread of session totals among players who were never unavailable.
	GoalSpread Goal = "spread"
	// Periods whose headcount ended up different from four.
	GoalShortPeriods Goal = "short_periods"
	// Availability changes made during the trial.
	GoalToggles Goal = "toggles"
)

// Params describes one simulated session.
type Params struct {
	Players    int
	UseCurated bool
	// Chance that an available player drops out at a period boundary. Drops
	// never take the roster below rotation.MinActive.
	DropProb float64
	// Chance that an unavailable player comes back at a period boundary.
	ReturnProb float64
}

// Stats summarizes trial results.
type Stats struct {
	Mean    float64 `json:"mean"`
	Var     float64 `json:"var"`
	StdDev  float64 `json:"stdDev"`
	P50     float64 `json:"p50"`
	P90     float64 `json:"p90"`
	P99     float64 `json:"p99"`
	Samples []int   `json:"-"`
}

func (p Params) validate() error {
	if p.Players < rotation.MinActive {
		return fmt.Errorf("players must be at least %d, got %d", rotation.MinActive, p.Players)
	}
	if err := validateProb(p.DropProb); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	if err := validateProb(p.ReturnProb); err != nil {
		return fmt.Errorf("return: %w", err)
	}
	return nil
}

func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
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
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

type trial struct {
	state   *rotation.State
	left    []bool // ever unavailable
	toggles int
}

// shuffleAvailability applies this boundary's drops and returns, then
// replans when anything changed.
func (t *trial) shuffleAvailability(p Params, rng RandomSource) error {
	changed := false
	active := len(t.state.ActiveIndices())
	for slot, pl := range t.state.Players {
		var flip bool
		if pl.Active {
			flip = active > rotation.MinActive && chance(p.DropProb, rng)
		} else {
			flip = chance(p.ReturnProb, rng)
		}
		if !flip {
			continue
		}
		now, err := t.state.Toggle(slot)
		if err != nil {
			return err
		}
		if now {
			active++
		} else {
			active--
			t.left[slot] = true
		}
		t.toggles++
		changed = true
	}
	if !changed {
		return nil
	}
	return rotation.Regenerate(t.state)
}

func (t *trial) metric(goal Goal) int {
	switch goal {
	case GoalShortPeriods:
		short := 0
		for g := 0; g < rotation.NumGames; g++ {
			for period := 0; period < rotation.NumPeriods; period++ {
				if t.state.PeriodCount(g, period) != rotation.OnCourt {
					short++
				}
			}
		}
		return short
	case GoalToggles:
		return t.toggles
	default:
		lo, hi, seen := 0, 0, false
		for slot := range t.state.Players {
			if t.left[slot] {
				continue
			}
			total := t.state.PlayerTotal(slot)
			if !seen || total < lo {
				lo = total
			}
			if !seen || total > hi {
				hi = total
			}
			seen = true
		}
		return hi - lo
	}
}

func simulateOne(p Params, goal Goal, rng RandomSource) (int, error) {
	names := make([]string, p.Players)
	for i := range names {
		names[i] = rotation.DefaultName(i)
	}
	s, err := rotation.NewState(names, p.UseCurated)
	if err != nil {
		return 0, err
	}
	t := &trial{state: s, left: make([]bool, p.Players)}
	for {
		if err := t.shuffleAvailability(p, rng); err != nil {
			if errors.Is(err, rotation.ErrNotEnoughActive) {
				return 0, fmt.Errorf("simulation left too few players: %w", err)
			}
			return 0, err
		}
		if !s.Advance(1) {
			break
		}
	}
	return t.metric(goal), nil
}

// Run repeats trials and returns summary stats. A nil rng uses crypto/rand.
func Run(p Params, goal Goal, trials int, rng RandomSource) (Stats, error) {
	if err := p.validate(); err != nil {
		return Stats{}, err
	}
	switch goal {
	case GoalSpread, GoalShortPeriods, GoalToggles:
	default:
		return Stats{}, fmt.Errorf("unknown goal %q", goal)
	}
	if trials <= 0 {
		return Stats{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	for i := range samples {
		v, err := simulateOne(p, goal, rng)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}
