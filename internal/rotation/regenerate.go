package rotation

import (
	"errors"
	"sort"
)

var ErrNotEnoughActive = errors.New("need at least 4 active players")

// Regenerate replans every period at or after the cursor, across both games,
// using only active players. Periods before the cursor are never touched.
//
// The first game replanned is budgeted for its remaining periods plus the whole
// following game; later games are budgeted for themselves. Inactive players are
// zeroed for every replanned period.
//
// Regenerate is deterministic and must not be called concurrently on the same
// State.
func Regenerate(s *State) error {
	if !s.Cursor.Valid() {
		return ErrInvalidCursor
	}
	active := s.ActiveIndices()
	if len(active) < MinActive {
		return ErrNotEnoughActive
	}
	n := len(s.Players)
	s.Rotation.resize(n)
	rank := rankIndex(active, n)
	first := s.Cursor.Game - 1

	for g := first; g < NumGames; g++ {
		start := 0
		if g == first {
			start = s.Cursor.Period - 1
		}

		already := make([]int, n)
		for p := 0; p < n; p++ {
			for eg := 0; eg < g; eg++ {
				already[p] += s.Rotation.Games[eg][p].count(0, NumPeriods)
			}
			already[p] += s.Rotation.Games[g][p].count(0, start)
		}

		remaining := (NumPeriods - start) * OnCourt
		if g == first && g < NumGames-1 {
			remaining += NumPeriods * OnCourt
		}
		targets := splitSlots(remaining, active, n)
		plays := append([]int(nil), already...)
		grid := s.Rotation.Games[g]

		for t := start; t < NumPeriods; t++ {
			for p := range grid {
				grid[p][t] = 0
			}
			var cands []int
			for _, p := range active {
				if plays[p] < already[p]+targets[p] {
					cands = append(cands, p)
				}
			}
			sort.SliceStable(cands, func(i, j int) bool {
				a, b := cands[i], cands[j]
				ra, rb := s.Rotation.playedBefore(g, t, a), s.Rotation.playedBefore(g, t, b)
				if ra != rb {
					return !ra
				}
				if plays[a] != plays[b] {
					return plays[a] < plays[b]
				}
				return rank[a] < rank[b]
			})
			for _, p := range firstN(cands, OnCourt) {
				grid[p][t] = 1
				plays[p]++
			}
		}
	}
	return nil
}

// playedBefore reports whether slot p was on court in the period preceding
// (g, t). Period 0 of a later game follows the last period of the game before.
func (m Matrix) playedBefore(g, t, p int) bool {
	switch {
	case t > 0:
		return m.Games[g][p][t-1] == 1
	case g > 0:
		return m.Games[g-1][p][NumPeriods-1] == 1
	default:
		return false
	}
}

// count sums cells in [from, to).
func (r Row) count(from, to int) int {
	total := 0
	for t := from; t < to; t++ {
		total += r[t]
	}
	return total
}

// resize pads or truncates every game to n rows.
func (m *Matrix) resize(n int) {
	for g, grid := range m.Games {
		switch {
		case len(grid) == n:
		case len(grid) > n:
			m.Games[g] = grid[:n:n]
		default:
			m.Games[g] = append(grid, make(Grid, n-len(grid))...)
		}
	}
}
