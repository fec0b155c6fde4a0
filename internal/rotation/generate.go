package rotation

import "sort"

// Generate builds the opening schedule for playerCount players, ranked by slot.
// With useCurated and a curated table for the roster size, the table is returned
// verbatim; otherwise each game is filled by the balanced allocator.
func Generate(playerCount int, useCurated bool) Matrix {
	if playerCount < 0 {
		playerCount = 0
	}
	priorities := make([]int, playerCount)
	for i := range priorities {
		priorities[i] = i
	}
	return GenerateRanked(priorities, useCurated)
}

// GenerateRanked is Generate with explicit priorities: priorities[slot] is the
// rank of that roster slot. Curated tables ignore priorities.
func GenerateRanked(priorities []int, useCurated bool) Matrix {
	n := len(priorities)
	if useCurated {
		if m, ok := Curated(n); ok {
			return m
		}
	}
	order := rankSlots(priorities, allSlots(n))
	var m Matrix
	// games are independent at this stage
	for g := range m.Games {
		m.Games[g] = balancedGame(n, order)
	}
	return m
}

// balancedGame fills one game greedily.
// - each slot gets a target share of NumPeriods*OnCourt, extras to the best ranks
// - a period prefers slots that rested last period, then fewest plays, then rank
// - if fewer than OnCourt rested slots remain under target, the rest rule is dropped
func balancedGame(n int, order []int) Grid {
	grid := make(Grid, n)
	if n == 0 {
		return grid
	}
	targets := splitSlots(NumPeriods*OnCourt, order, n)
	rank := rankIndex(order, n)
	plays := make([]int, n)

	for t := 0; t < NumPeriods; t++ {
		var cands []int
		for _, p := range order {
			if plays[p] >= targets[p] {
				continue
			}
			if t > 0 && grid[p][t-1] == 1 {
				continue
			}
			cands = append(cands, p)
		}
		if len(cands) < OnCourt {
			for _, p := range order {
				if plays[p] < targets[p] && t > 0 && grid[p][t-1] == 1 {
					cands = append(cands, p)
				}
			}
		}
		sort.SliceStable(cands, func(i, j int) bool {
			a, b := cands[i], cands[j]
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
	return grid
}

// splitSlots spreads total slots over order: base each, one extra for the
// first total%len(order) entries. The result is indexed by slot.
func splitSlots(total int, order []int, n int) []int {
	targets := make([]int, n)
	if len(order) == 0 {
		return targets
	}
	base := total / len(order)
	extra := total % len(order)
	for k, p := range order {
		targets[p] = base
		if k < extra {
			targets[p]++
		}
	}
	return targets
}

// rankSlots returns slots sorted by (priority, slot).
func rankSlots(priorities []int, slots []int) []int {
	out := append([]int(nil), slots...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if priorities[a] != priorities[b] {
			return priorities[a] < priorities[b]
		}
		return a < b
	})
	return out
}

// rankIndex maps slot -> position in order. Slots missing from order rank last.
func rankIndex(order []int, n int) []int {
	rank := make([]int, n)
	for i := range rank {
		rank[i] = n + i
	}
	for k, p := range order {
		rank[p] = k
	}
	return rank
}

func allSlots(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func firstN(xs []int, n int) []int {
	if len(xs) < n {
		return xs
	}
	return xs[:n]
}
