package rotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func periodCounts(g Grid) [NumPeriods]int {
	var out [NumPeriods]int
	for _, row := range g {
		for t, v := range row {
			out[t] += v
		}
	}
	return out
}

func rowTotals(g Grid) []int {
	out := make([]int, len(g))
	for p, row := range g {
		out[p] = row.count(0, NumPeriods)
	}
	return out
}

func TestGenerateCuratedVerbatim(t *testing.T) {
	for n := MinCurated; n <= MaxCurated; n++ {
		m := Generate(n, true)
		for g := 0; g < NumGames; g++ {
			require.Len(t, m.Games[g], n, "players=%d game=%d", n, g)
			if diff := cmp.Diff(curatedPatterns[n][g], m.Games[g]); diff != "" {
				t.Fatalf("players=%d game=%d mismatch (-want +got):\n%s", n, g, diff)
			}
			for period, c := range periodCounts(m.Games[g]) {
				assert.Equal(t, OnCourt, c, "players=%d game=%d period=%d", n, g, period)
			}
		}
	}
}

func TestGenerateCuratedIsCopy(t *testing.T) {
	m := Generate(6, true)
	m.Games[0][0][0] = 0
	again := Generate(6, true)
	assert.Equal(t, 1, again.Games[0][0][0], "curated table must not be aliased")
}

func TestGenerateCuratedSixPlayers(t *testing.T) {
	m := Generate(6, true)
	assert.Equal(t, Row{1, 0, 1, 0, 1, 0, 1, 0}, m.Games[0][0])
}

func TestGenerateFallsBackOutsideCuratedRange(t *testing.T) {
	for _, n := range []int{4, 5, 14} {
		m := Generate(n, true)
		for g := 0; g < NumGames; g++ {
			if diff := cmp.Diff(balancedGame(n, allSlots(n)), m.Games[g]); diff != "" {
				t.Fatalf("players=%d game=%d (-want +got):\n%s", n, g, diff)
			}
		}
	}
}

func TestGenerateBalanced(t *testing.T) {
	for n := 1; n <= 16; n++ {
		m := Generate(n, false)
		for g := 0; g < NumGames; g++ {
			grid := m.Games[g]
			require.Len(t, grid, n)
			want := OnCourt
			if n < OnCourt {
				want = n
			}
			for period, c := range periodCounts(grid) {
				assert.Equal(t, want, c, "players=%d game=%d period=%d", n, g, period)
			}
			totals := rowTotals(grid)
			for i := range totals {
				for j := range totals {
					d := totals[i] - totals[j]
					assert.LessOrEqual(t, d, 1, "players=%d totals=%v", n, totals)
				}
				// earlier roster slots never play less than later ones
				if i > 0 {
					assert.GreaterOrEqual(t, totals[i-1], totals[i], "players=%d totals=%v", n, totals)
				}
			}
		}
	}
}

func TestGenerateBalancedNinePlayers(t *testing.T) {
	m := Generate(9, false)
	totals := rowTotals(m.Games[0])
	sum := 0
	for _, v := range totals {
		sum += v
	}
	assert.Equal(t, NumPeriods*OnCourt, sum)
	assert.Equal(t, []int{4, 4, 4, 4, 4, 3, 3, 3, 3}, totals)
}

func TestGenerateBalancedPrefersRest(t *testing.T) {
	// With 8 players every slot can rest between shifts.
	m := Generate(8, false)
	for p, row := range m.Games[0] {
		for tt := 1; tt < NumPeriods; tt++ {
			assert.False(t, row[tt] == 1 && row[tt-1] == 1, "slot %d plays back-to-back at %d: %v", p, tt, row)
		}
	}
}

func TestGenerateRankedUsesPriority(t *testing.T) {
	// slot 8 ranked first gets one of the extra plays
	priorities := []int{1, 2, 3, 4, 5, 6, 7, 8, 0}
	m := GenerateRanked(priorities, false)
	totals := rowTotals(m.Games[0])
	assert.Equal(t, 4, totals[8])
	assert.Equal(t, 3, totals[4])
}

func TestGenerateEmptyAndDeterministic(t *testing.T) {
	m := Generate(0, false)
	assert.Empty(t, m.Games[0])
	assert.Empty(t, m.Games[1])

	if diff := cmp.Diff(Generate(11, false), Generate(11, false)); diff != "" {
		t.Fatalf("generation not deterministic:\n%s", diff)
	}
}

func TestCuratedTablesAreRectangular(t *testing.T) {
	for n, games := range curatedPatterns {
		for g, grid := range games {
			assert.Len(t, grid, n, "players=%d game=%d", n, g)
		}
	}
}
