package rotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, n int, curated bool) *State {
	t.Helper()
	s, err := NewState(make([]string, n), curated)
	require.NoError(t, err)
	return s
}

func assertHistoryKept(t *testing.T, before, after Matrix, c Cursor) {
	t.Helper()
	for g := 0; g < NumGames; g++ {
		for p := range before.Games[g] {
			for period := 0; period < NumPeriods; period++ {
				if c.IsHistory(g, period) {
					require.Equal(t, before.Games[g][p][period], after.Games[g][p][period],
						"history changed at game=%d slot=%d period=%d", g, p, period)
				}
			}
		}
	}
}

func TestRegenerateDeactivatedPlayer(t *testing.T) {
	s := newTestState(t, 6, true)
	s.Cursor = Cursor{Game: 1, Period: 5}
	before := s.Rotation.Clone()

	_, err := s.Toggle(2)
	require.NoError(t, err)
	require.NoError(t, Regenerate(s))

	assertHistoryKept(t, before, s.Rotation, s.Cursor)
	for period := 4; period < NumPeriods; period++ {
		assert.Zero(t, s.Rotation.Games[0][2][period], "game1 period %d", period+1)
	}
	assert.Equal(t, Row{}, s.Rotation.Games[1][2])

	want := Grid{
		{1, 0, 1, 0, 1, 1, 1, 1},
		{1, 1, 0, 1, 1, 1, 1, 0},
		{1, 0, 1, 0, 0, 0, 0, 0},
		{1, 1, 0, 1, 1, 1, 0, 1},
		{0, 1, 1, 1, 1, 0, 1, 1},
		{0, 1, 1, 1, 0, 1, 1, 1},
	}
	if diff := cmp.Diff(want, s.Rotation.Games[0]); diff != "" {
		t.Fatalf("game1 mismatch (-want +got):\n%s", diff)
	}
	for g := 0; g < NumGames; g++ {
		assert.Equal(t, [NumPeriods]int{4, 4, 4, 4, 4, 4, 4, 4}, periodCounts(s.Rotation.Games[g]))
	}
}

func TestRegenerateIdempotent(t *testing.T) {
	for _, tc := range []struct {
		name    string
		players int
		curated bool
		cursor  Cursor
	}{
		{"curated mid game1", 9, true, Cursor{1, 3}},
		{"balanced start", 7, false, Cursor{1, 1}},
		{"balanced game2", 10, false, Cursor{2, 4}},
		{"last period", 6, true, Cursor{2, 8}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, tc.players, tc.curated)
			s.Cursor = tc.cursor
			before := s.Rotation.Clone()

			require.NoError(t, Regenerate(s))
			first := s.Rotation.Clone()
			require.NoError(t, Regenerate(s))

			if diff := cmp.Diff(first, s.Rotation); diff != "" {
				t.Fatalf("second run changed matrix:\n%s", diff)
			}
			assertHistoryKept(t, before, s.Rotation, s.Cursor)
			for g := 0; g < NumGames; g++ {
				for period, c := range periodCounts(s.Rotation.Games[g]) {
					assert.LessOrEqual(t, c, OnCourt, "game=%d period=%d", g, period)
				}
			}
		})
	}
}

func TestRegenerateToggleRoundTrip(t *testing.T) {
	s := newTestState(t, 8, false)
	s.Cursor = Cursor{Game: 1, Period: 3}
	before := s.Rotation.Clone()

	ref := s.Clone()
	require.NoError(t, Regenerate(ref))

	_, err := s.Toggle(5)
	require.NoError(t, err)
	require.NoError(t, Regenerate(s))
	_, err = s.Toggle(5)
	require.NoError(t, err)
	require.NoError(t, Regenerate(s))

	assertHistoryKept(t, before, s.Rotation, s.Cursor)
	if diff := cmp.Diff(ref.Rotation, s.Rotation); diff != "" {
		t.Fatalf("toggle round trip should match a plain regenerate:\n%s", diff)
	}
	assert.Positive(t, s.GameTotal(0, 5)+s.GameTotal(1, 5))
}

func TestRegenerateNotEnoughActive(t *testing.T) {
	s := newTestState(t, 6, true)
	s.Cursor = Cursor{Game: 1, Period: 2}
	for _, slot := range []int{0, 1, 2} {
		_, err := s.Toggle(slot)
		require.NoError(t, err)
	}
	before := s.Rotation.Clone()

	err := Regenerate(s)
	require.ErrorIs(t, err, ErrNotEnoughActive)
	assert.EqualError(t, err, "need at least 4 active players")
	if diff := cmp.Diff(before, s.Rotation); diff != "" {
		t.Fatalf("failed regenerate mutated matrix:\n%s", diff)
	}
}

func TestRegenerateFromStartTotals(t *testing.T) {
	s := newTestState(t, 8, false)
	_, err := s.Toggle(7)
	require.NoError(t, err)
	require.NoError(t, Regenerate(s))

	for g := 0; g < NumGames; g++ {
		assert.Equal(t, Row{}, s.Rotation.Games[g][7])
	}
	// game 1 is budgeted with game 2's slots as well, so the extras land on
	// the top of the rotation twice
	totals := make([]int, len(s.Players))
	for slot := range totals {
		totals[slot] = s.PlayerTotal(slot)
	}
	assert.Equal(t, []int{10, 10, 10, 10, 8, 8, 8, 0}, totals)
	assert.Equal(t, 2, s.Fairness().Spread)
}

func TestRegenerateGameTwoUsesGameOneHistory(t *testing.T) {
	s := newTestState(t, 9, false)
	s.Cursor = Cursor{Game: 2, Period: 1}
	game1 := append(Grid(nil), s.Rotation.Games[0]...)

	require.NoError(t, Regenerate(s))
	if diff := cmp.Diff(game1, s.Rotation.Games[0]); diff != "" {
		t.Fatalf("game1 is history once game2 started:\n%s", diff)
	}
	assert.Equal(t, [NumPeriods]int{4, 4, 4, 4, 4, 4, 4, 4}, periodCounts(s.Rotation.Games[1]))
}

func TestRegenerateRepairsShape(t *testing.T) {
	s := newTestState(t, 6, true)
	s.Rotation.Games[1] = s.Rotation.Games[1][:4]
	require.NoError(t, Regenerate(s))
	assert.Len(t, s.Rotation.Games[1], 6)
}

func TestRegenerateRejectsBadCursor(t *testing.T) {
	s := newTestState(t, 6, true)
	s.Cursor = Cursor{Game: 3, Period: 1}
	assert.ErrorIs(t, Regenerate(s), ErrInvalidCursor)
}
