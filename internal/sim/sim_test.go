package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanceBounds(t *testing.T) {
	rng := NewSeededRNG(1)
	assert.False(t, chance(0, rng), "p=0 should never happen")
	assert.True(t, chance(1, rng), "p=1 should always happen")
	assert.ErrorIs(t, validateProb(-0.1), ErrInvalidProb)
	assert.ErrorIs(t, validateProb(1.1), ErrInvalidProb)
}

func TestChanceStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	rng := NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		if chance(p, rng) {
			hit++
		}
	}
	assert.InDelta(t, p, float64(hit)/n, 0.01)
}

func TestRunWithoutAbsencesIsConstant(t *testing.T) {
	st, err := Run(Params{Players: 9, UseCurated: true}, GoalShortPeriods, 20, NewSeededRNG(7))
	require.NoError(t, err)
	assert.Zero(t, st.Mean)
	assert.Len(t, st.Samples, 20)

	st, err = Run(Params{Players: 9, UseCurated: true}, GoalToggles, 5, NewSeededRNG(7))
	require.NoError(t, err)
	assert.Zero(t, st.P99)

	st, err = Run(Params{Players: 9, UseCurated: true}, GoalSpread, 5, NewSeededRNG(7))
	require.NoError(t, err)
	assert.Zero(t, st.StdDev)
}

func TestRunEveryoneDropsDownToMinimum(t *testing.T) {
	p := Params{Players: 10, DropProb: 1}
	st, err := Run(p, GoalToggles, 3, NewSeededRNG(3))
	require.NoError(t, err)
	assert.Equal(t, []int{6, 6, 6}, st.Samples)

	// the last four slots stay and play every period
	st, err = Run(p, GoalSpread, 3, NewSeededRNG(3))
	require.NoError(t, err)
	assert.Zero(t, st.Mean)

	st, err = Run(p, GoalShortPeriods, 3, NewSeededRNG(3))
	require.NoError(t, err)
	assert.Zero(t, st.Mean)
}

func TestRunIsReplicable(t *testing.T) {
	p := Params{Players: 11, UseCurated: true, DropProb: 0.05, ReturnProb: 0.2}
	a, err := Run(p, GoalSpread, 50, NewSeededRNG(99))
	require.NoError(t, err)
	b, err := Run(p, GoalSpread, 50, NewSeededRNG(99))
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)
	assert.LessOrEqual(t, a.P50, a.P90)
	assert.LessOrEqual(t, a.P90, a.P99)
}

func TestRunRejectsBadParams(t *testing.T) {
	_, err := Run(Params{Players: 3}, GoalSpread, 1, nil)
	assert.EqualError(t, err, "players must be at least 4, got 3")
	_, err = Run(Params{Players: 8, DropProb: 2}, GoalSpread, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidProb)
	_, err = Run(Params{Players: 8}, Goal("nope"), 1, nil)
	assert.EqualError(t, err, `unknown goal "nope"`)

	st, err := Run(Params{Players: 8}, GoalSpread, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestCalcStats(t *testing.T) {
	st := calcStats([]int{1, 2, 3, 4})
	assert.InDelta(t, 2.5, st.Mean, 1e-9)
	assert.InDelta(t, 1.25, st.Var, 1e-9)
	assert.InDelta(t, 2.5, st.P50, 1e-9)
	assert.InDelta(t, 3.7, st.P90, 1e-9)
}
