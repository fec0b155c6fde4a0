package rotation

// curatedPatterns are the hand-authored rotations keyed by roster size.
// Values are used verbatim; do not regenerate them.
var curatedPatterns = map[int][NumGames]Grid{
	6: {
		{
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 1, 0, 1, 1, 0, 1, 1},
			{1, 0, 1, 0, 1, 1, 1, 0},
			{1, 1, 0, 1, 1, 1, 0, 1},
			{0, 1, 1, 1, 0, 1, 1, 1},
			{0, 1, 1, 1, 0, 1, 0, 1},
		},
		{
			{1, 1, 1, 1, 1, 1, 0, 1},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 1, 1, 0, 1, 0},
			{0, 1, 1, 0, 1, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 1, 1},
			{1, 1, 0, 1, 0, 1, 1, 1},
		},
	},
	7: {
		{
			{1, 0, 1, 0, 1, 0, 1, 1},
			{1, 0, 1, 0, 1, 1, 0, 1},
			{1, 0, 1, 1, 0, 1, 0, 1},
			{1, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 1, 0},
			{0, 1, 0, 1, 1, 0, 1, 0},
			{0, 1, 1, 0, 1, 0, 1, 0},
		},
		{
			{0, 1, 0, 1, 0, 1, 1, 0},
			{0, 1, 0, 1, 1, 0, 1, 0},
			{0, 1, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 1},
			{1, 0, 1, 0, 1, 1, 0, 1},
			{1, 0, 1, 1, 0, 1, 0, 1},
			{1, 1, 0, 1, 0, 1, 0, 1},
		},
	},
	8: {
		{
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
		},
		{
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
		},
	},
	9: {
		{
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 0, 1},
			{1, 0, 1, 0, 0, 1, 0, 0},
			{1, 0, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 0, 1, 0},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 0, 1, 0, 1, 0, 1, 0},
		},
		{
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 0, 1},
			{0, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 1, 0, 0, 1, 0, 1},
		},
	},
	10: {
		{
			{1, 0, 1, 0, 0, 1, 0, 0},
			{1, 0, 1, 0, 0, 1, 0, 1},
			{1, 0, 0, 1, 0, 1, 0, 1},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{0, 1, 0, 1, 0, 0, 1, 0},
			{0, 1, 0, 1, 0, 1, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 1},
			{0, 1, 0, 0, 1, 0, 0, 1},
			{0, 0, 1, 0, 1, 0, 1, 0},
			{0, 0, 1, 0, 1, 0, 1, 0},
		},
		{
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 0, 1, 0, 1, 0, 0, 1},
			{0, 0, 1, 0, 1, 0, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 0},
			{1, 0, 1, 0, 0, 1, 0, 0},
			{1, 0, 1, 0, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 1},
			{0, 1, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 0, 1, 0, 1, 0},
		},
	},
	11: {
		{
			{1, 0, 1, 0, 0, 1, 0, 0},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 0, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 1},
			{0, 1, 0, 0, 1, 0, 0, 1},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 0, 1, 0, 1, 0, 1, 0},
			{0, 0, 1, 0, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 1, 0, 1},
		},
		{
			{0, 0, 1, 0, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 1, 0, 1},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{0, 0, 1, 0, 1, 0, 1, 0},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{0, 1, 0, 1, 0, 0, 0, 1},
			{0, 1, 0, 1, 0, 1, 0, 0},
			{1, 0, 0, 0, 1, 0, 0, 1},
			{0, 1, 0, 0, 1, 0, 0, 1},
			{1, 0, 1, 0, 1, 0, 1, 0},
			{0, 1, 0, 0, 0, 1, 0, 0},
		},
	},
	12: {
		{
			{1, 0, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 0, 0, 1},
			{1, 0, 0, 1, 0, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 0, 1, 0, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 1, 0, 1},
			{0, 0, 1, 0, 0, 1, 0, 1},
			{0, 0, 1, 0, 0, 1, 0, 1},
		},
		{
			{0, 0, 1, 0, 1, 0, 0, 1},
			{0, 0, 1, 0, 1, 0, 0, 1},
			{0, 0, 0, 1, 0, 0, 1, 0},
			{1, 0, 0, 1, 0, 1, 0, 1},
			{1, 0, 0, 1, 0, 1, 0, 1},
			{1, 0, 0, 1, 0, 1, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 0},
			{1, 0, 1, 0, 0, 1, 0, 0},
			{0, 1, 0, 0, 0, 0, 1, 0},
			{0, 1, 0, 0, 0, 0, 1, 0},
			{0, 0, 1, 0, 0, 0, 1, 0},
		},
	},
	13: {
		{
			{1, 0, 0, 1, 0, 0, 0, 1},
			{1, 0, 0, 1, 0, 0, 0, 0},
			{1, 0, 0, 1, 0, 0, 0, 0},
			{1, 0, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 1, 0, 0, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 1, 0, 1},
			{0, 0, 1, 0, 0, 1, 0, 1},
			{0, 0, 1, 0, 0, 1, 0, 1},
			{0, 0, 1, 0, 0, 0, 1, 0},
			{0, 0, 0, 1, 0, 0, 1, 0},
		},
		{
			{0, 0, 0, 1, 0, 1, 0, 0},
			{1, 0, 0, 0, 1, 0, 0, 1},
			{1, 0, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 1, 0, 0, 1, 0, 1, 0},
			{0, 1, 0, 0, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 1, 0, 0},
			{0, 1, 0, 1, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 0, 1, 0},
			{0, 0, 1, 0, 0, 0, 1, 0},
			{0, 0, 1, 0, 0, 0, 0, 1},
			{1, 0, 0, 1, 0, 0, 0, 1},
			{1, 0, 0, 1, 0, 0, 0, 1},
		},
	},
}

// Curated returns a deep copy of the curated pattern for n players.
func Curated(n int) (Matrix, bool) {
	games, ok := curatedPatterns[n]
	if !ok {
		return Matrix{}, false
	}
	var m Matrix
	for g, grid := range games {
		m.Games[g] = append(Grid(nil), grid...)
	}
	return m, true
}
