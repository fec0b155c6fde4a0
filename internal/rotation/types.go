// types.go
package rotation

const (
	NumGames   = 2 // games per session
	NumPeriods = 8 // periods per game
	OnCourt    = 4 // players on court per period
	MinActive  = 4 // regeneration refuses to run below this

	MinCurated = 6  // smallest roster with a curated pattern
	MaxCurated = 13 // largest roster with a curated pattern
)

// Row is one player's participation across a game: 1 = playing, 0 = resting.
type Row [NumPeriods]int

// Grid is one game; one Row per roster slot.
type Grid []Row

// Matrix holds both games. Every Grid has exactly one Row per roster slot.
type Matrix struct {
	Games [NumGames]Grid
}

// Player is one roster entry.
// Priority ranks slot assignment (lower plays first); it is independent of the
// player's slot in the roster, so reordering never moves matrix rows.
type Player struct {
	Name     string
	Active   bool
	Priority int
}

// Cursor is the 1-based (game, period) "now". Periods before it are history.
type Cursor struct {
	Game   int
	Period int
}

// State is everything the planner owns for one team.
type State struct {
	Players    []Player
	Cursor     Cursor
	Rotation   Matrix
	UseCurated bool
}

// NewMatrix returns an all-zero matrix for n roster slots.
func NewMatrix(n int) Matrix {
	var m Matrix
	for g := range m.Games {
		m.Games[g] = make(Grid, n)
	}
	return m
}

// Clone deep-copies the matrix.
func (m Matrix) Clone() Matrix {
	var out Matrix
	for g, grid := range m.Games {
		out.Games[g] = append(Grid(nil), grid...)
	}
	return out
}

// Rows reports the roster size the matrix is shaped for.
func (m Matrix) Rows() int {
	return len(m.Games[0])
}

// Index flattens the cursor to 0..NumGames*NumPeriods-1.
func (c Cursor) Index() int {
	return (c.Game-1)*NumPeriods + (c.Period - 1)
}

// cursorAt is the inverse of Index.
func cursorAt(idx int) Cursor {
	return Cursor{Game: idx/NumPeriods + 1, Period: idx%NumPeriods + 1}
}

// IsHistory reports whether the 0-based (game, period) lies strictly before c.
func (c Cursor) IsHistory(game, period int) bool {
	return game*NumPeriods+period < c.Index()
}

// Valid reports whether the cursor lies inside the session.
func (c Cursor) Valid() bool {
	return c.Game >= 1 && c.Game <= NumGames && c.Period >= 1 && c.Period <= NumPeriods
}
