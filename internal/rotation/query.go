package rotation

// Read access for renderers. Game and period arguments are 0-based.

// Cell returns 1 if slot plays in (game, period), 0 otherwise or when out of range.
func (s *State) Cell(game, slot, period int) int {
	if game < 0 || game >= NumGames || period < 0 || period >= NumPeriods {
		return 0
	}
	if slot < 0 || slot >= len(s.Rotation.Games[game]) {
		return 0
	}
	return s.Rotation.Games[game][slot][period]
}

// GameTotal counts the periods slot plays in one game.
func (s *State) GameTotal(game, slot int) int {
	if game < 0 || game >= NumGames || slot < 0 || slot >= len(s.Rotation.Games[game]) {
		return 0
	}
	return s.Rotation.Games[game][slot].count(0, NumPeriods)
}

// PlayerTotal counts the periods slot plays over both games.
func (s *State) PlayerTotal(slot int) int {
	total := 0
	for g := 0; g < NumGames; g++ {
		total += s.GameTotal(g, slot)
	}
	return total
}

// PeriodCount is the number of players on court in (game, period).
func (s *State) PeriodCount(game, period int) int {
	if game < 0 || game >= NumGames || period < 0 || period >= NumPeriods {
		return 0
	}
	count := 0
	for _, row := range s.Rotation.Games[game] {
		count += row[period]
	}
	return count
}

// OnCourtAt lists the slots playing in (game, period), in priority order.
func (s *State) OnCourtAt(game, period int) []int {
	var on []int
	for _, slot := range s.PriorityOrder() {
		if s.Cell(game, slot, period) == 1 {
			on = append(on, slot)
		}
	}
	return on
}

// Substitution describes the changes entering (Game, Period).
type Substitution struct {
	Game   int   // 0-based
	Period int   // 0-based
	In     []int // slots coming on
	Out    []int // slots going off
}

// Substitutions compares (game, period) with the period before it. The very
// first period of the session reports the starting lineup as In.
func (s *State) Substitutions(game, period int) Substitution {
	sub := Substitution{Game: game, Period: period}
	if game < 0 || game >= NumGames || period < 0 || period >= NumPeriods {
		return sub
	}
	for _, slot := range s.PriorityOrder() {
		now := s.Cell(game, slot, period) == 1
		before := s.Rotation.playedBefore(game, period, slot)
		switch {
		case now && !before:
			sub.In = append(sub.In, slot)
		case !now && before:
			sub.Out = append(sub.Out, slot)
		}
	}
	return sub
}
