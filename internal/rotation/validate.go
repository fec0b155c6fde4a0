package rotation

import (
	"fmt"
	"strings"
)

// Validate checks structural constraints of a State and reports every problem
// at once. The per-period headcount is a target, not a rule, and is not checked.
func Validate(s *State) error {
	var errs []string

	if !s.Cursor.Valid() {
		errs = append(errs, fmt.Sprintf("cursor (%d,%d) must be within games 1..%d, periods 1..%d",
			s.Cursor.Game, s.Cursor.Period, NumGames, NumPeriods))
	}

	seen := make(map[int]int, len(s.Players))
	for i, p := range s.Players {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("players[%d].name must not be blank", i))
		}
		if prev, dup := seen[p.Priority]; dup {
			errs = append(errs, fmt.Sprintf("players[%d].priority duplicates players[%d]", i, prev))
		}
		seen[p.Priority] = i
	}

	for g, grid := range s.Rotation.Games {
		if len(grid) != len(s.Players) {
			errs = append(errs, fmt.Sprintf("%s has %d rows, want %d", gameKeys[g], len(grid), len(s.Players)))
		}
		for p, row := range grid {
			for t, v := range row {
				if v != 0 && v != 1 {
					errs = append(errs, fmt.Sprintf("%s[%d][%d] must be 0 or 1", gameKeys[g], p, t))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("state validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
