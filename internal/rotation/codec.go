package rotation

import (
	"encoding/json"
	"sort"
)

// Persisted layout, one JSON object per team:
//
//	{"players":[{"name":..,"active":..,"priority":..}],
//	 "currentGame":1,"currentPeriod":1,
//	 "rotation":{"game1":[[0,1,..]],"game2":[[..]]},
//	 "useDefault":true}
type wirePlayer struct {
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Priority int    `json:"priority"`
}

type wireRotation struct {
	Game1 Grid `json:"game1"`
	Game2 Grid `json:"game2"`
}

type wireState struct {
	Players       []wirePlayer `json:"players"`
	CurrentGame   int          `json:"currentGame"`
	CurrentPeriod int          `json:"currentPeriod"`
	Rotation      wireRotation `json:"rotation"`
	UseDefault    bool         `json:"useDefault"`
}

var gameKeys = [NumGames]string{"game1", "game2"}

// EncodeState serialises the whole state.
func EncodeState(s *State) ([]byte, error) {
	w := wireState{
		Players:       make([]wirePlayer, len(s.Players)),
		CurrentGame:   s.Cursor.Game,
		CurrentPeriod: s.Cursor.Period,
		Rotation: wireRotation{
			Game1: nonNil(s.Rotation.Games[0]),
			Game2: nonNil(s.Rotation.Games[1]),
		},
		UseDefault: s.UseCurated,
	}
	for i, p := range s.Players {
		w.Players[i] = wirePlayer{Name: p.Name, Active: p.Active, Priority: p.Priority}
	}
	return json.Marshal(w)
}

// DecodeState merges a persisted blob into EmptyState. It never fails: input
// that is not a JSON object yields the empty state, and each field that is
// missing or mistyped keeps its default. The result always satisfies Validate.
func DecodeState(data []byte) *State {
	s := EmptyState()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return s
	}

	if raw, ok := fields["players"]; ok {
		s.Players = decodePlayers(raw)
	}
	var game, period int
	if decodeInto(fields["currentGame"], &game) {
		s.Cursor.Game = clamp(game, 1, NumGames)
	}
	if decodeInto(fields["currentPeriod"], &period) {
		s.Cursor.Period = clamp(period, 1, NumPeriods)
	}
	var useDefault bool
	if decodeInto(fields["useDefault"], &useDefault) {
		s.UseCurated = useDefault
	}

	s.Rotation = NewMatrix(len(s.Players))
	var rotation map[string]json.RawMessage
	if decodeInto(fields["rotation"], &rotation) {
		for g, key := range gameKeys {
			decodeGrid(rotation[key], s.Rotation.Games[g])
		}
	}
	return s
}

func decodePlayers(raw json.RawMessage) []Player {
	var items []json.RawMessage
	if !decodeInto(raw, &items) {
		return nil
	}
	players := make([]Player, len(items))
	ranked := true
	seen := make(map[int]bool, len(items))
	for i, item := range items {
		p := Player{Name: DefaultName(i), Active: true, Priority: i}
		var obj map[string]json.RawMessage
		if decodeInto(item, &obj) {
			var name string
			if decodeInto(obj["name"], &name) {
				p.Name = cleanName(name, i)
			}
			var active bool
			if decodeInto(obj["active"], &active) {
				p.Active = active
			}
			var priority int
			if decodeInto(obj["priority"], &priority) && !seen[priority] {
				p.Priority = priority
				seen[priority] = true
			} else {
				ranked = false
			}
		} else {
			ranked = false
		}
		players[i] = p
	}
	if !ranked {
		// older blobs carry no priority: slot order is the ranking
		for i := range players {
			players[i].Priority = i
		}
		return players
	}
	// compact to 0..n-1 keeping relative order
	order := allSlots(len(players))
	sort.SliceStable(order, func(a, b int) bool {
		return players[order[a]].Priority < players[order[b]].Priority
	})
	for rank, slot := range order {
		players[slot].Priority = rank
	}
	return players
}

// decodeGrid copies whatever rows fit into grid; anything non-zero is 1.
func decodeGrid(raw json.RawMessage, grid Grid) {
	var rows []json.RawMessage
	if !decodeInto(raw, &rows) {
		return
	}
	for p := 0; p < len(rows) && p < len(grid); p++ {
		var cells []json.RawMessage
		if !decodeInto(rows[p], &cells) {
			continue
		}
		for t := 0; t < len(cells) && t < NumPeriods; t++ {
			grid[p][t] = decodeCell(cells[t])
		}
	}
}

func decodeCell(raw json.RawMessage) int {
	var f float64
	if decodeInto(raw, &f) && f != 0 {
		return 1
	}
	var b bool
	if decodeInto(raw, &b) && b {
		return 1
	}
	return 0
}

// decodeInto reports whether raw held a non-null value of v's type.
func decodeInto(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNil(g Grid) Grid {
	if g == nil {
		return Grid{}
	}
	return g
}
