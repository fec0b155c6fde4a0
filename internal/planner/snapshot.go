package planner

import "github.com/xtding233/hoops-rotation/internal/rotation"

// Snapshot is the read model handed to renderers and transports.
// Game and period indices inside are 0-based; Cursor is 1-based.
type Snapshot struct {
	Team         string                                      `json:"team"`
	Players      []PlayerView                                `json:"players"`
	Order        []int                                       `json:"order"` // slots by priority
	Cursor       CursorView                                  `json:"cursor"`
	UseCurated   bool                                        `json:"useCurated"`
	Games        [rotation.NumGames]rotation.Grid            `json:"games"`
	PeriodCounts [rotation.NumGames][rotation.NumPeriods]int `json:"periodCounts"`
	Substitution SubstitutionView                            `json:"substitution"`
	Fairness     FairnessView                                `json:"fairness"`
}

type PlayerView struct {
	Slot       int                    `json:"slot"`
	Name       string                 `json:"name"`
	Active     bool                   `json:"active"`
	Priority   int                    `json:"priority"`
	GameTotals [rotation.NumGames]int `json:"gameTotals"`
	Total      int                    `json:"total"`
	OnCourt    bool                   `json:"onCourt"` // playing at the cursor
}

type CursorView struct {
	Game   int `json:"game"`
	Period int `json:"period"`
}

type SubstitutionView struct {
	In  []int `json:"in"`
	Out []int `json:"out"`
}

type FairnessView struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Spread int     `json:"spread"`
}

// Outcome is what every mutating call returns.
type Outcome struct {
	Snapshot Snapshot `json:"state"`
	Changed  bool     `json:"changed"`
	Warning  string   `json:"warning,omitempty"`
}

func snapshotOf(team string, s *rotation.State) Snapshot {
	g, t := s.Cursor.Game-1, s.Cursor.Period-1
	snap := Snapshot{
		Team:       team,
		Players:    make([]PlayerView, len(s.Players)),
		Order:      s.PriorityOrder(),
		Cursor:     CursorView{Game: s.Cursor.Game, Period: s.Cursor.Period},
		UseCurated: s.UseCurated,
	}
	for slot, p := range s.Players {
		view := PlayerView{
			Slot:     slot,
			Name:     p.Name,
			Active:   p.Active,
			Priority: p.Priority,
			Total:    s.PlayerTotal(slot),
			OnCourt:  s.Cell(g, slot, t) == 1,
		}
		for game := 0; game < rotation.NumGames; game++ {
			view.GameTotals[game] = s.GameTotal(game, slot)
		}
		snap.Players[slot] = view
	}
	for game := 0; game < rotation.NumGames; game++ {
		snap.Games[game] = append(rotation.Grid{}, s.Rotation.Games[game]...)
		for period := 0; period < rotation.NumPeriods; period++ {
			snap.PeriodCounts[game][period] = s.PeriodCount(game, period)
		}
	}
	sub := s.Substitutions(g, t)
	snap.Substitution = SubstitutionView{In: sub.In, Out: sub.Out}
	f := s.Fairness()
	snap.Fairness = FairnessView{Mean: f.Mean, StdDev: f.StdDev, Min: f.Min, Max: f.Max, Spread: f.Spread}
	return snap
}
