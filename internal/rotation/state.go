package rotation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPlayerRange   = errors.New("player index out of range")
	ErrPeriodRange   = errors.New("game or period out of range")
	ErrInvalidCursor = errors.New("cursor outside the session")
	ErrEmptyRoster   = errors.New("roster is empty")
)

// DefaultName is the label given to a player whose name is blank.
func DefaultName(slot int) string {
	return fmt.Sprintf("Player %d", slot+1)
}

// NewState creates a state for a fresh roster: everyone active, priority in
// listed order, cursor at game 1 period 1 and an opening schedule.
func NewState(names []string, useCurated bool) (*State, error) {
	if len(names) == 0 {
		return nil, ErrEmptyRoster
	}
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{Name: cleanName(name, i), Active: true, Priority: i}
	}
	s := &State{
		Players:    players,
		Cursor:     Cursor{Game: 1, Period: 1},
		UseCurated: useCurated,
	}
	s.Rotation = GenerateRanked(s.priorities(), useCurated)
	return s, nil
}

// EmptyState is the state before any roster is set up.
func EmptyState() *State {
	return &State{
		Cursor:     Cursor{Game: 1, Period: 1},
		Rotation:   NewMatrix(0),
		UseCurated: true,
	}
}

// Advance moves the cursor by delta periods across the game boundary.
// Moves that would leave the session are ignored and report false.
func (s *State) Advance(delta int) bool {
	next := s.Cursor.Index() + delta
	if delta == 0 || next < 0 || next >= NumGames*NumPeriods {
		return false
	}
	s.Cursor = cursorAt(next)
	return true
}

// Toggle flips a player's active flag and returns the new value.
func (s *State) Toggle(slot int) (bool, error) {
	if err := s.checkSlot(slot); err != nil {
		return false, err
	}
	s.Players[slot].Active = !s.Players[slot].Active
	return s.Players[slot].Active, nil
}

// Reorder moves the player ranked at position from to position to, shifting the
// players in between, and renumbers priorities 0..n-1. Matrix rows stay put.
func (s *State) Reorder(from, to int) error {
	order := s.PriorityOrder()
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return ErrPlayerRange
	}
	moved := order[from]
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]int{moved}, order[to:]...)...)
	for rank, slot := range order {
		s.Players[slot].Priority = rank
	}
	return nil
}

// Rename sets a player's display name; blank names fall back to DefaultName.
func (s *State) Rename(slot int, name string) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	s.Players[slot].Name = cleanName(name, slot)
	return nil
}

// SetCell records a manual edit. Game and period are 0-based.
// Edits may break the per-period headcount; nothing enforces it here.
func (s *State) SetCell(game, slot, period int, playing bool) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	if game < 0 || game >= NumGames || period < 0 || period >= NumPeriods {
		return ErrPeriodRange
	}
	v := 0
	if playing {
		v = 1
	}
	s.Rotation.Games[game][slot][period] = v
	return nil
}

// Reset starts a new session with the same roster: everyone active again,
// a fresh opening schedule and the cursor back at game 1 period 1.
func (s *State) Reset() {
	for i := range s.Players {
		s.Players[i].Active = true
	}
	s.Cursor = Cursor{Game: 1, Period: 1}
	s.Rotation = GenerateRanked(s.priorities(), s.UseCurated)
}

// PriorityOrder returns every slot sorted by priority.
func (s *State) PriorityOrder() []int {
	return rankSlots(s.priorities(), allSlots(len(s.Players)))
}

// ActiveIndices returns active slots sorted by priority.
func (s *State) ActiveIndices() []int {
	var active []int
	for i, p := range s.Players {
		if p.Active {
			active = append(active, i)
		}
	}
	return rankSlots(s.priorities(), active)
}

// Clone deep-copies the state.
func (s *State) Clone() *State {
	out := *s
	out.Players = append([]Player(nil), s.Players...)
	out.Rotation = s.Rotation.Clone()
	return &out
}

func (s *State) priorities() []int {
	out := make([]int, len(s.Players))
	for i, p := range s.Players {
		out[i] = p.Priority
	}
	return out
}

func (s *State) checkSlot(slot int) error {
	if slot < 0 || slot >= len(s.Players) {
		return ErrPlayerRange
	}
	return nil
}

func cleanName(name string, slot int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName(slot)
	}
	return name
}
