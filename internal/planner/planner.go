package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-rotation/internal/rotation"
	"github.com/xtding233/hoops-rotation/internal/store"
)

// Planner owns one team's rotation state. Every call runs under one mutex,
// because the engine itself is not reentrant, and every change is saved
// wholesale before it becomes visible.
type Planner struct {
	team   string
	store  store.Store
	logger *zap.Logger

	mu    sync.Mutex
	state *rotation.State
}

// New creates a planner holding the empty state; call Load to restore.
func New(team string, st store.Store, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		team:   team,
		store:  st,
		logger: logger.With(zap.String("team", team)),
		state:  rotation.EmptyState(),
	}
}

// Team returns the team this planner manages.
func (p *Planner) Team() string {
	return p.team
}

// Load reads the persisted state once. A missing record leaves the empty
// state; a malformed one is merged into defaults field by field.
func (p *Planner) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	blob, err := p.store.Load(ctx, p.team)
	if errors.Is(err, store.ErrNotFound) {
		p.logger.Debug("no saved state")
		p.state = rotation.EmptyState()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	p.state = rotation.DecodeState(blob)
	p.logger.Info("state loaded",
		zap.Int("players", len(p.state.Players)),
		zap.Int("game", p.state.Cursor.Game),
		zap.Int("period", p.state.Cursor.Period))
	return nil
}

// EnsureRoster runs Setup only if no roster exists yet.
func (p *Planner) EnsureRoster(ctx context.Context, names []string, useCurated bool) (Outcome, error) {
	p.mu.Lock()
	empty := len(p.state.Players) == 0
	p.mu.Unlock()
	if !empty || len(names) == 0 {
		return Outcome{Snapshot: p.Snapshot()}, nil
	}
	return p.Setup(ctx, names, useCurated)
}

// Setup replaces the roster and builds the opening schedule.
func (p *Planner) Setup(ctx context.Context, names []string, useCurated bool) (Outcome, error) {
	return p.mutate(ctx, "setup", func(s *rotation.State) (*rotation.State, string, error) {
		next, err := rotation.NewState(names, useCurated)
		if err != nil {
			return nil, "", err
		}
		return next, "", nil
	})
}

// Advance moves the cursor; moves past either end are no-ops.
func (p *Planner) Advance(ctx context.Context, delta int) (Outcome, error) {
	return p.mutate(ctx, "advance", func(s *rotation.State) (*rotation.State, string, error) {
		if !s.Advance(delta) {
			return nil, "", nil
		}
		return s, "", nil
	})
}

// Toggle flips a player's availability and replans the future. With fewer than
// MinActive players the flag change is kept but the matrix is left alone and
// the outcome carries the warning.
func (p *Planner) Toggle(ctx context.Context, slot int) (Outcome, error) {
	return p.mutate(ctx, "toggle", func(s *rotation.State) (*rotation.State, string, error) {
		active, err := s.Toggle(slot)
		if err != nil {
			return nil, "", err
		}
		p.logger.Info("player toggled", zap.Int("slot", slot), zap.Bool("active", active))
		if err := rotation.Regenerate(s); err != nil {
			if errors.Is(err, rotation.ErrNotEnoughActive) {
				return s, err.Error(), nil
			}
			return nil, "", err
		}
		return s, "", nil
	})
}

// Reorder moves a player within the priority ranking.
func (p *Planner) Reorder(ctx context.Context, from, to int) (Outcome, error) {
	return p.mutate(ctx, "reorder", func(s *rotation.State) (*rotation.State, string, error) {
		if from == to {
			return nil, "", nil
		}
		if err := s.Reorder(from, to); err != nil {
			return nil, "", err
		}
		return s, "", nil
	})
}

// Rename changes a player's display name.
func (p *Planner) Rename(ctx context.Context, slot int, name string) (Outcome, error) {
	return p.mutate(ctx, "rename", func(s *rotation.State) (*rotation.State, string, error) {
		if err := s.Rename(slot, name); err != nil {
			return nil, "", err
		}
		return s, "", nil
	})
}

// SetCell records a manual edit (0-based game and period).
func (p *Planner) SetCell(ctx context.Context, game, slot, period int, playing bool) (Outcome, error) {
	return p.mutate(ctx, "set_cell", func(s *rotation.State) (*rotation.State, string, error) {
		if err := s.SetCell(game, slot, period, playing); err != nil {
			return nil, "", err
		}
		var warning string
		if c := s.PeriodCount(game, period); c != rotation.OnCourt {
			warning = fmt.Sprintf("game %d period %d now has %d players on court", game+1, period+1, c)
		}
		return s, warning, nil
	})
}

// Regenerate replans from the cursor. It fails with rotation.ErrNotEnoughActive
// and changes nothing when fewer than MinActive players are available.
func (p *Planner) Regenerate(ctx context.Context) (Outcome, error) {
	return p.mutate(ctx, "regenerate", func(s *rotation.State) (*rotation.State, string, error) {
		if err := rotation.Regenerate(s); err != nil {
			return nil, "", err
		}
		return s, "", nil
	})
}

// NewGame keeps the roster and starts the session over.
func (p *Planner) NewGame(ctx context.Context) (Outcome, error) {
	return p.mutate(ctx, "new_game", func(s *rotation.State) (*rotation.State, string, error) {
		if len(s.Players) == 0 {
			return nil, "", rotation.ErrEmptyRoster
		}
		s.Reset()
		return s, "", nil
	})
}

// Clear deletes everything persisted for the team and resets to empty.
func (p *Planner) Clear(ctx context.Context) (Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Delete(ctx, p.team); err != nil {
		return Outcome{}, fmt.Errorf("clear state: %w", err)
	}
	p.state = rotation.EmptyState()
	p.logger.Info("state cleared")
	return Outcome{Snapshot: snapshotOf(p.team, p.state), Changed: true}, nil
}

// History lists saved revisions, newest first.
func (p *Planner) History(ctx context.Context, limit int) ([]store.Revision, error) {
	return p.store.History(ctx, p.team, limit)
}

// Restore makes a saved revision current again (saved as a new revision).
func (p *Planner) Restore(ctx context.Context, revisionID string) (Outcome, error) {
	blob, err := p.store.Revision(ctx, p.team, revisionID)
	if err != nil {
		return Outcome{}, fmt.Errorf("restore %s: %w", revisionID, err)
	}
	return p.mutate(ctx, "restore", func(*rotation.State) (*rotation.State, string, error) {
		return rotation.DecodeState(blob), "", nil
	})
}

// Snapshot returns the current read model.
func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshotOf(p.team, p.state)
}

// State returns a deep copy of the current state.
func (p *Planner) State() *rotation.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// mutate runs fn on a copy of the state. fn returns the next state (nil for
// "nothing changed"), an optional warning, or an error. A changed state is
// saved before it replaces the current one.
func (p *Planner) mutate(ctx context.Context, op string, fn func(*rotation.State) (*rotation.State, string, error)) (Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, warning, err := fn(p.state.Clone())
	if err != nil {
		p.logger.Warn("operation rejected", zap.String("op", op), zap.Error(err))
		return Outcome{Snapshot: snapshotOf(p.team, p.state)}, err
	}
	if next == nil {
		p.logger.Debug("operation changed nothing", zap.String("op", op))
		return Outcome{Snapshot: snapshotOf(p.team, p.state), Warning: warning}, nil
	}

	blob, err := rotation.EncodeState(next)
	if err != nil {
		return Outcome{Snapshot: snapshotOf(p.team, p.state)}, fmt.Errorf("encode state: %w", err)
	}
	if err := p.store.Save(ctx, p.team, blob); err != nil {
		p.logger.Error("save failed", zap.String("op", op), zap.Error(err))
		return Outcome{Snapshot: snapshotOf(p.team, p.state)}, fmt.Errorf("save state: %w", err)
	}
	p.state = next

	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("game", next.Cursor.Game),
		zap.Int("period", next.Cursor.Period),
	}
	if warning != "" {
		p.logger.Warn(warning, fields...)
	} else {
		p.logger.Info("state updated", fields...)
	}
	return Outcome{Snapshot: snapshotOf(p.team, next), Changed: true, Warning: warning}, nil
}
