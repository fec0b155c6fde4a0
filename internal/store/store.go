package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("no saved state")
	ErrInvalidTeam = errors.New("invalid team name")
)

// Revision describes one saved blob.
type Revision struct {
	ID        string
	Team      string
	CreatedAt time.Time
	Size      int
}

// Store persists one opaque state blob per team. Implementations are safe for
// concurrent use.
type Store interface {
	// Load returns the latest blob, or ErrNotFound.
	Load(ctx context.Context, team string) ([]byte, error)
	// Save replaces the latest blob.
	Save(ctx context.Context, team string, blob []byte) error
	// Delete removes everything stored for team. Deleting nothing is not an error.
	Delete(ctx context.Context, team string) error
	// History lists revisions newest first; limit <= 0 means all.
	History(ctx context.Context, team string, limit int) ([]Revision, error)
	// Revision returns the blob saved under id, or ErrNotFound.
	Revision(ctx context.Context, team, id string) ([]byte, error)
	Close() error
}

// Open selects a backend by driver name: "file" (path is a directory) or
// "sqlite" (path is a database file, ":memory:" allowed).
func Open(driver, path string) (Store, error) {
	switch driver {
	case "file":
		return NewFileStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// teamKey maps "" to "default" and rejects names that could escape a directory.
func teamKey(team string) (string, error) {
	if team == "" {
		return "default", nil
	}
	if strings.ContainsAny(team, `/\`) || team == "." || team == ".." || strings.HasPrefix(team, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTeam, team)
	}
	return team, nil
}
