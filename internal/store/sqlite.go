package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the latest blob per team plus every saved revision.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS states (
			team TEXT PRIMARY KEY,
			blob TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS revisions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			team TEXT NOT NULL,
			blob TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_team ON revisions(team, seq)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, team string) ([]byte, error) {
	key, err := teamKey(team)
	if err != nil {
		return nil, err
	}
	var blob string
	err = s.db.QueryRowContext(ctx, `SELECT blob FROM states WHERE team = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(blob), nil
}

// Save upserts the latest blob and appends a revision in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, team string, blob []byte) error {
	key, err := teamKey(team)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO states (team, blob, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(team) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		key, string(blob), now,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (id, team, blob, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), key, string(blob), now,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, team string) error {
	key, err := teamKey(team)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM states WHERE team = ?`, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE team = ?`, key); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) History(ctx context.Context, team string, limit int) ([]Revision, error) {
	key, err := teamKey(team)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team, length(CAST(blob AS BLOB)), created_at FROM revisions
		 WHERE team = ? ORDER BY seq DESC LIMIT ?`,
		key, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		var created string
		if err := rows.Scan(&r.ID, &r.Team, &r.Size, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

func (s *SQLiteStore) Revision(ctx context.Context, team, id string) ([]byte, error) {
	key, err := teamKey(team)
	if err != nil {
		return nil, err
	}
	var blob string
	err = s.db.QueryRowContext(ctx, `SELECT blob FROM revisions WHERE team = ? AND id = ?`, key, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(blob), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
