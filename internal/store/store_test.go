package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := Open("file", filepath.Join(t.TempDir(), "states"))
	require.NoError(t, err)
	sq, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		fs.Close()
		sq.Close()
	})
	return map[string]Store{"file": fs, "sqlite": sq}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(ctx, "u12")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Save(ctx, "u12", []byte(`{"currentGame":1}`)))
			require.NoError(t, s.Save(ctx, "u12", []byte(`{"currentGame":2}`)))
			got, err := s.Load(ctx, "u12")
			require.NoError(t, err)
			assert.JSONEq(t, `{"currentGame":2}`, string(got))

			// teams are independent; "" is the default team
			require.NoError(t, s.Save(ctx, "", []byte(`{}`)))
			got, err = s.Load(ctx, "default")
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got))

			require.NoError(t, s.Delete(ctx, "u12"))
			_, err = s.Load(ctx, "u12")
			require.ErrorIs(t, err, ErrNotFound)
			require.NoError(t, s.Delete(ctx, "u12"), "deleting nothing is fine")

			hist, err := s.History(ctx, "u12", 0)
			require.NoError(t, err)
			assert.Empty(t, hist)
		})
	}
}

func TestStoreRejectsBadTeam(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, team := range []string{"../x", "a/b", `a\b`, ".hidden"} {
				assert.ErrorIs(t, s.Save(ctx, team, []byte(`{}`)), ErrInvalidTeam, team)
				_, err := s.Load(ctx, team)
				assert.ErrorIs(t, err, ErrInvalidTeam, team)
			}
		})
	}
}

func TestSQLiteHistory(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	for _, blob := range []string{`{"v":1}`, `{"v":2}`, `{"v":3}`} {
		require.NoError(t, s.Save(ctx, "u12", []byte(blob)))
	}
	require.NoError(t, s.Save(ctx, "other", []byte(`{}`)))

	hist, err := s.History(ctx, "u12", 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, "u12", hist[0].Team)
	assert.Equal(t, len(`{"v":3}`), hist[0].Size)
	assert.False(t, hist[0].CreatedAt.IsZero())
	assert.NotEqual(t, hist[0].ID, hist[1].ID)

	oldest, err := s.Revision(ctx, "u12", hist[2].ID)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(oldest))

	limited, err := s.History(ctx, "u12", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, hist[0].ID, limited[0].ID)

	_, err = s.Revision(ctx, "other", hist[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLitePersistsToDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "rotation.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "u12", []byte(`{"a":1}`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, "u12")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestFileStoreHistory(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	hist, err := s.History(ctx, "u12", 0)
	require.NoError(t, err)
	assert.Empty(t, hist)

	require.NoError(t, s.Save(ctx, "u12", []byte(`{"v":1}`)))
	hist, err = s.History(ctx, "u12", 5)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, currentRevision, hist[0].ID)
	assert.Equal(t, 7, hist[0].Size)

	got, err := s.Revision(ctx, "u12", currentRevision)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(got))
	_, err = s.Revision(ctx, "u12", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "x")
	assert.ErrorContains(t, err, `unknown store driver "postgres"`)
}
