package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcherReportsChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	paths := Paths{BaseDir: dir}
	require.NoError(t, os.MkdirAll(paths.TeamDir(), 0o755))

	changed := make(chan string, 8)
	w := NewWatcher(paths, 20*time.Millisecond, func(p string) { changed <- p }, zap.NewNop())
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()), "second start is a no-op")

	target := paths.TeamPath("u12")
	require.NoError(t, os.WriteFile(target, []byte("version: \"3\"\n"), 0o644))
	// non-YAML files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-changed:
		require.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	w.Stop()
	w.Stop()
}

func TestWatcherStopsOnContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(Paths{BaseDir: t.TempDir()}, 10*time.Millisecond, nil, nil)
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w := NewWatcher(Paths{BaseDir: t.TempDir()}, time.Millisecond, nil, nil)
	w.Stop()
}
