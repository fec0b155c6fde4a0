package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches the config dir (and its teams/ subdir) for YAML changes and
// triggers a callback per changed file once writes settle.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	onChange func(string) // called with path that changed
	logger   *zap.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the loader layout under paths.
func NewWatcher(paths Paths, debounce time.Duration, onChange func(string), logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		dirs:     []string{paths.BaseDir, paths.TeamDir()},
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching in a goroutine. Directories that do not exist yet are
// skipped. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	watched := 0
	for _, dir := range w.dirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return err
		}
		watched++
	}
	w.logger.Debug("config watcher started", zap.Strings("dirs", w.dirs), zap.Int("watched", watched))

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.loop(ctx, fsw, w.stopCh, w.doneCh)
	return nil
}

// Stop terminates the watcher and waits for its goroutine.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done, fsw := w.doneCh, w.fsw
	w.mu.Unlock()

	<-done
	_ = fsw.Close()
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, stop, done chan struct{}) {
	defer close(done)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !isYAML(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			for _, p := range paths {
				w.logger.Info("config changed", zap.String("path", p))
				if w.onChange != nil {
					w.onChange(p)
				}
			}
		}
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
