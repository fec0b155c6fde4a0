package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/team files.
type Paths struct {
	BaseDir string // base directory, e.g., ./config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}

func (p Paths) TeamDir() string {
	return filepath.Join(p.BaseDir, "teams")
}

func (p Paths) TeamPath(team string) string {
	return filepath.Join(p.TeamDir(), team+".yaml")
}

// Loader reads YAML configs and merges default → team.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: team name
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths exposes the file layout the loader reads.
func (l *Loader) Paths() Paths {
	return l.paths
}

// LoadMerged loads and merges default → team. Either file may be missing.
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(team string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[team]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	var teamCfg RawConfig
	if team != "" {
		teamCfg, err = readYAML(l.paths.TeamPath(team))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read team %q: %w", team, err)
		}
	}
	merged := mergeRaw(defCfg, teamCfg)

	l.mu.Lock()
	l.cache[team] = merged
	l.mu.Unlock()

	return merged, nil
}

// Resolve loads, validates and normalizes the config for team, then applies
// overrides (typically command-line flags).
func (l *Loader) Resolve(team string, o Overrides) (RawConfig, Settings, error) {
	raw, err := l.LoadMerged(team)
	if err != nil {
		return RawConfig{}, Settings{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return raw, Settings{}, err
	}
	s := normalize(team, raw)
	o.apply(&s)
	if err := validateSettings(s); err != nil {
		return raw, Settings{}, err
	}
	return raw, s, nil
}

// Invalidate clears loader's cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// For slices (e.g., Roster.Players), 'b' replaces 'a' if provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// roster
	if len(b.Roster.Players) > 0 {
		out.Roster.Players = append([]string(nil), b.Roster.Players...)
	}
	if b.Roster.UseCurated != nil {
		v := *b.Roster.UseCurated
		out.Roster.UseCurated = &v
	}

	// store
	switch {
	case out.Store == nil && b.Store != nil:
		c := *b.Store
		out.Store = &c
	case out.Store != nil && b.Store != nil:
		c := *out.Store
		if b.Store.Driver != "" {
			c.Driver = b.Store.Driver
		}
		if b.Store.Path != "" {
			c.Path = b.Store.Path
		}
		out.Store = &c
	}

	// server
	switch {
	case out.Server == nil && b.Server != nil:
		c := *b.Server
		out.Server = &c
	case out.Server != nil && b.Server != nil:
		c := *out.Server
		if b.Server.HTTPAddr != "" {
			c.HTTPAddr = b.Server.HTTPAddr
		}
		if b.Server.GRPCAddr != "" {
			c.GRPCAddr = b.Server.GRPCAddr
		}
		out.Server = &c
	}

	// log
	switch {
	case out.Log == nil && b.Log != nil:
		c := *b.Log
		out.Log = &c
	case out.Log != nil && b.Log != nil:
		c := *out.Log
		if b.Log.Level != "" {
			c.Level = b.Log.Level
		}
		if b.Log.Development != nil {
			c.Development = b.Log.Development
		}
		out.Log = &c
	}

	return out
}

// normalize fills defaults for everything the files left out.
func normalize(team string, raw RawConfig) Settings {
	s := Settings{
		Team:        team,
		Players:     append([]string(nil), raw.Roster.Players...),
		UseCurated:  true,
		StoreDriver: DriverFile,
		StorePath:   DefaultStorePath,
		HTTPAddr:    DefaultHTTPAddr,
		GRPCAddr:    DefaultGRPCAddr,
		LogLevel:    DefaultLogLevel,
		Version:     raw.Version,
	}
	if raw.Roster.UseCurated != nil {
		s.UseCurated = *raw.Roster.UseCurated
	}
	if raw.Store != nil {
		if raw.Store.Driver != "" {
			s.StoreDriver = raw.Store.Driver
		}
		if raw.Store.Path != "" {
			s.StorePath = raw.Store.Path
		}
	}
	if raw.Server != nil {
		if raw.Server.HTTPAddr != "" {
			s.HTTPAddr = raw.Server.HTTPAddr
		}
		if raw.Server.GRPCAddr != "" {
			s.GRPCAddr = raw.Server.GRPCAddr
		}
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			s.LogLevel = raw.Log.Level
		}
		if raw.Log.Development != nil {
			s.Development = *raw.Log.Development
		}
	}
	return s
}
