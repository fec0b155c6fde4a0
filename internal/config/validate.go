package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// roster.players
	for i, name := range cfg.Roster.Players {
		if len(name) > 64 {
			errs = append(errs, fmt.Sprintf("roster.players[%d] must be at most 64 bytes", i))
		}
	}

	// store
	if cfg.Store != nil {
		switch cfg.Store.Driver {
		case "", DriverFile, DriverSQLite:
		default:
			errs = append(errs, "store.driver must be one of: file, sqlite")
		}
	}

	// log
	if cfg.Log != nil && cfg.Log.Level != "" {
		if _, err := zap.ParseAtomicLevel(cfg.Log.Level); err != nil {
			errs = append(errs, fmt.Sprintf("log.level %q is not a zap level", cfg.Log.Level))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// validateSettings re-checks the values overrides can change.
func validateSettings(s Settings) error {
	var errs []string
	switch s.StoreDriver {
	case DriverFile, DriverSQLite:
	default:
		errs = append(errs, "store driver must be one of: file, sqlite")
	}
	if s.StorePath == "" {
		errs = append(errs, "store path must not be empty")
	}
	if _, err := zap.ParseAtomicLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("log level %q is not a zap level", s.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
