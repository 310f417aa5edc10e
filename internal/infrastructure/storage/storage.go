// Package storage persists solved runs.
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"svw.info/seatplan/internal/ports"
)

// Store is a run store that owns resources.
type Store interface {
	ports.Storage
	Close() error
}

// Open picks a store by driver name: fs, badger or memory.
func Open(driver, path string, logger *slog.Logger) (Store, error) {
	switch driver {
	case "fs":
		return NewFS(path), nil
	case "badger":
		cfg := DefaultBadgerConfig()
		cfg.Path = filepath.Join(path, "badger")
		cfg.Logger = logger
		return OpenBadger(cfg)
	case "memory":
		cfg := InMemoryBadgerConfig()
		cfg.Logger = logger
		return OpenBadger(cfg)
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
