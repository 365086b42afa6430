package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config selects and locates the structured store.
type Config struct {
	// Driver forces a backend. Empty or "auto" detects it from URL.
	Driver Driver

	// URL is the PostgreSQL connection string, or a SQLite URL.
	URL string

	// SQLitePath is the database file for DriverSQLite.
	// Defaults to ~/.dayline/dayline.db.
	SQLitePath string
}

// Opener opens a connection for one driver.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var (
	openersMu sync.RWMutex
	openers   = map[Driver]Opener{}
)

// Register makes a driver available to NewConnection. Driver packages call
// it from init, so importing them for side effects is enough.
func Register(driver Driver, open Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	openers[driver] = open
}

// NewConnection opens the backend cfg describes.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" || driver == "auto" {
		driver = DetectDriver(cfg.URL)
	}

	openersMu.RLock()
	open, ok := openers[driver]
	openersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("database driver %q not registered", driver)
	}
	return open(ctx, cfg)
}

// DefaultSQLitePath is where the local database lives when nothing else is
// configured.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dayline", "dayline.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
