package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Timtam/kk-browser/pkg/types"
)

// Store is a read-only handle on the browser database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path read-only. The file must already exist;
// a missing file is reported as an error so the caller can surface the
// "database not found" status instead of creating an empty database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("browser database %s: %w", path, types.ErrNoDatabase)
		}
		return nil, fmt.Errorf("stat browser database: %w", err)
	}

	// immutable=1: the host application may hold the file open; we promise
	// SQLite we never see it change while our handle is open.
	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", path)
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open browser database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping browser database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DefaultPath returns the per-OS location of komplete.db3.
func DefaultPath() (string, error) {
	const suffix = "Native Instruments/Komplete Kontrol/Browser Data/komplete.db3"

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", filepath.FromSlash(suffix)), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(local, filepath.FromSlash(suffix)), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, filepath.FromSlash(suffix)), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", filepath.FromSlash(suffix)), nil
	}
}
