// Package storage persists the ledger in a single SQLite file. All
// entity relationships are by value (matching text and dates), never by
// foreign key; deleting a category leaves transactions referencing its
// name untouched.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Repository is the ledger store. The database location is injected at
// construction; nothing in this package reaches for ambient state.
type Repository struct {
	db   *sql.DB
	path string
}

// Open creates the database file if needed, applies pending migrations
// and returns a ready repository.
func Open(dbPath string) (*Repository, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, path: dbPath}, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Path returns the location of the underlying database file.
func (r *Repository) Path() string {
	return r.path
}

// BackupTo streams a raw copy of the database file to w.
func (r *Repository) BackupTo(w io.Writer) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy database file: %w", err)
	}
	return nil
}

// Restore replaces the entire store with the bytes read from rd. The
// current handle is closed, the file overwritten wholesale (no merge),
// and the database reopened.
func (r *Repository) Restore(rd io.Reader) error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("overwrite database file: %w", err)
	}
	if _, err := io.Copy(f, rd); err != nil {
		f.Close()
		return fmt.Errorf("write database file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close database file: %w", err)
	}

	db, err := openDB(r.path)
	if err != nil {
		return fmt.Errorf("reopen database: %w", err)
	}
	r.db = db
	return nil
}
