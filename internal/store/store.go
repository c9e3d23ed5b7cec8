// Package store persists captured field state as snapshots in SQLite.
// A snapshot records, for one object kind, the JSON encoding of each
// captured field; restoring it writes the values back through field
// wrappers.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFileName is the database file created under Config.DataDir.
const DBFileName = "fishbones.db"

// Store lifecycle and lookup errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("snapshot not found")
	ErrInvalidID       = errors.New("invalid snapshot ID")
	ErrInvalidKind     = errors.New("snapshot kind must not be empty")
	ErrDataDirEmpty    = errors.New("data directory must not be empty")
)

// Config holds the parameters for Store.Attach.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is usable.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

// Store is a SQLite-backed snapshot store. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   Config
	db       *sql.DB
}

// NewStore creates a detached Store; call Attach before use.
func NewStore() *Store {
	return &Store{}
}

// Attach opens (creating if needed) the database under config.DataDir and
// ensures the schema exists. Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, DBFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	s.attached = false
	return nil
}

// Attached reports whether the store is attached.
func (s *Store) Attached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attached
}

// newID generates a UUID v7 snapshot ID.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
