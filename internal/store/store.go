package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/scpsim/scpreport/internal/simlog"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for analyzed-run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded analysis: which log, which caller parameters, and the
// metrics derived from it.
type Run struct {
	ID        string           `json:"id"`
	CreatedAt string           `json:"created_at"` // RFC 3339 UTC
	LogPath   string           `json:"log_path"`
	Params    simlog.RunParams `json:"params"`
	Metrics   simlog.Metrics   `json:"metrics"`
}

// NewRun builds a Run with a fresh uuid and the current UTC time.
func NewRun(logPath string, params simlog.RunParams, m simlog.Metrics) Run {
	return Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		LogPath:   logPath,
		Params:    params,
		Metrics:   m,
	}
}

// Open creates or opens a SQLite database at the given path. Applies the
// required pragmas and the embedded schema; idempotent, safe to call
// repeatedly on the same path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY on concurrent statements.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
