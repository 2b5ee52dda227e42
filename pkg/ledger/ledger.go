// Package ledger is the durable record of which documents have been
// analyzed and with what result, backed by SQLite. A document identity
// is either unseen (no row) or analyzed (row present); re-analysis
// overwrites the row atomically so readers never observe a half-updated
// entry.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const DefaultName = "bookdepth.db"

type Ledger struct {
	*sql.DB
	path      string
	recovered bool
}

// openDB opens a SQLite database at the given path.
func openDB(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return sqlDB, nil
}

// Open opens or creates the ledger at path. A store that exists but
// cannot be parsed as a SQLite database is sidelined to
// "<path>.corrupt-<timestamp>" and replaced with a fresh one; the run
// continues with every document unseen, and Recovered reports true so
// the caller can surface a warning. Only I/O failures are returned as
// errors.
func Open(path string) (*Ledger, error) {
	led, err := open(path)
	if err == nil {
		return led, nil
	}
	if !isCorrupt(err) {
		return nil, err
	}

	sidelined := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
	if renameErr := os.Rename(path, sidelined); renameErr != nil {
		return nil, fmt.Errorf("failed to sideline corrupt ledger: %w", renameErr)
	}

	led, err = open(path)
	if err != nil {
		return nil, err
	}
	led.recovered = true
	return led, nil
}

func open(path string) (*Ledger, error) {
	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	led := &Ledger{DB: sqlDB, path: path}
	if err := led.ensureSchemaExists(); err != nil {
		_ = led.Close()
		return nil, err
	}
	return led, nil
}

// ensureSchemaExists checks if the schema exists and initializes it if not.
func (l *Ledger) ensureSchemaExists() error {
	var tableName string
	err := l.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='books'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return l.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check ledger schema: %w", err)
	}
	return nil
}

// InitSchema initializes the ledger schema.
func (l *Ledger) InitSchema() error {
	if _, err := l.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return nil
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Recovered reports whether Open had to discard a corrupt store.
func (l *Ledger) Recovered() bool {
	return l.recovered
}

// isCorrupt recognizes the SQLite errors that mean the file on disk is
// not a usable database, as opposed to an I/O failure.
func isCorrupt(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "file is not a database") ||
		strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is encrypted")
}
