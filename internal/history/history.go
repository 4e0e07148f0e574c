// Package history keeps a local ledger of completed save operations in a
// SQLite database. It is the queryable record behind `nox history` and the
// hand-off point for any external production-tracking sync.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// Record is one completed save.
type Record struct {
	ID          int64
	OperationID string
	Show        string
	Sequence    string
	Entity      string
	Task        string
	Version     int
	Extension   string
	DCC         string
	Path        string
	SizeBytes   int64
	SavedAt     time.Time
}

// Store wraps the ledger database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the ledger at path, applying the schema and
// verifying the schema version. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	var current int
	err := s.db.QueryRow(`SELECT version FROM schema_info LIMIT 1`).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.Exec(`INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case current != schemaVersion:
		return fmt.Errorf("history database schema version %d, expected %d", current, schemaVersion)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add appends a record and returns its row id.
func (s *Store) Add(ctx context.Context, rec Record) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (operation_id, show, sequence, entity, task, version, extension, dcc, path, size_bytes, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.OperationID, rec.Show, rec.Sequence, rec.Entity, rec.Task, rec.Version,
		rec.Extension, rec.DCC, rec.Path, rec.SizeBytes, rec.SavedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("record save: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record save: %w", err)
	}
	return id, nil
}

const selectColumns = `id, operation_id, show, sequence, entity, task, version, extension, dcc, path, size_bytes, saved_at`

// List returns the most recent saves, newest first. A limit of 0 or less
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT ` + selectColumns + ` FROM saves ORDER BY saved_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ForEntity returns every save for one (entity, task) pair, newest first.
func (s *Store) ForEntity(ctx context.Context, entity, task string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM saves WHERE entity = ? AND task = ? ORDER BY version DESC, id DESC`,
		entity, task)
	if err != nil {
		return nil, fmt.Errorf("list saves for %s/%s: %w", entity, task, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var savedAt string
		if err := rows.Scan(&rec.ID, &rec.OperationID, &rec.Show, &rec.Sequence, &rec.Entity,
			&rec.Task, &rec.Version, &rec.Extension, &rec.DCC, &rec.Path, &rec.SizeBytes, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse save timestamp %q: %w", savedAt, err)
		}
		rec.SavedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate save records: %w", err)
	}
	return records, nil
}
