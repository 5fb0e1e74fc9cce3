// Package audit keeps an append-only journal of state changes in SQLite.
// The journal is operational tooling: domain state lives in memory and
// is never read back from here.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one journal record.
type Entry struct {
	ID         int64
	Entity     string
	EntityID   string
	Action     string
	Detail     string
	RecordedAt time.Time
}

// Recorder appends journal entries. A nil Recorder is valid and drops
// every write, so callers never need to branch on whether auditing is on.
type Recorder struct {
	db *sql.DB
}

func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS audit_log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			entity      TEXT NOT NULL,
			entity_id   TEXT NOT NULL,
			action      TEXT NOT NULL,
			detail      TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity, entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_recorded ON audit_log(recorded_at)`,
	}
}

// Open creates or opens a journal at dir/audit.db. An empty dir opens an
// in-memory journal that lives for the life of the process.
func Open(dir string) (*Recorder, error) {
	dsn := ":memory:"
	if dir != "" {
		dsn = filepath.Join(dir, "audit.db")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit journal: %w", err)
	}
	// modernc sqlite serializes writes itself but a single connection
	// avoids table-lock errors under concurrent recorders.
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate audit journal: %w", err)
		}
	}
	return &Recorder{db: db}, nil
}

// Close releases the underlying database.
func (r *Recorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Record appends one entry. Errors are returned but callers normally
// treat them as non-fatal: the journal must never block domain work.
func (r *Recorder) Record(ctx context.Context, entity, entityID, action, detail string) error {
	if r == nil || r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (entity, entity_id, action, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, entity, entityID, action, detail, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Recent returns the newest entries, most recent first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity, entity_id, action, detail, recorded_at
		FROM audit_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recorded string
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.Detail, &recorded); err != nil {
			return nil, err
		}
		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, recorded)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByEntity returns how many entries exist for an entity kind.
func (r *Recorder) CountByEntity(ctx context.Context, entity string) (int, error) {
	if r == nil || r.db == nil {
		return 0, nil
	}
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM audit_log WHERE entity = ?
	`, entity).Scan(&count)
	return count, err
}
