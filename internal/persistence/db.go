// Package persistence provides a SQLite archive for the audit trail.
// Rows hold the same rendered line the text log would, so read-back goes
// through the same parser and corruption handling.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/econsim/internal/audit"
)

// AuditDB wraps a SQLite connection holding the audit trail.
type AuditDB struct {
	conn *sqlx.DB
}

var _ audit.Store = (*AuditDB)(nil)

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*AuditDB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", audit.ErrStorageFailure, err)
	}
	// One writer keeps appends in arrival order.
	conn.SetMaxOpenConns(1)

	db := &AuditDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: migrate: %w", audit.ErrStorageFailure, err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *AuditDB) Close() error {
	return db.conn.Close()
}

func (db *AuditDB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at TEXT NOT NULL,
		action TEXT NOT NULL,
		value INTEGER NOT NULL,
		impact TEXT NOT NULL,
		line TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Append inserts one entry.
func (db *AuditDB) Append(ctx context.Context, e audit.Entry) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO audit_log (recorded_at, action, value, impact, line) VALUES (?, ?, ?, ?, ?)",
		e.Timestamp.Local().Format(audit.TimestampLayout), e.Action, e.Value, e.Impact,
		strings.TrimRight(audit.Format(e), "\n"),
	)
	if err != nil {
		return fmt.Errorf("%w: insert audit entry: %w", audit.ErrStorageFailure, err)
	}
	return nil
}

// Entries returns the trail in insertion order.
func (db *AuditDB) Entries(ctx context.Context) ([]audit.Entry, error) {
	var lines []string
	if err := db.conn.SelectContext(ctx, &lines, "SELECT line FROM audit_log ORDER BY id"); err != nil {
		return nil, fmt.Errorf("%w: select audit log: %w", audit.ErrStorageFailure, err)
	}
	return audit.Decode(lines), nil
}

// Clear deletes every row.
func (db *AuditDB) Clear(ctx context.Context) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM audit_log")
	if err != nil {
		return fmt.Errorf("%w: clear audit log: %w", audit.ErrStorageFailure, err)
	}
	if n, err := res.RowsAffected(); err == nil {
		slog.Info("audit archive cleared", "rows", n)
	}
	return nil
}

// CountByAction tallies entries per action, for the operator summary.
func (db *AuditDB) CountByAction(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Action string `db:"action"`
		Count  int    `db:"n"`
	}
	if err := db.conn.SelectContext(ctx, &rows,
		"SELECT action, COUNT(*) AS n FROM audit_log GROUP BY action ORDER BY action"); err != nil {
		return nil, fmt.Errorf("%w: count audit log: %w", audit.ErrStorageFailure, err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Action] = r.Count
	}
	return out, nil
}
