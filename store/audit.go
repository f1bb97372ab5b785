// Package store keeps a local SQLite audit trail of review actions so
// operators can see what this console submitted even when the backend is
// unreachable. Strictly best-effort: the console works without it.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/domain/review"
)

const schema = `
CREATE TABLE IF NOT EXISTS review_audit (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	detection_id TEXT    NOT NULL,
	action       TEXT    NOT NULL,
	status       TEXT    NOT NULL,
	note         TEXT    NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_review_audit_created ON review_audit(created_at);
`

type auditRow struct {
	ID          int64     `db:"id"`
	DetectionID string    `db:"detection_id"`
	Action      string    `db:"action"`
	Status      string    `db:"status"`
	Note        string    `db:"note"`
	CreatedAt   time.Time `db:"created_at"`
}

// AuditStore wraps the SQLite connection. Implements review.Auditor.
type AuditStore struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the audit database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*AuditStore, error) {
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &AuditStore{db: db}, nil
}

// Close releases the underlying connection.
func (s *AuditStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records one completed review action.
func (s *AuditStore) Append(ctx context.Context, rec review.Record) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("audit store not open")
	}
	row := auditRow{
		DetectionID: rec.DetectionID,
		Action:      rec.Action,
		Status:      string(rec.Status),
		Note:        rec.Note,
		CreatedAt:   rec.At.UTC(),
	}
	const q = `
		INSERT INTO review_audit (detection_id, action, status, note, created_at)
		VALUES (:detection_id, :action, :status, :note, :created_at)
	`
	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		return fmt.Errorf("append review audit: %w", err)
	}
	return nil
}

// Recent returns the newest records, newest first.
func (s *AuditStore) Recent(ctx context.Context, limit int) ([]review.Record, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("audit store not open")
	}
	if limit <= 0 {
		limit = 20
	}
	var rows []auditRow
	const q = `
		SELECT id, detection_id, action, status, note, created_at
		FROM review_audit
		ORDER BY id DESC
		LIMIT ?
	`
	if err := s.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("list review audit: %w", err)
	}
	out := make([]review.Record, len(rows))
	for i, r := range rows {
		out[i] = review.Record{
			DetectionID: r.DetectionID,
			Action:      r.Action,
			Status:      detection.ReviewStatus(r.Status),
			Note:        r.Note,
			At:          r.CreatedAt,
		}
	}
	return out, nil
}
