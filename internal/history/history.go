// Package history keeps a local record of submitted applications, so the
// CLI can answer "did I already apply to this one" without a round trip.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id INTEGER NOT NULL,
    job_title TEXT NOT NULL DEFAULT '',
    remote_id INTEGER,
    status TEXT NOT NULL DEFAULT 'submitted',
    submitted_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications(job_id);
`

type Record struct {
	ID          int64
	JobID       int
	JobTitle    string
	RemoteID    int
	Status      string
	SubmittedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one submitted application.
func (s *Store) Record(ctx context.Context, jobID int, jobTitle string, remoteID int) (*Record, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (job_id, job_title, remote_id, status, submitted_at) VALUES (?, ?, ?, 'submitted', ?)`,
		jobID, jobTitle, remoteID, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to record application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return &Record{ID: id, JobID: jobID, JobTitle: jobTitle, RemoteID: remoteID, Status: "submitted", SubmittedAt: now}, nil
}

// Applied reports whether a job already has a recorded submission.
func (s *Store) Applied(ctx context.Context, jobID int) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM applications WHERE job_id = ?`, jobID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query history: %w", err)
	}
	return count > 0, nil
}

// List returns all records, most recent first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, job_title, remote_id, status, submitted_at FROM applications ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var ts int64
		if err := rows.Scan(&r.ID, &r.JobID, &r.JobTitle, &r.RemoteID, &r.Status, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		r.SubmittedAt = time.UnixMilli(ts).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
