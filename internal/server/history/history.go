// Package history keeps a persistent journal of finished and in-flight
// sync jobs in SQLite, fed by pipeline events.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tnt-sales/docsync/internal/db"
	"github.com/tnt-sales/docsync/internal/migrate"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_jobs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL, -- RFC3339
    finished_at TEXT,
    total INTEGER NOT NULL,
    succeeded INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sync_job_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id TEXT NOT NULL REFERENCES sync_jobs(id),
    file_name TEXT NOT NULL,
    outcome TEXT NOT NULL, -- succeeded | failed
    stage TEXT,
    error TEXT,
    recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_job_files_job ON sync_job_files(job_id);
`

// JobRecord is one row of the job journal.
type JobRecord struct {
	ID         string  `db:"id" json:"id"`
	StartedAt  string  `db:"started_at" json:"startedAt"`
	FinishedAt *string `db:"finished_at" json:"finishedAt,omitempty"`
	Total      int     `db:"total" json:"total"`
	Succeeded  int     `db:"succeeded" json:"succeeded"`
	Failed     int     `db:"failed" json:"failed"`
}

// FileRecord is the per-file outcome of a journaled job.
type FileRecord struct {
	JobID      string `db:"job_id" json:"jobId"`
	FileName   string `db:"file_name" json:"fileName"`
	Outcome    string `db:"outcome" json:"outcome"`
	Stage      string `db:"stage" json:"stage,omitempty"`
	Error      string `db:"error" json:"error,omitempty"`
	RecordedAt string `db:"recorded_at" json:"recordedAt"`
}

// Journal records job outcomes in SQLite. It implements migrate.EventSink;
// journal write failures are logged and dropped so they never stall a
// running job.
type Journal struct {
	db     *sqlx.DB
	dbPath string
}

func NewJournal(dbPath string) *Journal {
	return &Journal{dbPath: dbPath}
}

// Open connects to the journal database and initializes the schema.
func (j *Journal) Open() error {
	if j.db != nil {
		return fmt.Errorf("journal already open")
	}

	database, err := db.NewSqliteDB(db.WithPath(j.dbPath), db.WithMaxOpenConns(1))
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	if _, err := database.Exec(schema); err != nil {
		database.Close()
		return fmt.Errorf("initialize journal schema: %w", err)
	}

	j.db = database
	return nil
}

func (j *Journal) Close() error {
	if j.db == nil {
		return fmt.Errorf("journal not open")
	}
	return j.db.Close()
}

// Publish maps pipeline events to journal rows.
func (j *Journal) Publish(event *migrate.Event) {
	var err error
	switch event.Type {
	case migrate.EventJobStarted:
		_, err = j.db.Exec(
			`INSERT INTO sync_jobs (id, started_at, total) VALUES (?, ?, ?)`,
			event.JobID, event.Time.Format(time.RFC3339), event.Progress.Total,
		)
	case migrate.EventItemSucceeded:
		err = j.recordFile(event, "succeeded")
	case migrate.EventItemFailed:
		err = j.recordFile(event, "failed")
	case migrate.EventJobFinished:
		_, err = j.db.Exec(
			`UPDATE sync_jobs SET finished_at = ?, succeeded = ?, failed = ? WHERE id = ?`,
			event.Time.Format(time.RFC3339),
			len(event.Progress.Completed), len(event.Progress.Failed),
			event.JobID,
		)
	}

	if err != nil {
		slog.Error("journal write failed", "type", event.Type, "jobId", event.JobID, "error", err)
	}
}

func (j *Journal) recordFile(event *migrate.Event, outcome string) error {
	_, err := j.db.Exec(
		`INSERT INTO sync_job_files (job_id, file_name, outcome, stage, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.JobID, event.Item, outcome, string(event.Stage), event.Error,
		event.Time.Format(time.RFC3339),
	)
	return err
}

// Recent returns the latest jobs, newest first.
func (j *Journal) Recent(limit int) ([]JobRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records := []JobRecord{}
	err := j.db.Select(&records,
		`SELECT id, started_at, finished_at, total, succeeded, failed
		 FROM sync_jobs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	return records, nil
}

// Job returns a single journaled job, or nil if unknown.
func (j *Journal) Job(jobID string) (*JobRecord, error) {
	var record JobRecord
	err := j.db.Get(&record,
		`SELECT id, started_at, finished_at, total, succeeded, failed
		 FROM sync_jobs WHERE id = ?`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query job %s: %w", jobID, err)
	}
	return &record, nil
}

// Files returns the per-file outcomes of a job in the order they settled.
func (j *Journal) Files(jobID string) ([]FileRecord, error) {
	records := []FileRecord{}
	err := j.db.Select(&records,
		`SELECT job_id, file_name, outcome, stage, error, recorded_at
		 FROM sync_job_files WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("query job files %s: %w", jobID, err)
	}
	return records, nil
}
