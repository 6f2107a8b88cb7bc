package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnt-sales/docsync/internal/migrate"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j := NewJournal(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, j.Open())
	t.Cleanup(func() { j.Close() })
	return j
}

func publishJob(j *Journal, jobID string, startedAt time.Time) {
	j.Publish(&migrate.Event{
		Type:     migrate.EventJobStarted,
		JobID:    jobID,
		Progress: migrate.ProgressSnapshot{Total: 2},
		Time:     startedAt,
	})
	j.Publish(&migrate.Event{
		Type:     migrate.EventItemSucceeded,
		JobID:    jobID,
		Item:     "a.pdf",
		Progress: migrate.ProgressSnapshot{Total: 2},
		Time:     startedAt.Add(time.Second),
	})
	j.Publish(&migrate.Event{
		Type:     migrate.EventItemFailed,
		JobID:    jobID,
		Item:     "b.pdf",
		Stage:    migrate.StageUpload,
		Error:    "store rejected",
		Progress: migrate.ProgressSnapshot{Total: 2},
		Time:     startedAt.Add(2 * time.Second),
	})
	j.Publish(&migrate.Event{
		Type:  migrate.EventJobFinished,
		JobID: jobID,
		Progress: migrate.ProgressSnapshot{
			Total:     2,
			Completed: []string{"a.pdf"},
			Failed:    []string{"b.pdf (upload failed)"},
			Done:      true,
		},
		Time: startedAt.Add(3 * time.Second),
	})
}

func TestJournalRecordsJobLifecycle(t *testing.T) {
	j := openTestJournal(t)
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	publishJob(j, "job-1", started)

	record, err := j.Job("job-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 2, record.Total)
	assert.Equal(t, 1, record.Succeeded)
	assert.Equal(t, 1, record.Failed)
	require.NotNil(t, record.FinishedAt)

	files, err := j.Files("job-1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.pdf", files[0].FileName)
	assert.Equal(t, "succeeded", files[0].Outcome)
	assert.Equal(t, "b.pdf", files[1].FileName)
	assert.Equal(t, "failed", files[1].Outcome)
	assert.Equal(t, "upload", files[1].Stage)
	assert.Equal(t, "store rejected", files[1].Error)
}

func TestJournalRecentNewestFirst(t *testing.T) {
	j := openTestJournal(t)
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	publishJob(j, "job-old", base)
	publishJob(j, "job-new", base.Add(time.Hour))

	records, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "job-new", records[0].ID)
	assert.Equal(t, "job-old", records[1].ID)

	records, err = j.Recent(1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestJournalUnknownJob(t *testing.T) {
	j := openTestJournal(t)

	record, err := j.Job("nope")
	require.NoError(t, err)
	assert.Nil(t, record)

	files, err := j.Files("nope")
	require.NoError(t, err)
	assert.Empty(t, files)
}
