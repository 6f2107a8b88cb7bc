package migrate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/identity"
)

const testParent = "folder-1"

func newTestJob(t *testing.T, names ...string) *Job {
	t.Helper()
	sel := NewSelectionSet()
	for _, name := range names {
		_, err := sel.Toggle(fileItem("id-"+name, name))
		require.NoError(t, err)
	}
	job, err := NewJob(sel.Snapshot(), testParent)
	require.NoError(t, err)
	return job
}

func TestRunAllSucceed(t *testing.T) {
	drive := newFakeDrive()
	drive.children[testParent] = []*docsdk.DriveItem{} // no Archive yet
	store := newFakeStore()
	sink := &recordingSink{}

	job := newTestJob(t, "a.pdf", "b.pdf")
	snap := NewOrchestrator(drive, store, sink).Run(context.Background(), job)

	assert.Equal(t, []string{"a.pdf", "b.pdf"}, snap.Completed)
	assert.Empty(t, snap.Failed)
	assert.Equal(t, 2, snap.CurrentIndex)
	assert.True(t, snap.Done)
	assert.Equal(t, "", snap.CurrentFileName)
	assert.Equal(t, "2 succeeded, 0 failed", snap.Summary())

	// every file uploaded before it was moved, in selection order
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, store.uploadedNames())
	assert.Equal(t, []string{"id-a.pdf", "id-b.pdf"}, drive.movedItems())

	for _, item := range job.Items {
		assert.Equal(t, ItemSucceeded, job.State(item.ID))
	}
}

func TestRunUploadFailureMidBatch(t *testing.T) {
	drive := newFakeDrive()
	store := newFakeStore()
	store.uploadErr["b.pdf"] = errors.New("store rejected")

	job := newTestJob(t, "a.pdf", "b.pdf", "c.pdf")
	snap := NewOrchestrator(drive, store, nil).Run(context.Background(), job)

	assert.Equal(t, []string{"a.pdf", "c.pdf"}, snap.Completed)
	assert.Equal(t, []string{"b.pdf (upload failed)"}, snap.Failed)
	assert.Equal(t, 3, snap.CurrentIndex)

	// the failed file was never archived
	assert.NotContains(t, drive.movedItems(), "id-b.pdf")
	assert.Equal(t, ItemFailed, job.State("id-b.pdf"))
}

func TestRunDownloadFailure(t *testing.T) {
	drive := newFakeDrive()
	drive.contentErr["id-a.pdf"] = errors.New("http 503")
	store := newFakeStore()

	job := newTestJob(t, "a.pdf")
	snap := NewOrchestrator(drive, store, nil).Run(context.Background(), job)

	assert.Equal(t, []string{"a.pdf (download failed)"}, snap.Failed)
	assert.Empty(t, snap.Completed)
	// nothing was uploaded or moved
	assert.Empty(t, store.uploadedNames())
	assert.Empty(t, drive.movedItems())
}

func TestRunArchiveResolutionFailureHitsAllFilesOfParent(t *testing.T) {
	drive := newFakeDrive()
	drive.onCreate = func(string, string, bool) (*docsdk.DriveItem, error) {
		return nil, docsdk.ErrConflict
	}
	// children listing never shows an Archive folder, so resolution fails
	store := newFakeStore()

	job := newTestJob(t, "a.pdf", "b.pdf")
	snap := NewOrchestrator(drive, store, nil).Run(context.Background(), job)

	assert.Equal(t, []string{"a.pdf (archive failed)", "b.pdf (archive failed)"}, snap.Failed)
	assert.Empty(t, snap.Completed)

	// uploads happened and are kept: only the relocation is incomplete
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, store.uploadedNames())
	assert.Empty(t, drive.movedItems())
}

func TestRunArchiveMoveFailure(t *testing.T) {
	drive := newFakeDrive()
	drive.moveErr["id-a.pdf"] = errors.New("locked")
	store := newFakeStore()

	job := newTestJob(t, "a.pdf", "b.pdf")
	snap := NewOrchestrator(drive, store, nil).Run(context.Background(), job)

	assert.Equal(t, []string{"b.pdf"}, snap.Completed)
	assert.Equal(t, []string{"a.pdf (archive failed)"}, snap.Failed)
}

func TestRunMovesWithRenameOnConflict(t *testing.T) {
	drive := newFakeDrive()
	store := newFakeStore()

	job := newTestJob(t, "a.pdf")
	NewOrchestrator(drive, store, nil).Run(context.Background(), job)

	require.Len(t, drive.moveCalls, 1)
	assert.True(t, drive.moveCalls[0].rename)
}

func TestRunProgressIsMonotonic(t *testing.T) {
	drive := newFakeDrive()
	store := newFakeStore()
	store.uploadErr["b.pdf"] = errors.New("boom")
	sink := &recordingSink{}

	job := newTestJob(t, "a.pdf", "b.pdf", "c.pdf")
	NewOrchestrator(drive, store, sink).Run(context.Background(), job)

	last := -1
	for _, event := range sink.all() {
		assert.GreaterOrEqual(t, event.Progress.CurrentIndex, last, "index rewound in %s", event.Type)
		assert.LessOrEqual(t, event.Progress.CurrentIndex, event.Progress.Total)
		last = event.Progress.CurrentIndex
	}
}

func TestRunPartitionInvariant(t *testing.T) {
	drive := newFakeDrive()
	drive.contentErr["id-b.pdf"] = errors.New("gone")
	store := newFakeStore()
	store.uploadErr["c.pdf"] = errors.New("full")

	job := newTestJob(t, "a.pdf", "b.pdf", "c.pdf", "d.pdf")
	snap := NewOrchestrator(drive, store, nil).Run(context.Background(), job)

	assert.Equal(t, snap.Total, len(snap.Completed)+len(snap.Failed))
	seen := map[string]bool{}
	for _, name := range snap.Completed {
		seen[name] = true
	}
	for _, name := range snap.Failed {
		seen[name] = true
	}
	assert.Len(t, seen, snap.Total)
}

func TestRunCancelBetweenItems(t *testing.T) {
	drive := newFakeDrive()
	store := newFakeStore()

	ctx, cancel := context.WithCancel(context.Background())
	store.onUpload = func(fileName string) {
		if fileName == "a.pdf" {
			cancel() // cancel while the first item is mid-pipeline
		}
	}

	job := newTestJob(t, "a.pdf", "b.pdf")
	snap := NewOrchestrator(drive, store, nil).Run(ctx, job)

	// a.pdf finished its upload stage but was abandoned before archiving;
	// b.pdf never started
	assert.Empty(t, snap.Completed)
	assert.Empty(t, snap.Failed)
	assert.True(t, snap.Done)
	assert.Equal(t, []string{"a.pdf"}, store.uploadedNames())
	assert.Empty(t, drive.movedItems())
}

func TestRunnerGuardsSingleJob(t *testing.T) {
	drive := newFakeDrive()
	store := newFakeStore()
	release := make(chan struct{})
	store.onUpload = func(string) { <-release }

	runner := NewRunner(NewOrchestrator(drive, store, nil), nil)

	job := newTestJob(t, "a.pdf")
	require.NoError(t, runner.Start(context.Background(), job))
	assert.True(t, runner.Running())

	second := newTestJob(t, "b.pdf")
	assert.ErrorIs(t, runner.Start(context.Background(), second), ErrJobRunning)

	close(release)
	require.Eventually(t, func() bool { return !runner.Running() }, 2*time.Second, 10*time.Millisecond)
	assert.Same(t, job, runner.Current())

	// a settled job releases the guard
	require.NoError(t, runner.Start(context.Background(), second))
	require.Eventually(t, func() bool { return !runner.Running() }, 2*time.Second, 10*time.Millisecond)
}

func TestRunnerRequiresToken(t *testing.T) {
	runner := NewRunner(NewOrchestrator(newFakeDrive(), newFakeStore(), nil), identity.Static(""))
	job := newTestJob(t, "a.pdf")
	assert.ErrorIs(t, runner.Start(context.Background(), job), identity.ErrAuthRequired)
	assert.False(t, runner.Running())
}

func TestNewJobRejectsEmptySelection(t *testing.T) {
	_, err := NewJob(nil, testParent)
	assert.ErrorIs(t, err, ErrEmptySelection)
}
