package migrate

import "errors"

var (
	// ErrRemoteUnavailable wraps navigation failures (listing or token
	// acquisition). Surfaced to the UI without automatic retry - a silent
	// retry loop would re-trigger interactive auth prompts.
	ErrRemoteUnavailable = errors.New("migrate: remote directory unavailable")

	// ErrArchiveResolution means the archive folder could neither be found
	// nor created, even after the post-conflict re-read. Affects every file
	// sharing that parent in the current job, never the job itself.
	ErrArchiveResolution = errors.New("migrate: archive folder resolution failed")

	// ErrJobRunning guards the single-job policy.
	ErrJobRunning = errors.New("migrate: a sync job is already running")

	// ErrEmptySelection rejects starting a job with nothing selected.
	ErrEmptySelection = errors.New("migrate: selection is empty")

	// precondition violations
	ErrNotFolder = errors.New("migrate: item is not a folder")
	ErrNotFile   = errors.New("migrate: item is not a file")
)
