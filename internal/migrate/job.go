package migrate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/identity"
)

// Job is one pipeline run over a snapshot of the selection set. Files are
// archived relative to the folder that was open when the job started - the
// UI only offers batch-selecting files from a single open folder.
type Job struct {
	ID              string
	Items           []*docsdk.DriveItem
	ArchiveParentID string
	StartedAt       time.Time

	progress *Progress

	mu     sync.Mutex
	states map[string]ItemState
}

// NewJob seeds a job from a selection snapshot. The snapshot fixes both
// membership and processing order.
func NewJob(items []*docsdk.DriveItem, archiveParentID string) (*Job, error) {
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}

	states := make(map[string]ItemState, len(items))
	for _, item := range items {
		states[item.ID] = ItemQueued
	}

	return &Job{
		ID:              uuid.NewString(),
		Items:           items,
		ArchiveParentID: archiveParentID,
		StartedAt:       time.Now().UTC(),
		progress:        newProgress(len(items)),
		states:          states,
	}, nil
}

// Progress returns a point-in-time copy of the job's progress record.
func (j *Job) Progress() ProgressSnapshot {
	return j.progress.Snapshot()
}

func (j *Job) setState(itemID string, state ItemState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.states[itemID] = state
}

// State returns the pipeline state of one item.
func (j *Job) State(itemID string) ItemState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.states[itemID]
}

// States returns a copy of the per-item state vector, keyed by item id.
func (j *Job) States() map[string]ItemState {
	j.mu.Lock()
	defer j.mu.Unlock()
	states := make(map[string]ItemState, len(j.states))
	for id, state := range j.states {
		states[id] = state
	}
	return states
}

// Runner enforces the one-job-at-a-time policy and owns the lifecycle of the
// running job's goroutine. The previous job's progress stays readable until
// the next one starts.
type Runner struct {
	orch   *Orchestrator
	tokens identity.TokenProvider

	mu      sync.Mutex
	current *Job
	cancel  context.CancelFunc
	running bool
}

func NewRunner(orch *Orchestrator, tokens identity.TokenProvider) *Runner {
	return &Runner{
		orch:   orch,
		tokens: tokens,
	}
}

// Start launches the job in the background. Fails with ErrJobRunning while
// another job is in flight, and with the token provider's error when no
// token is obtainable - auth problems surface before any file is touched,
// not per file.
func (r *Runner) Start(ctx context.Context, job *Job) error {
	if r.tokens != nil {
		if _, err := r.tokens.Token(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrJobRunning
	}

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.current = job
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
		}()
		r.orch.Run(jobCtx, job)
	}()

	return nil
}

// Cancel requests a stop of the running job. The pipeline checks between
// stages, so the in-flight stage always completes before the job winds down.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running && r.cancel != nil {
		r.cancel()
	}
}

// Running reports whether a job is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Current returns the most recently started job, nil before the first one.
func (r *Runner) Current() *Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
