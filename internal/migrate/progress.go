package migrate

import (
	"fmt"
	"sync"
)

// ProgressSnapshot is a read-only copy of a job's progress record, safe to
// hand to the UI layer while the job keeps running.
type ProgressSnapshot struct {
	Total           int      `json:"total"`
	CurrentIndex    int      `json:"currentIndex"`
	CurrentFileName string   `json:"currentFileName"`
	Completed       []string `json:"completed"`
	Failed          []string `json:"failed"`
	Done            bool     `json:"done"`
}

// Summary renders the one-line terminal status, e.g. "2 succeeded, 1 failed".
func (p ProgressSnapshot) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed", len(p.Completed), len(p.Failed))
}

// Progress is the mutable per-job progress record. The orchestrator is the
// sole writer; readers get value copies via Snapshot. CurrentIndex counts
// settled items, not the one in flight, and only ever advances.
type Progress struct {
	mu              sync.RWMutex
	total           int
	currentIndex    int
	currentFileName string
	completed       []string
	failed          []string
	done            bool
}

func newProgress(total int) *Progress {
	return &Progress{
		total:     total,
		completed: make([]string, 0, total),
		failed:    make([]string, 0, total),
	}
}

// beginItem marks the named file as in flight.
func (p *Progress) beginItem(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentFileName = name
}

// completeItem settles the in-flight file as fully succeeded.
func (p *Progress) completeItem(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, name)
	p.currentIndex++
}

// failItem settles the in-flight file as failed at the given stage.
func (p *Progress) failItem(name string, stage Stage) string {
	annotated := fmt.Sprintf("%s (%s failed)", name, stage)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed = append(p.failed, annotated)
	p.currentIndex++
	return annotated
}

// finish marks the job terminal and clears the in-flight file name.
func (p *Progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentFileName = ""
	p.done = true
}

// Snapshot returns a deep copy of the record.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := ProgressSnapshot{
		Total:           p.total,
		CurrentIndex:    p.currentIndex,
		CurrentFileName: p.currentFileName,
		Completed:       make([]string, len(p.completed)),
		Failed:          make([]string, len(p.failed)),
		Done:            p.done,
	}
	copy(snap.Completed, p.completed)
	copy(snap.Failed, p.failed)
	return snap
}
