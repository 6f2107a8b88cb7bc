package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/utils"
)

// Orchestrator drives the per-file pipeline over a job's items, strictly
// sequentially. Both external services are token-gated and rate sensitive;
// one file fully settles before the next begins, which also keeps the
// progress record trivially consistent.
type Orchestrator struct {
	drive DriveClient
	store StoreClient
	sink  EventSink
}

func NewOrchestrator(drive DriveClient, store StoreClient, sink EventSink) *Orchestrator {
	return &Orchestrator{
		drive: drive,
		store: store,
		sink:  sink,
	}
}

// Run processes every item of the job and returns the terminal progress
// record. Per-file failures are recorded and never abort the job; only
// cancellation stops it early, and then only between stages. Not reentrant
// for the same job.
func (o *Orchestrator) Run(ctx context.Context, job *Job) ProgressSnapshot {
	log := slog.With("job", job.ID)
	log.Info("sync job start", "files", len(job.Items), "archiveParent", job.ArchiveParentID)

	// archive resolutions are valid for this job only
	resolver := NewArchiveResolver(o.drive)

	o.publish(job, &Event{Type: EventJobStarted})

	for _, item := range job.Items {
		if ctx.Err() != nil {
			log.Warn("sync job cancelled", "processed", job.progress.Snapshot().CurrentIndex)
			break
		}

		job.progress.beginItem(item.Name)
		o.runItem(ctx, job, resolver, item, log)
	}

	job.progress.finish()
	snap := job.progress.Snapshot()
	log.Info("sync job done", "summary", snap.Summary())
	o.publish(job, &Event{Type: EventJobFinished})
	return snap
}

// runItem walks one file through the 3-stage state machine. Every stage
// boundary is a cancellation point; a stage itself is never interrupted, so
// an upload either finishes or never starts.
func (o *Orchestrator) runItem(ctx context.Context, job *Job, resolver *ArchiveResolver, item *docsdk.DriveItem, log *slog.Logger) {
	// Queued -> Downloading
	o.enterStage(job, item, StageDownload)
	content, err := o.drive.GetContent(ctx, item.ID)
	if err != nil {
		o.failItem(job, item, StageDownload, err, log)
		return
	}

	// cancellation is honored only between stages, so a stage either runs
	// to completion or never starts
	if ctx.Err() != nil {
		log.Warn("file abandoned on cancel", "file", item.Name, "after", StageDownload)
		return
	}

	// Downloading -> Uploading
	o.enterStage(job, item, StageUpload)
	mimeType := item.MimeType()
	if mimeType == "" {
		mimeType = utils.DetectContentType(item.Name)
	}
	if _, err := o.store.UploadDocument(ctx, content, item.Name, mimeType); err != nil {
		// deliberately not archived: the file must stay visible in the
		// working folder so a later batch can retry it
		o.failItem(job, item, StageUpload, err, log)
		return
	}
	log.Debug("uploaded to store", "file", item.Name, "size", humanize.Bytes(uint64(len(content))))

	if ctx.Err() != nil {
		log.Warn("file abandoned on cancel", "file", item.Name, "after", StageUpload)
		return
	}

	// Uploading -> Archiving; the store already has the file, so an archive
	// failure leaves the upload in place and only the relocation incomplete
	o.enterStage(job, item, StageArchive)
	folder, err := resolver.Resolve(ctx, job.ArchiveParentID)
	if err != nil {
		o.failItem(job, item, StageArchive, err, log)
		return
	}
	if _, err := o.drive.MoveItem(ctx, item.ID, folder.ID, true); err != nil {
		o.failItem(job, item, StageArchive, err, log)
		return
	}

	// Archiving -> Succeeded
	job.setState(item.ID, ItemSucceeded)
	job.progress.completeItem(item.Name)
	log.Info("file migrated", "file", item.Name, "size", humanize.Bytes(uint64(len(content))))
	o.publish(job, &Event{Type: EventItemSucceeded, Item: item.Name})
}

func (o *Orchestrator) failItem(job *Job, item *docsdk.DriveItem, stage Stage, err error, log *slog.Logger) {
	job.setState(item.ID, ItemFailed)
	annotated := job.progress.failItem(item.Name, stage)
	log.Warn("file failed", "file", item.Name, "stage", stage, "error", err)
	o.publish(job, &Event{
		Type:  EventItemFailed,
		Item:  annotated,
		Stage: stage,
		Error: fmt.Sprint(err),
	})
}

func (o *Orchestrator) enterStage(job *Job, item *docsdk.DriveItem, stage Stage) {
	job.setState(item.ID, stageState(stage))
	o.publish(job, &Event{Type: EventItemStage, Item: item.Name, Stage: stage})
}

func (o *Orchestrator) publish(job *Job, event *Event) {
	if o.sink == nil {
		return
	}
	event.JobID = job.ID
	event.Progress = job.progress.Snapshot()
	event.Time = time.Now().UTC()
	o.sink.Publish(event)
}
