// Package sync drives the selection set and the batch pipeline over HTTP.
package sync

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/migrate"
	"github.com/tnt-sales/docsync/internal/server/history"
	"github.com/tnt-sales/docsync/internal/server/middlewares"
	"github.com/tnt-sales/docsync/internal/server/v1/api"
)

type Handler struct {
	runner  *migrate.Runner
	journal *history.Journal
}

func New(runner *migrate.Runner, journal *history.Journal) *Handler {
	return &Handler{
		runner:  runner,
		journal: journal,
	}
}

type selectRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type globRequest struct {
	Pattern string `json:"pattern" binding:"required"`
}

type selectionResponse struct {
	Items []*docsdk.DriveItem `json:"items"`
	Count int                 `json:"count"`
}

// Toggle flips one file in or out of the selection set.
func (h *Handler) Toggle(ctx *gin.Context) {
	var req selectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	s := middlewares.GetSession(ctx)
	var item *docsdk.DriveItem
	for _, candidate := range s.Nav.Items() {
		if candidate.ID == req.ItemID {
			item = candidate
			break
		}
	}
	if item == nil {
		api.AbortWithError(ctx, http.StatusNotFound, api.CodeNotFound,
			fmt.Errorf("item %s is not in the current folder", req.ItemID))
		return
	}

	selected, err := s.Selection.Toggle(item)
	if err != nil {
		api.AbortDomainError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, gin.H{
		"selected": selected,
		"count":    s.Selection.Len(),
	})
}

// SelectGlob adds every file of the current listing whose name matches
// the glob pattern.
func (h *Handler) SelectGlob(ctx *gin.Context) {
	var req globRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	s := middlewares.GetSession(ctx)
	added, err := s.Selection.SelectMatching(s.Nav.Items(), req.Pattern)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	ctx.PureJSON(http.StatusOK, gin.H{
		"added": added,
		"count": s.Selection.Len(),
	})
}

// Selection returns the current selection in pick order.
func (h *Handler) Selection(ctx *gin.Context) {
	s := middlewares.GetSession(ctx)
	items := s.Selection.Snapshot()
	ctx.PureJSON(http.StatusOK, selectionResponse{
		Items: items,
		Count: len(items),
	})
}

// ClearSelection empties the selection set.
func (h *Handler) ClearSelection(ctx *gin.Context) {
	s := middlewares.GetSession(ctx)
	s.Selection.Clear()
	ctx.PureJSON(http.StatusOK, gin.H{"count": 0})
}

// Start snapshots the selection into a job and launches it. The selection
// is cleared once the job is accepted; the snapshot carries the files.
func (h *Handler) Start(ctx *gin.Context) {
	s := middlewares.GetSession(ctx)

	job, err := migrate.NewJob(s.Selection.Snapshot(), s.Nav.CurrentFolderID())
	if err != nil {
		api.AbortDomainError(ctx, err)
		return
	}

	if err := h.runner.Start(ctx.Request.Context(), job); err != nil {
		api.AbortDomainError(ctx, err)
		return
	}

	s.Selection.Clear()
	ctx.PureJSON(http.StatusAccepted, gin.H{
		"jobId": job.ID,
		"total": len(job.Items),
	})
}

// Cancel requests a stop of the running job. The in-flight stage always
// completes before the job winds down.
func (h *Handler) Cancel(ctx *gin.Context) {
	running := h.runner.Running()
	h.runner.Cancel()
	ctx.PureJSON(http.StatusAccepted, gin.H{"cancelled": running})
}

// Progress reports the latest job's progress record. The record stays
// readable after the job finished, until the next one starts.
func (h *Handler) Progress(ctx *gin.Context) {
	job := h.runner.Current()
	if job == nil {
		ctx.PureJSON(http.StatusOK, gin.H{"running": false})
		return
	}

	ctx.PureJSON(http.StatusOK, gin.H{
		"running":  h.runner.Running(),
		"jobId":    job.ID,
		"progress": job.Progress(),
		"states":   job.States(),
	})
}

// History lists recent jobs from the journal, newest first.
func (h *Handler) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	records, err := h.journal.Recent(limit)
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}
	ctx.PureJSON(http.StatusOK, gin.H{"jobs": records})
}

// HistoryJob returns one journaled job with its per-file outcomes.
func (h *Handler) HistoryJob(ctx *gin.Context) {
	jobID := ctx.Param("jobId")

	record, err := h.journal.Job(jobID)
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}
	if record == nil {
		api.AbortWithError(ctx, http.StatusNotFound, api.CodeNotFound,
			fmt.Errorf("job %s not found", jobID))
		return
	}

	files, err := h.journal.Files(jobID)
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	ctx.PureJSON(http.StatusOK, gin.H{
		"job":   record,
		"files": files,
	})
}
