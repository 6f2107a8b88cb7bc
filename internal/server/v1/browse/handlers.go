// Package browse exposes drive folder navigation over HTTP. Every call
// re-fetches the folder listing from the drive; the server holds no
// cached view beyond the currently open folder.
package browse

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/migrate"
	"github.com/tnt-sales/docsync/internal/server/middlewares"
	"github.com/tnt-sales/docsync/internal/server/session"
	"github.com/tnt-sales/docsync/internal/server/v1/api"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

type viewResponse struct {
	Path     []migrate.Crumb     `json:"path"`
	FolderID string              `json:"folderId"`
	Items    []*docsdk.DriveItem `json:"items"`
	Selected []string            `json:"selected"`
}

type enterRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type backRequest struct {
	ToIndex *int `json:"toIndex"`
}

// Children lists the current folder. The session's first call lands on
// the configured start folder; later calls refresh in place.
func (h *Handler) Children(ctx *gin.Context) {
	s := middlewares.GetSession(ctx)

	var err error
	if s.FirstOpen() {
		_, err = s.Nav.OpenDefault(ctx.Request.Context())
	} else {
		_, err = s.Nav.Open(ctx.Request.Context(), s.Nav.CurrentFolderID())
	}
	if err != nil {
		api.AbortDomainError(ctx, err)
		return
	}

	respondView(ctx, s)
}

// Enter descends into a subfolder of the current listing.
func (h *Handler) Enter(ctx *gin.Context) {
	var req enterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	s := middlewares.GetSession(ctx)
	item := findItem(s, req.ItemID)
	if item == nil {
		api.AbortWithError(ctx, http.StatusNotFound, api.CodeNotFound,
			fmt.Errorf("item %s is not in the current folder", req.ItemID))
		return
	}

	if _, err := s.Nav.Enter(ctx.Request.Context(), item); err != nil {
		api.AbortDomainError(ctx, err)
		return
	}

	respondView(ctx, s)
}

// Back jumps to a breadcrumb. toIndex -1 (or omitted) returns to root.
func (h *Handler) Back(ctx *gin.Context) {
	var req backRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	toIndex := -1
	if req.ToIndex != nil {
		toIndex = *req.ToIndex
	}

	s := middlewares.GetSession(ctx)
	s.FirstOpen()
	if toIndex < -1 || toIndex >= len(s.Nav.Path()) {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("breadcrumb index %d out of range", toIndex))
		return
	}
	if _, err := s.Nav.Back(ctx.Request.Context(), toIndex); err != nil {
		api.AbortDomainError(ctx, err)
		return
	}

	respondView(ctx, s)
}

func findItem(s *session.Session, itemID string) *docsdk.DriveItem {
	for _, item := range s.Nav.Items() {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

func respondView(ctx *gin.Context, s *session.Session) {
	items := s.Nav.Items()
	selected := make([]string, 0, len(items))
	for _, item := range items {
		if s.Selection.Contains(item.ID) {
			selected = append(selected, item.ID)
		}
	}

	ctx.PureJSON(http.StatusOK, viewResponse{
		Path:     s.Nav.Path(),
		FolderID: s.Nav.CurrentFolderID(),
		Items:    items,
		Selected: selected,
	})
}
