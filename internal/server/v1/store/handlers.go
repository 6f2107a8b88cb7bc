// Package store proxies read and delete operations of the document
// search store, so the UI can show what has landed there.
package store

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/server/v1/api"
)

// StoreClient is the slice of the document store API the handlers use.
type StoreClient interface {
	ListDocuments(ctx context.Context) ([]*docsdk.StoreDocument, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type Handler struct {
	store StoreClient
}

func New(store StoreClient) *Handler {
	return &Handler{store: store}
}

// Documents lists everything currently in the document store.
func (h *Handler) Documents(ctx *gin.Context) {
	docs, err := h.store.ListDocuments(ctx.Request.Context())
	if err != nil {
		api.AbortDomainError(ctx, err)
		return
	}
	ctx.PureJSON(http.StatusOK, gin.H{
		"documents": docs,
		"count":     len(docs),
	})
}

// Delete removes one document from the store.
func (h *Handler) Delete(ctx *gin.Context) {
	docID := ctx.Param("docId")
	if err := h.store.DeleteDocument(ctx.Request.Context(), docID); err != nil {
		api.AbortDomainError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
