package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnt-sales/docsync/internal/docsdk"
)

type fakeStore struct {
	docs      []*docsdk.StoreDocument
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeStore) ListDocuments(context.Context) ([]*docsdk.StoreDocument, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.docs, nil
}

func (f *fakeStore) DeleteDocument(_ context.Context, docID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, docID)
	return nil
}

func newTestRouter(store StoreClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(store)
	r.GET("/api/v1/store/documents", h.Documents)
	r.DELETE("/api/v1/store/documents/:docId", h.Delete)
	return r
}

func TestDocuments(t *testing.T) {
	store := &fakeStore{docs: []*docsdk.StoreDocument{
		{ID: "doc-1", DisplayName: "a.pdf"},
		{ID: "doc-2", DisplayName: "b.pdf"},
	}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/documents", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
}

func TestDocumentsStoreDown(t *testing.T) {
	r := newTestRouter(&fakeStore{listErr: docsdk.ErrUnauthorized})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/documents", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDelete(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/store/documents/doc-1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"doc-1"}, store.deleted)
}

func TestDeleteUnknown(t *testing.T) {
	r := newTestRouter(&fakeStore{deleteErr: docsdk.ErrNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/store/documents/ghost", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
