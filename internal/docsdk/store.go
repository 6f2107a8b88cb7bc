package docsdk

import (
	"bytes"
	"context"
	"io"

	"github.com/imroc/req/v3"
)

const (
	v1StoreUpload    = "/api/v1/rag/store/upload"
	v1StoreDocuments = "/api/v1/rag/documents"
	v1StoreDocument  = "/api/v1/rag/documents/{docId}"
)

// StoreAPI is the client for the destination document-search store.
type StoreAPI struct {
	client *req.Client
}

func newStoreAPI(client *req.Client) *StoreAPI {
	return &StoreAPI{client: client}
}

// UploadDocument submits file bytes as a single multipart upload. No retry:
// the orchestrator records a stage failure and the file stays in the working
// folder for a later batch.
func (s *StoreAPI) UploadDocument(ctx context.Context, content []byte, fileName, mimeType string) (*UploadDocumentResponse, error) {
	apiResp := &UploadDocumentResponse{}
	resp, err := s.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetFileUpload(req.FileUpload{
			ParamName:   "file",
			FileName:    fileName,
			ContentType: mimeType,
			GetFileContent: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(content)), nil
			},
			FileSize: int64(len(content)),
		}).
		SetSuccessResult(apiResp).
		SetErrorResult(&APIError{}).
		Post(v1StoreUpload)
	if err := handleAPIError(resp, err, "store upload document"); err != nil {
		return nil, err
	}
	return apiResp, nil
}

// ListDocuments returns every document currently in the store.
func (s *StoreAPI) ListDocuments(ctx context.Context) ([]*StoreDocument, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&listDocumentsResponse{}).
		SetErrorResult(&APIError{}).
		Get(v1StoreDocuments)
	if err := handleAPIError(resp, err, "store list documents"); err != nil {
		return nil, err
	}
	return resp.SuccessResult().(*listDocumentsResponse).Documents, nil
}

// DeleteDocument removes one document from the store.
func (s *StoreAPI) DeleteDocument(ctx context.Context, docID string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("docId", docID).
		SetErrorResult(&APIError{}).
		Delete(v1StoreDocument)
	return handleAPIError(resp, err, "store delete document")
}
