package docsdk

// StoreDocument is one ingested document in the search store.
type StoreDocument struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	State       string `json:"state,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	CreateTime  string `json:"createTime,omitempty"`
}

// UploadDocumentResponse acknowledges a single document ingestion.
type UploadDocumentResponse struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

type listDocumentsResponse struct {
	Documents []*StoreDocument `json:"documents"`
}
