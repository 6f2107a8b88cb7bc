// Package migrate implements the batch document synchronization pipeline:
// folder navigation over the source drive, user file selection, and the
// sequential download -> upload -> archive transfer of each selected file
// into the document-search store.
package migrate

import (
	"context"

	"github.com/tnt-sales/docsync/internal/docsdk"
)

// DriveClient is the slice of the drive service the pipeline needs.
// *docsdk.DriveAPI satisfies it; tests use scripted fakes.
type DriveClient interface {
	ListChildren(ctx context.Context, folderID string) ([]*docsdk.DriveItem, error)
	GetContent(ctx context.Context, fileID string) ([]byte, error)
	CreateFolder(ctx context.Context, parentID, name string, failOnConflict bool) (*docsdk.DriveItem, error)
	MoveItem(ctx context.Context, itemID, newParentID string, renameOnConflict bool) (*docsdk.DriveItem, error)
	GetFolderByPath(ctx context.Context, path string) (*docsdk.DriveItem, error)
}

// StoreClient is the slice of the document store the pipeline needs.
type StoreClient interface {
	UploadDocument(ctx context.Context, content []byte, fileName, mimeType string) (*docsdk.UploadDocumentResponse, error)
}

var (
	_ DriveClient = (*docsdk.DriveAPI)(nil)
	_ StoreClient = (*docsdk.StoreAPI)(nil)
)
