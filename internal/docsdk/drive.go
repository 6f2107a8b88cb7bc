package docsdk

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/imroc/req/v3"
)

const (
	driveRootChildren = "/root/children"
	driveItemChildren = "/items/{itemId}/children"
	driveItemContent  = "/items/{itemId}/content"
	driveItem         = "/items/{itemId}"

	listRetryCount = 2
)

// DriveAPI is the client for the source drive service. All calls are thin
// request/response wrappers; domain behavior (archive resolution, pipeline
// stages) lives in the migrate package.
type DriveAPI struct {
	client *req.Client
}

func newDriveAPI(client *req.Client) *DriveAPI {
	return &DriveAPI{client: client}
}

// ListChildren returns all children of a folder, root when folderID is
// empty. Follows the service's pagination links so callers always see the
// complete listing.
func (d *DriveAPI) ListChildren(ctx context.Context, folderID string) ([]*DriveItem, error) {
	r := d.client.R().
		SetContext(ctx).
		SetRetryCount(listRetryCount).
		SetRetryBackoffInterval(500*time.Millisecond, 2*time.Second).
		SetSuccessResult(&driveChildrenResponse{}).
		SetErrorResult(&APIError{})

	var resp *req.Response
	var err error
	if folderID == "" {
		resp, err = r.Get(driveRootChildren)
	} else {
		resp, err = r.SetPathParam("itemId", folderID).Get(driveItemChildren)
	}
	if err := handleAPIError(resp, err, "drive list children"); err != nil {
		return nil, err
	}

	page := resp.SuccessResult().(*driveChildrenResponse)
	items := page.Value

	for page.NextLink != "" {
		resp, err := d.client.R().
			SetContext(ctx).
			SetRetryCount(listRetryCount).
			SetSuccessResult(&driveChildrenResponse{}).
			SetErrorResult(&APIError{}).
			Get(page.NextLink)
		if err := handleAPIError(resp, err, "drive list children page"); err != nil {
			return nil, err
		}
		page = resp.SuccessResult().(*driveChildrenResponse)
		items = append(items, page.Value...)
	}

	return items, nil
}

// GetContent downloads a file's bytes. The service answers with a redirect
// to the actual content location; the http client follows it.
func (d *DriveAPI) GetContent(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetPathParam("itemId", fileID).
		SetErrorResult(&APIError{}).
		Get(driveItemContent)
	if err := handleAPIError(resp, err, "drive get content"); err != nil {
		return nil, err
	}
	return resp.Bytes(), nil
}

// CreateFolder creates a child folder under parentID. With failOnConflict
// the service rejects a same-named sibling with 409 instead of auto-renaming,
// which is what the archive resolver's race handling depends on.
func (d *DriveAPI) CreateFolder(ctx context.Context, parentID, name string, failOnConflict bool) (*DriveItem, error) {
	behavior := conflictBehaviorRename
	if failOnConflict {
		behavior = conflictBehaviorFail
	}

	item := &DriveItem{}
	resp, err := d.client.R().
		SetContext(ctx).
		SetPathParam("itemId", parentID).
		SetBody(&createFolderRequest{
			Name:             name,
			Folder:           FolderFacet{},
			ConflictBehavior: behavior,
		}).
		SetSuccessResult(item).
		SetErrorResult(&APIError{}).
		Post(driveItemChildren)
	if err := handleAPIError(resp, err, "drive create folder"); err != nil {
		return nil, err
	}
	return item, nil
}

// MoveItem reparents an item. With renameOnConflict a same-named file in the
// target folder causes the moved file to be renamed rather than overwritten
// or rejected - a prior archive entry is never silently destroyed.
func (d *DriveAPI) MoveItem(ctx context.Context, itemID, newParentID string, renameOnConflict bool) (*DriveItem, error) {
	behavior := conflictBehaviorFail
	if renameOnConflict {
		behavior = conflictBehaviorRename
	}

	item := &DriveItem{}
	resp, err := d.client.R().
		SetContext(ctx).
		SetPathParam("itemId", itemID).
		SetBody(&moveItemRequest{
			ParentReference:  ItemRef{ID: newParentID},
			ConflictBehavior: behavior,
		}).
		SetSuccessResult(item).
		SetErrorResult(&APIError{}).
		Patch(driveItem)
	if err := handleAPIError(resp, err, "drive move item"); err != nil {
		return nil, err
	}
	return item, nil
}

// GetFolderByPath resolves a folder by its human path relative to the drive
// root, e.g. "Google RAG". Used for the navigator's configured start folder.
func (d *DriveAPI) GetFolderByPath(ctx context.Context, path string) (*DriveItem, error) {
	if path == "" {
		return nil, fmt.Errorf("drive get folder: %w: empty path", ErrNotFound)
	}

	item := &DriveItem{}
	resp, err := d.client.R().
		SetContext(ctx).
		SetSuccessResult(item).
		SetErrorResult(&APIError{}).
		Get("/root:/" + url.PathEscape(path))
	if err := handleAPIError(resp, err, "drive get folder"); err != nil {
		return nil, err
	}
	return item, nil
}
