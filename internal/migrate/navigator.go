package migrate

import (
	"context"
	"fmt"
	"sync"

	"github.com/tnt-sales/docsync/internal/docsdk"
)

// Crumb is one breadcrumb entry of the navigator path. The drive root is the
// empty path, not a sentinel crumb.
type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Navigator tracks the currently open drive folder and its breadcrumb path.
// Every navigation is a full refetch of that folder's children, so externally
// added or removed files show up on the next move. It deliberately keeps no
// cache beyond the open folder.
type Navigator struct {
	drive       DriveClient
	startFolder string

	mu    sync.Mutex
	path  []Crumb
	items []*docsdk.DriveItem
}

// NewNavigator creates a navigator rooted at the drive root. startFolder
// names an optional folder path OpenDefault will try first.
func NewNavigator(drive DriveClient, startFolder string) *Navigator {
	return &Navigator{
		drive:       drive,
		startFolder: startFolder,
	}
}

// Open fetches and replaces the children listing of folderID (root when
// empty). The breadcrumb path is left untouched.
func (n *Navigator) Open(ctx context.Context, folderID string) ([]*docsdk.DriveItem, error) {
	items, err := n.drive.ListChildren(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	n.mu.Lock()
	n.items = items
	n.mu.Unlock()
	return n.Items(), nil
}

// OpenDefault opens the configured start folder when it exists, the drive
// root otherwise.
func (n *Navigator) OpenDefault(ctx context.Context) ([]*docsdk.DriveItem, error) {
	if n.startFolder != "" {
		if folder, err := n.drive.GetFolderByPath(ctx, n.startFolder); err == nil && folder.IsFolder() {
			n.mu.Lock()
			n.path = []Crumb{{ID: folder.ID, Name: folder.Name}}
			n.mu.Unlock()
			return n.Open(ctx, folder.ID)
		}
	}

	n.mu.Lock()
	n.path = nil
	n.mu.Unlock()
	return n.Open(ctx, "")
}

// Enter descends into a folder item: appends it to the path and opens it.
func (n *Navigator) Enter(ctx context.Context, item *docsdk.DriveItem) ([]*docsdk.DriveItem, error) {
	if !item.IsFolder() {
		return nil, fmt.Errorf("%w: %s", ErrNotFolder, item.Name)
	}

	n.mu.Lock()
	n.path = append(n.path, Crumb{ID: item.ID, Name: item.Name})
	n.mu.Unlock()

	return n.Open(ctx, item.ID)
}

// Back truncates the path to the crumb at toIndex and re-opens that folder.
// toIndex -1 returns to the drive root.
func (n *Navigator) Back(ctx context.Context, toIndex int) ([]*docsdk.DriveItem, error) {
	n.mu.Lock()
	if toIndex < -1 || toIndex >= len(n.path) {
		n.mu.Unlock()
		return nil, fmt.Errorf("navigator: path index %d out of range", toIndex)
	}

	var folderID string
	if toIndex == -1 {
		n.path = nil
	} else {
		n.path = n.path[:toIndex+1]
		folderID = n.path[toIndex].ID
	}
	n.mu.Unlock()

	return n.Open(ctx, folderID)
}

// Path returns a copy of the breadcrumb path.
func (n *Navigator) Path() []Crumb {
	n.mu.Lock()
	defer n.mu.Unlock()
	path := make([]Crumb, len(n.path))
	copy(path, n.path)
	return path
}

// Items returns a copy of the currently displayed children listing.
func (n *Navigator) Items() []*docsdk.DriveItem {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := make([]*docsdk.DriveItem, len(n.items))
	copy(items, n.items)
	return items
}

// CurrentFolderID is the id of the open folder, empty at the drive root.
// Files batch-selected from this folder archive relative to it.
func (n *Navigator) CurrentFolderID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.path) == 0 {
		return ""
	}
	return n.path[len(n.path)-1].ID
}
