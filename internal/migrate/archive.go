package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tnt-sales/docsync/internal/docsdk"
)

// ArchiveFolderName is the per-parent subfolder migrated files move into.
const ArchiveFolderName = "Archive"

// ArchiveResolver finds or creates the "Archive" child of a parent folder.
// The contention is against an external service with no lock primitive, so
// races are handled optimistically: read, create with fail-on-conflict, and
// re-read once when creation is refused. Resolutions are memoized per parent
// for the lifetime of one job only - external state may change between jobs.
type ArchiveResolver struct {
	drive DriveClient
	group singleflight.Group

	mu   sync.Mutex
	memo map[string]*docsdk.DriveItem
}

func NewArchiveResolver(drive DriveClient) *ArchiveResolver {
	return &ArchiveResolver{
		drive: drive,
		memo:  make(map[string]*docsdk.DriveItem),
	}
}

// Resolve returns the archive folder under parentID, creating it if needed.
// Concurrent calls for the same parent collapse into one resolution.
func (r *ArchiveResolver) Resolve(ctx context.Context, parentID string) (*docsdk.DriveItem, error) {
	r.mu.Lock()
	if folder, ok := r.memo[parentID]; ok {
		r.mu.Unlock()
		return folder, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(parentID, func() (any, error) {
		folder, err := r.resolve(ctx, parentID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.memo[parentID] = folder
		r.mu.Unlock()
		return folder, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*docsdk.DriveItem), nil
}

func (r *ArchiveResolver) resolve(ctx context.Context, parentID string) (*docsdk.DriveItem, error) {
	folder, err := r.findArchive(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if folder != nil {
		return folder, nil
	}

	created, createErr := r.drive.CreateFolder(ctx, parentID, ArchiveFolderName, true)
	if createErr == nil {
		return created, nil
	}

	// likely lost the race to another actor - re-read before giving up
	slog.Debug("archive folder create refused, re-reading", "parent", parentID, "error", createErr)
	folder, err = r.findArchive(ctx, parentID)
	if err == nil && folder != nil {
		return folder, nil
	}

	return nil, fmt.Errorf("%w: parent %s: %w", ErrArchiveResolution, parentID, createErr)
}

func (r *ArchiveResolver) findArchive(ctx context.Context, parentID string) (*docsdk.DriveItem, error) {
	children, err := r.drive.ListChildren(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrArchiveResolution, parentID, err)
	}
	for _, child := range children {
		if child.Name == ArchiveFolderName && child.IsFolder() {
			return child, nil
		}
	}
	return nil, nil
}
