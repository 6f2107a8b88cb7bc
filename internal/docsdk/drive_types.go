package docsdk

// FolderFacet marks an item as a folder.
type FolderFacet struct {
	ChildCount int `json:"childCount"`
}

// FileFacet marks an item as a file.
type FileFacet struct {
	MimeType string `json:"mimeType"`
}

// ItemRef points at another drive item, used for move targets and parents.
type ItemRef struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"`
}

// DriveItem is one node of the source drive tree. Exactly one of Folder or
// File is set by the service.
type DriveItem struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Size            int64        `json:"size,omitempty"`
	Folder          *FolderFacet `json:"folder,omitempty"`
	File            *FileFacet   `json:"file,omitempty"`
	ParentReference *ItemRef     `json:"parentReference,omitempty"`
}

// IsFolder reports whether the item carries folder semantics.
func (d *DriveItem) IsFolder() bool {
	return d.Folder != nil
}

// IsFile reports whether the item carries file semantics.
func (d *DriveItem) IsFile() bool {
	return d.File != nil && d.Folder == nil
}

// MimeType returns the reported mime type, empty for folders.
func (d *DriveItem) MimeType() string {
	if d.File == nil {
		return ""
	}
	return d.File.MimeType
}

type driveChildrenResponse struct {
	Value    []*DriveItem `json:"value"`
	NextLink string       `json:"@odata.nextLink,omitempty"`
}

type createFolderRequest struct {
	Name             string      `json:"name"`
	Folder           FolderFacet `json:"folder"`
	ConflictBehavior string      `json:"@microsoft.graph.conflictBehavior"`
}

type moveItemRequest struct {
	ParentReference  ItemRef `json:"parentReference"`
	ConflictBehavior string  `json:"@microsoft.graph.conflictBehavior"`
}

const (
	conflictBehaviorFail   = "fail"
	conflictBehaviorRename = "rename"
)
