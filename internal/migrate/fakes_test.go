package migrate

import (
	"context"
	"fmt"
	"sync"

	"github.com/tnt-sales/docsync/internal/docsdk"
)

func fileItem(id, name string) *docsdk.DriveItem {
	return &docsdk.DriveItem{
		ID:   id,
		Name: name,
		Size: int64(len(name)),
		File: &docsdk.FileFacet{MimeType: "application/pdf"},
	}
}

func folderItem(id, name string) *docsdk.DriveItem {
	return &docsdk.DriveItem{
		ID:     id,
		Name:   name,
		Folder: &docsdk.FolderFacet{},
	}
}

type moveCall struct {
	itemID      string
	newParentID string
	rename      bool
}

// fakeDrive is a scriptable in-memory drive. Default behavior is map-backed;
// the hook fields override individual calls.
type fakeDrive struct {
	mu sync.Mutex

	children map[string][]*docsdk.DriveItem
	content  map[string][]byte
	byPath   map[string]*docsdk.DriveItem

	listErr    map[string]error
	contentErr map[string]error
	moveErr    map[string]error

	onList   func(folderID string) ([]*docsdk.DriveItem, error)
	onCreate func(parentID, name string, failOnConflict bool) (*docsdk.DriveItem, error)

	listCalls   []string
	createCalls []string
	moveCalls   []moveCall
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		children:   make(map[string][]*docsdk.DriveItem),
		content:    make(map[string][]byte),
		byPath:     make(map[string]*docsdk.DriveItem),
		listErr:    make(map[string]error),
		contentErr: make(map[string]error),
		moveErr:    make(map[string]error),
	}
}

func (f *fakeDrive) ListChildren(_ context.Context, folderID string) ([]*docsdk.DriveItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, folderID)

	if f.onList != nil {
		return f.onList(folderID)
	}
	if err := f.listErr[folderID]; err != nil {
		return nil, err
	}
	return f.children[folderID], nil
}

func (f *fakeDrive) GetContent(_ context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.contentErr[fileID]; err != nil {
		return nil, err
	}
	if content, ok := f.content[fileID]; ok {
		return content, nil
	}
	return []byte("content-of-" + fileID), nil
}

func (f *fakeDrive) CreateFolder(_ context.Context, parentID, name string, failOnConflict bool) (*docsdk.DriveItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, parentID)

	if f.onCreate != nil {
		return f.onCreate(parentID, name, failOnConflict)
	}
	folder := folderItem("created-"+name+"-"+parentID, name)
	f.children[parentID] = append(f.children[parentID], folder)
	return folder, nil
}

func (f *fakeDrive) MoveItem(_ context.Context, itemID, newParentID string, renameOnConflict bool) (*docsdk.DriveItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moveCalls = append(f.moveCalls, moveCall{itemID: itemID, newParentID: newParentID, rename: renameOnConflict})

	if err := f.moveErr[itemID]; err != nil {
		return nil, err
	}
	return &docsdk.DriveItem{ID: itemID, ParentReference: &docsdk.ItemRef{ID: newParentID}}, nil
}

func (f *fakeDrive) GetFolderByPath(_ context.Context, path string) (*docsdk.DriveItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if folder, ok := f.byPath[path]; ok {
		return folder, nil
	}
	return nil, fmt.Errorf("%w: %s", docsdk.ErrNotFound, path)
}

func (f *fakeDrive) movedItems() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.moveCalls))
	for _, call := range f.moveCalls {
		ids = append(ids, call.itemID)
	}
	return ids
}

type uploadCall struct {
	fileName string
	mimeType string
	size     int
}

// fakeStore records uploads and can fail specific file names.
type fakeStore struct {
	mu        sync.Mutex
	uploadErr map[string]error
	uploads   []uploadCall
	onUpload  func(fileName string)
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploadErr: make(map[string]error)}
}

func (f *fakeStore) UploadDocument(_ context.Context, content []byte, fileName, mimeType string) (*docsdk.UploadDocumentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.onUpload != nil {
		f.onUpload(fileName)
	}
	if err := f.uploadErr[fileName]; err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, uploadCall{fileName: fileName, mimeType: mimeType, size: len(content)})
	return &docsdk.UploadDocumentResponse{ID: "doc-" + fileName, FileName: fileName, Size: int64(len(content))}, nil
}

func (f *fakeStore) uploadedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.uploads))
	for _, up := range f.uploads {
		names = append(names, up.fileName)
	}
	return names
}

// recordingSink captures every published event in order.
type recordingSink struct {
	mu     sync.Mutex
	events []*Event
}

func (s *recordingSink) Publish(event *Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) all() []*Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]*Event, len(s.events))
	copy(events, s.events)
	return events
}
