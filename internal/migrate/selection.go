package migrate

import (
	"fmt"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tnt-sales/docsync/internal/docsdk"
)

// SelectionSet is the user's working set of files chosen for migration.
// Membership is keyed by item id; insertion order is preserved because it
// fixes the processing order of a job. The set survives navigation and is
// cleared only when a batch settles or the user abandons it.
type SelectionSet struct {
	mu    sync.Mutex
	ids   mapset.Set[string]
	order []*docsdk.DriveItem
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		ids: mapset.NewThreadUnsafeSet[string](),
	}
}

// Toggle adds a file when absent and removes it when present. Folder items
// are rejected. Returns whether the item is selected afterwards.
func (s *SelectionSet) Toggle(item *docsdk.DriveItem) (bool, error) {
	if !item.IsFile() {
		return false, fmt.Errorf("%w: %s", ErrNotFile, item.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids.Contains(item.ID) {
		s.removeLocked(item.ID)
		return false, nil
	}

	s.ids.Add(item.ID)
	s.order = append(s.order, item)
	return true, nil
}

// SelectMatching adds every not-yet-selected file from items whose name
// matches the glob pattern. Returns how many files were added.
func (s *SelectionSet) SelectMatching(items []*docsdk.DriveItem, pattern string) (int, error) {
	if !doublestar.ValidatePattern(pattern) {
		return 0, fmt.Errorf("selection: invalid pattern %q", pattern)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, item := range items {
		if !item.IsFile() || s.ids.Contains(item.ID) {
			continue
		}
		ok, err := doublestar.Match(pattern, item.Name)
		if err != nil {
			return added, fmt.Errorf("selection: match %q: %w", pattern, err)
		}
		if ok {
			s.ids.Add(item.ID)
			s.order = append(s.order, item)
			added++
		}
	}
	return added, nil
}

// Remove drops an item by id; unknown ids are a no-op.
func (s *SelectionSet) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *SelectionSet) removeLocked(id string) {
	if !s.ids.Contains(id) {
		return
	}
	s.ids.Remove(id)
	for i, item := range s.order {
		if item.ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the set.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids.Clear()
	s.order = nil
}

// Contains reports membership by id.
func (s *SelectionSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Contains(id)
}

// Len returns the number of selected files.
func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns the members in insertion order. Jobs are seeded from this
// copy, so a running batch is unaffected by later selection changes.
func (s *SelectionSet) Snapshot() []*docsdk.DriveItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]*docsdk.DriveItem, len(s.order))
	copy(items, s.order)
	return items
}
