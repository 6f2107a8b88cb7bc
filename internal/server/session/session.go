// Package session tracks per-browser navigation state. Each session owns
// a folder navigator and a selection set; sessions expire after a period
// of inactivity.
package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tnt-sales/docsync/internal/migrate"
)

const (
	DefaultTTL     = 30 * time.Minute
	defaultMaxSize = 512
)

// Session is one browser's view of the drive: where it is and what it
// has picked. Selection is scoped to the session, never shared.
type Session struct {
	ID        string
	Nav       *migrate.Navigator
	Selection *migrate.SelectionSet
	CreatedAt time.Time

	opened atomic.Bool
}

// FirstOpen reports true exactly once, on the session's first folder
// listing. The first open lands on the configured start folder, every
// later one refreshes wherever the navigator already is.
func (s *Session) FirstOpen() bool {
	return s.opened.CompareAndSwap(false, true)
}

// Manager hands out sessions keyed by an opaque ID. Expired sessions are
// evicted; a request carrying a stale ID transparently gets a fresh one.
type Manager struct {
	cache       *expirable.LRU[string, *Session]
	drive       migrate.DriveClient
	startFolder string
}

func NewManager(drive migrate.DriveClient, startFolder string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		cache:       expirable.NewLRU[string, *Session](defaultMaxSize, nil, ttl),
		drive:       drive,
		startFolder: startFolder,
	}
}

// Get returns the session for the given ID, refreshing its TTL.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return m.cache.Get(id)
}

// Create mints a new session rooted at the configured start folder.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Nav:       migrate.NewNavigator(m.drive, m.startFolder),
		Selection: migrate.NewSelectionSet(),
		CreatedAt: time.Now().UTC(),
	}
	m.cache.Add(s.ID, s)
	return s
}

// GetOrCreate resolves the ID to a live session or mints a replacement.
func (m *Manager) GetOrCreate(id string) *Session {
	if s, ok := m.Get(id); ok {
		return s
	}
	return m.Create()
}

func (m *Manager) Len() int {
	return m.cache.Len()
}
