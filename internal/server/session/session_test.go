package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(nil, "", time.Minute)

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.NotNil(t, s.Nav)
	assert.NotNil(t, s.Selection)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestManagerUnknownID(t *testing.T) {
	m := NewManager(nil, "", time.Minute)

	_, ok := m.Get("")
	assert.False(t, ok)
	_, ok = m.Get("stale-id")
	assert.False(t, ok)

	// a stale ID yields a fresh session with a new ID
	s := m.GetOrCreate("stale-id")
	require.NotNil(t, s)
	assert.NotEqual(t, "stale-id", s.ID)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(nil, "", 50*time.Millisecond)

	s := m.Create()
	time.Sleep(120 * time.Millisecond)

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
}
