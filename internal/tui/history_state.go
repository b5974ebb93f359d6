package tui

import (
	"sync"

	"github.com/studiowebux/carcli/internal/types"
)

// HistoryState encapsulates the activity history modal state
type HistoryState struct {
	mu sync.RWMutex

	entries []types.HistoryEntry
	index   int
	loading bool
}

// NewHistoryState creates a new history state
func NewHistoryState() *HistoryState {
	return &HistoryState{
		entries: []types.HistoryEntry{},
	}
}

// GetEntries returns a copy of the entries slice
func (s *HistoryState) GetEntries() []types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.HistoryEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// SetEntries replaces the entries and keeps the index in range
func (s *HistoryState) SetEntries(entries []types.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	s.entries = entries
	s.loading = false
	if s.index >= len(entries) {
		s.index = 0
	}
}

// GetIndex returns the current index
func (s *HistoryState) GetIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// SetIndex sets the current index
func (s *HistoryState) SetIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
}

// Navigate moves the selection by delta
func (s *HistoryState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return
	}

	s.index += delta

	// Wrap around
	if s.index < 0 {
		s.index = len(s.entries) - 1
	} else if s.index >= len(s.entries) {
		s.index = 0
	}
}

// GetCurrentEntry returns the currently selected history entry
func (s *HistoryState) GetCurrentEntry() *types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 || s.index < 0 || s.index >= len(s.entries) {
		return nil
	}

	entry := s.entries[s.index]
	return &entry
}

// IsLoading reports whether entries are being fetched
func (s *HistoryState) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading marks a fetch as started
func (s *HistoryState) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Reset clears entries and selection
func (s *HistoryState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []types.HistoryEntry{}
	s.index = 0
	s.loading = false
}
