package tui

import (
	"sync"
	"testing"

	"github.com/studiowebux/carcli/internal/types"
)

func TestNewHistoryState(t *testing.T) {
	state := NewHistoryState()

	if state == nil {
		t.Fatal("NewHistoryState returned nil")
	}

	if state.GetIndex() != 0 {
		t.Errorf("Expected index 0, got %d", state.GetIndex())
	}

	if state.IsLoading() {
		t.Error("Expected not loading by default")
	}

	if len(state.GetEntries()) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(state.GetEntries()))
	}

	if state.GetCurrentEntry() != nil {
		t.Error("Expected nil entry for empty state")
	}
}

func TestHistoryState_Navigate(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries([]types.HistoryEntry{
		{ID: 1, Op: types.OpCreate},
		{ID: 2, Op: types.OpUpdate},
		{ID: 3, Op: types.OpDelete},
	})

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"down", 1, 1},
		{"down again", 1, 2},
		{"wraps to top", 1, 0},
		{"wraps to bottom", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state.Navigate(tt.delta)
			if got := state.GetIndex(); got != tt.want {
				t.Errorf("index = %d, want %d", got, tt.want)
			}
		})
	}

	if entry := state.GetCurrentEntry(); entry == nil || entry.ID != 3 {
		t.Errorf("current entry = %+v, want id 3", entry)
	}
}

func TestHistoryState_SetEntriesClampsIndex(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries([]types.HistoryEntry{{ID: 1}, {ID: 2}, {ID: 3}})
	state.SetIndex(2)
	state.SetLoading(true)

	state.SetEntries([]types.HistoryEntry{{ID: 9}})

	if state.GetIndex() != 0 {
		t.Errorf("index = %d, want 0", state.GetIndex())
	}
	if state.IsLoading() {
		t.Error("SetEntries should finish loading")
	}

	state.SetEntries(nil)
	if entries := state.GetEntries(); entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty slice", entries)
	}
}

func TestHistoryState_GetEntriesReturnsCopy(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries([]types.HistoryEntry{{ID: 1, Label: "a"}})

	entries := state.GetEntries()
	entries[0].Label = "changed"

	if state.GetEntries()[0].Label != "a" {
		t.Error("GetEntries should return a copy")
	}
}

func TestHistoryState_Reset(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries([]types.HistoryEntry{{ID: 1}, {ID: 2}})
	state.SetIndex(1)

	state.Reset()

	if len(state.GetEntries()) != 0 || state.GetIndex() != 0 {
		t.Error("Reset should clear entries and index")
	}
}

func TestHistoryState_ConcurrentAccess(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries([]types.HistoryEntry{{ID: 1}, {ID: 2}, {ID: 3}})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.Navigate(1)
		}()
		go func() {
			defer wg.Done()
			_ = state.GetCurrentEntry()
			_ = state.GetEntries()
		}()
	}
	wg.Wait()
}
