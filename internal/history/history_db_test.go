package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/carcli/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "carcli.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManager_RecordAndLoad(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	entries := []types.HistoryEntry{
		{Timestamp: base, Op: types.OpCreate, Label: "2017 Honda Civic", Duration: 12, CarID: "new1"},
		{Timestamp: base.Add(time.Minute), Op: types.OpUpdate, Label: "2017 Honda Civic", CarID: "new1", Error: "api returned 400: bad"},
		{Timestamp: base.Add(2 * time.Minute), Op: types.OpDelete, Label: "2017 Honda Civic", CarID: "new1"},
	}
	for _, e := range entries {
		if err := m.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := m.Load("", 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Load() returned %d entries, want 3", len(got))
	}

	if got[0].Op != types.OpDelete {
		t.Errorf("newest entry op = %q, want %q", got[0].Op, types.OpDelete)
	}
	if !got[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, base.Add(2*time.Minute))
	}
	if got[1].Succeeded() {
		t.Error("update entry should carry its error")
	}
	if got[2].Duration != 12 || got[2].CarID != "new1" {
		t.Errorf("create entry = %+v", got[2])
	}
}

func TestManager_LoadFiltersByProfile(t *testing.T) {
	m := newTestManager(t)

	m.Record(types.HistoryEntry{Op: types.OpCreate, Label: "a", Profile: "staging"})
	m.Record(types.HistoryEntry{Op: types.OpCreate, Label: "b", Profile: "prod"})
	m.Record(types.HistoryEntry{Op: types.OpCreate, Label: "c", Profile: "staging"})

	got, err := m.Load("staging", 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load(staging) returned %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Profile != "staging" {
			t.Errorf("unexpected profile %q", e.Profile)
		}
	}
}

func TestManager_LoadLimit(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 5; i++ {
		m.Record(types.HistoryEntry{Op: types.OpDelete, Label: "x"})
	}

	got, err := m.Load("", 2)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Load(limit 2) returned %d entries", len(got))
	}
}

func TestManager_LoadForCar(t *testing.T) {
	m := newTestManager(t)
	m.Record(types.HistoryEntry{Op: types.OpUpdate, CarID: "abc123", Label: "x"})
	m.Record(types.HistoryEntry{Op: types.OpUpdate, CarID: "other", Label: "y"})
	m.Record(types.HistoryEntry{Op: types.OpCreate, Label: "z"})

	got, err := m.LoadForCar("abc123")
	if err != nil {
		t.Fatalf("LoadForCar() error = %v", err)
	}
	if len(got) != 1 || got[0].CarID != "abc123" {
		t.Errorf("LoadForCar() = %+v", got)
	}
}

func TestManager_DeleteAndClear(t *testing.T) {
	m := newTestManager(t)
	m.Record(types.HistoryEntry{Op: types.OpCreate, Label: "a"})
	m.Record(types.HistoryEntry{Op: types.OpCreate, Label: "b"})

	got, _ := m.Load("", 0)
	if err := m.Delete(got[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if count, _ := m.GetCount(); count != 1 {
		t.Errorf("count after delete = %d, want 1", count)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if count, _ := m.GetCount(); count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}

	empty, err := m.Load("", 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Load() on empty db = %#v, want empty slice", empty)
	}
}
