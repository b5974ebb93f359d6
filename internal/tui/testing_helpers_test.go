package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/carcli/internal/mutation"
	"github.com/studiowebux/carcli/internal/types"
)

// fakeAPI is an in-memory car API for model tests
type fakeAPI struct {
	mu sync.Mutex

	pages     map[string][]types.CarRecord // key "search|page"
	total     int
	listCalls []string
	listErr   error

	createErr error
	updateErr error
	deleteErr error

	created []types.CarDraft
	updated []string
	deleted []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{pages: map[string][]types.CarRecord{}, total: 1}
}

func pageKey(page int, search string) string {
	return fmt.Sprintf("%s|%d", search, page)
}

func (f *fakeAPI) setPage(page int, search string, cars ...types.CarRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[pageKey(page, search)] = cars
}

func (f *fakeAPI) List(_ context.Context, page int, search string) (*types.ListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, pageKey(page, search))
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &types.ListResponse{Cars: f.pages[pageKey(page, search)], Total: f.total}, nil
}

func (f *fakeAPI) Create(_ context.Context, draft types.CarDraft) (*types.CarRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, draft)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &types.CarRecord{ID: "new1", Make: draft.Make, Model: draft.Model, ReleaseDate: draft.ReleaseDate}, nil
}

func (f *fakeAPI) Update(_ context.Context, id string, draft types.CarDraft) (*types.CarRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &types.CarRecord{ID: id, Make: draft.Make, Model: draft.Model, ReleaseDate: draft.ReleaseDate}, nil
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listCalls...)
}

// CreateTestModel creates a sized Model backed by api
func CreateTestModel(t *testing.T, api *fakeAPI, history HistoryStore) *Model {
	t.Helper()

	m, err := New(Options{Lister: api, Mutator: mutation.New(api), History: history, Profile: "test"})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	run(m, m.Init())
	return m
}

// cmdTimeout drops commands that wait on a timer, such as cursor blinks
const cmdTimeout = 100 * time.Millisecond

// execCmd runs cmd, giving up on it after cmdTimeout
func execCmd(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// run executes cmd and feeds resulting messages back into the model until none remain
func run(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := execCmd(next).(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg:
			continue
		default:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// press sends a key to the model and runs the resulting commands
func press(m *Model, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	run(m, cmd)
}

// fakeHistory is an in-memory HistoryStore
type fakeHistory struct {
	entries []types.HistoryEntry
	cleared bool
}

func (h *fakeHistory) Load(_ string, _ int) ([]types.HistoryEntry, error) {
	return h.entries, nil
}

func (h *fakeHistory) Clear() error {
	h.entries = nil
	h.cleared = true
	return nil
}

// typeText sends each rune as a key press
func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, string(r))
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
