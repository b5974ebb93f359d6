package tui

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/carcli/internal/carapi"
	"github.com/studiowebux/carcli/internal/types"
)

var (
	focus = types.CarRecord{ID: "abc123", Make: "Ford", Model: "Focus", Size: "Compact", Style: "Hatchback", TransmissionType: "AUTOMATIC", Price: 15000, ReleaseDate: 2015}
	civic = types.CarRecord{ID: "def456", Make: "Honda", Model: "Civic", Size: "Compact", Style: "Sedan", TransmissionType: "MANUAL", Price: 18000, ReleaseDate: 2017}
	camry = types.CarRecord{ID: "ghi789", Make: "Toyota", Model: "Camry", Size: "Midsize", Style: "Sedan", TransmissionType: "AUTOMATIC", Price: 24000, ReleaseDate: 2019}
)

// seededAPI serves two pages of cars; "Honda" matches one car
func seededAPI() *fakeAPI {
	api := newFakeAPI()
	api.total = 2
	api.setPage(1, "", focus, civic)
	api.setPage(2, "", camry)
	api.setPage(1, "Honda", civic)
	return api
}

func lastCall(t *testing.T, api *fakeAPI) string {
	t.Helper()
	calls := api.calls()
	if len(calls) == 0 {
		t.Fatal("no list requests were made")
	}
	return calls[len(calls)-1]
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(Options{Mutator: nil, Lister: newFakeAPI()}); err == nil {
		t.Error("New() without a mutator should fail")
	}
	if _, err := New(Options{}); err == nil {
		t.Error("New() without a lister should fail")
	}
}

func TestModel_InitialFetch(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "last call", lastCall(t, api), "|1")
	AssertModelField(t, "rows", len(m.data.Current().Rows), 2)
	AssertModelField(t, "loading", m.loading, false)

	view := m.View()
	for _, want := range []string{"Ford Focus", "Honda Civic", "Page 1 of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_StaleResponseDiscarded(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	first := m.refresh()
	m.query.SetPage(2)
	second := m.refresh()

	// The newer response arrives first, then the older one
	m.Update(second())
	m.Update(first())

	current := m.data.Current()
	AssertModelField(t, "page", current.Page, 2)
	if len(current.Rows) != 1 || current.Rows[0].ID != camry.ID {
		t.Errorf("rows = %+v, want only the page 2 car", current.Rows)
	}
	AssertModelField(t, "loading", m.loading, false)
}

func TestModel_FetchFailureKeepsRows(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	api.listErr = errors.New("connection refused")
	press(m, "r")

	AssertModelField(t, "rows", len(m.data.Current().Rows), 2)
	if !strings.Contains(m.fullErrorMsg, "failed to load cars") {
		t.Errorf("error = %q, want a load failure", m.fullErrorMsg)
	}
	if !strings.Contains(m.View(), "Ford Focus") {
		t.Error("last good page should still be shown")
	}
}

func TestModel_Pagination(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "left")
	AssertModelField(t, "calls on first page prev", len(api.calls()), 1)

	press(m, "right")
	AssertModelField(t, "last call", lastCall(t, api), "|2")
	AssertModelField(t, "page", m.query.Page(), 2)

	press(m, "right")
	AssertModelField(t, "page past last", m.query.Page(), 2)

	press(m, "left")
	AssertModelField(t, "last call", lastCall(t, api), "|1")
}

func TestModel_PageClampedWhenTotalShrinks(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "right")
	api.mu.Lock()
	api.total = 1
	api.mu.Unlock()
	press(m, "r")

	AssertModelField(t, "page", m.query.Page(), 1)
	AssertModelField(t, "last call", lastCall(t, api), "|1")
}

func TestModel_SearchValidation(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)
	calls := len(api.calls())

	press(m, "/")
	AssertModelField(t, "mode", m.mode, ModeSearch)

	press(m, " ")
	AssertModelField(t, "calls after blank search", len(api.calls()), calls)
	if got := m.searchErrors.Get("searchQuery"); got != `"searchQuery" is not allowed to be empty` {
		t.Errorf("search error = %q", got)
	}
	if !strings.Contains(m.View(), "is not allowed to be empty") {
		t.Error("inline search error should be rendered")
	}
}

func TestModel_SearchResetsPage(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "right")
	press(m, "/")
	typeText(m, "Honda")
	press(m, "enter")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "page", m.query.Page(), 1)
	AssertModelField(t, "last call", lastCall(t, api), "Honda|1")
	AssertModelField(t, "search errors", m.searchErrors.HasErrors(), false)

	rows := m.data.Current().Rows
	if len(rows) != 1 || rows[0].ID != civic.ID {
		t.Errorf("rows = %+v, want only the Civic", rows)
	}

	press(m, "ctrl+r")
	AssertModelField(t, "search after clear", m.query.Search(), "")
	AssertModelField(t, "last call", lastCall(t, api), "|1")
}

func TestModel_SearchNoMatches(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "/")
	typeText(m, "Toyota")
	press(m, "enter")

	AssertModelField(t, "rows", len(m.data.Current().Rows), 0)
	if !strings.Contains(m.View(), "No cars found") {
		t.Error("empty result should render the placeholder")
	}
}

func TestModel_DeleteConfirmed(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)
	calls := len(api.calls())

	press(m, "d")
	AssertModelField(t, "mode", m.mode, ModeDeleteConfirm)
	AssertModelField(t, "selection", m.selection.Status(), SelectionDeleteConfirmPending)
	if !strings.Contains(m.View(), "2015 Ford Focus") {
		t.Error("confirm modal should name the car")
	}

	press(m, "y")

	if len(api.deleted) != 1 || api.deleted[0] != "abc123" {
		t.Fatalf("deleted = %v, want [abc123]", api.deleted)
	}
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "selection", m.selection.Status(), SelectionIdle)
	AssertModelField(t, "status", m.statusMsg, "Deleted 2015 Ford Focus")
	AssertModelField(t, "refetches", len(api.calls()), calls+1)
	AssertModelField(t, "last call", lastCall(t, api), "|1")
}

func TestModel_DeleteCancelled(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "d")
	press(m, "n")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "selection", m.selection.Status(), SelectionIdle)
	AssertModelField(t, "deleted", len(api.deleted), 0)
}

func TestModel_DeleteFailureKeepsModal(t *testing.T) {
	api := seededAPI()
	api.deleteErr = &carapi.APIError{StatusCode: 404, Message: "car not found"}
	m := CreateTestModel(t, api, nil)

	press(m, "d")
	press(m, "y")

	AssertModelField(t, "mode", m.mode, ModeDeleteConfirm)
	AssertModelField(t, "deleting", m.deleting, false)
	if !strings.Contains(m.fullErrorMsg, "car not found") {
		t.Errorf("error = %q", m.fullErrorMsg)
	}
}

func fillForm(f *FormState, car types.CarRecord) {
	for field, value := range car.Draft().Fields() {
		f.SetValue(field, value)
	}
}

func TestModel_CreateSuccess(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "n")
	AssertModelField(t, "mode", m.mode, ModeForm)
	AssertModelField(t, "form mode", m.form.Mode(), FormCreate)

	fillForm(m.form, civic)
	press(m, "enter")

	if len(api.created) != 1 || api.created[0].Model != "Civic" {
		t.Fatalf("created = %+v", api.created)
	}
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "status", m.statusMsg, "Created 2017 Honda Civic")
}

func TestModel_CreateLocalValidation(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "n")
	press(m, "enter")

	AssertModelField(t, "mode", m.mode, ModeForm)
	AssertModelField(t, "created", len(api.created), 0)
	if m.form.Errors().Get(types.FieldMake) == "" {
		t.Error("make should carry an inline error")
	}
	if !strings.HasPrefix(m.fullErrorMsg, "Invalid car:") {
		t.Errorf("error = %q", m.fullErrorMsg)
	}
}

func TestModel_CreateServerRejectionKeepsDraft(t *testing.T) {
	api := seededAPI()
	api.createErr = &carapi.APIError{
		StatusCode: 400,
		Message:    "validation failed",
		Fields:     map[string]string{types.FieldModel: `"model" is required`},
	}
	m := CreateTestModel(t, api, nil)

	press(m, "n")
	fillForm(m.form, civic)
	press(m, "enter")

	AssertModelField(t, "mode", m.mode, ModeForm)
	AssertModelField(t, "submitting", m.form.Submitting(), false)
	AssertModelField(t, "make kept", m.form.Values()[types.FieldMake], "Honda")
	AssertModelField(t, "model error", m.form.Errors().Get(types.FieldModel), `"model" is required`)
	if !strings.Contains(m.fullErrorMsg, "create failed") {
		t.Errorf("error = %q", m.fullErrorMsg)
	}
	if !strings.Contains(m.View(), `"model" is required`) {
		t.Error("server field error should render inline")
	}
}

func TestModel_EditSeedsForm(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "e")
	AssertModelField(t, "mode", m.mode, ModeForm)
	AssertModelField(t, "form mode", m.form.Mode(), FormEdit)
	AssertModelField(t, "seeded make", m.form.Values()[types.FieldMake], "Ford")

	m.form.SetValue(types.FieldModel, "Fiesta")
	press(m, "enter")

	if len(api.updated) != 1 || api.updated[0] != "abc123" {
		t.Fatalf("updated = %v", api.updated)
	}
	AssertModelField(t, "status", m.statusMsg, "Updated 2015 Ford Fiesta")
	AssertModelField(t, "selection", m.selection.Status(), SelectionIdle)
}

func TestModel_FormCancel(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "e")
	press(m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "selection", m.selection.Status(), SelectionIdle)
	if m.form != nil {
		t.Error("form should be discarded")
	}
}

func TestModel_EditLookupMissRefreshes(t *testing.T) {
	api := seededAPI()
	m := CreateTestModel(t, api, nil)
	calls := len(api.calls())

	run(m, m.openEdit("ghost"))

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "selection", m.selection.Status(), SelectionIdle)
	AssertModelField(t, "refetches", len(api.calls()), calls+1)
	if !strings.Contains(m.fullErrorMsg, "ghost") {
		t.Errorf("error = %q", m.fullErrorMsg)
	}
}

func TestModel_NoSelectionOnEmptyPage(t *testing.T) {
	api := newFakeAPI()
	m := CreateTestModel(t, api, nil)

	press(m, "d")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "error", m.errorMsg, "No car selected")
}

func TestModel_HelpModal(t *testing.T) {
	m := CreateTestModel(t, seededAPI(), nil)

	press(m, "?")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	if m.View() == "" {
		t.Error("help view should render")
	}

	press(m, "esc")
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestModel_HistoryDisabled(t *testing.T) {
	m := CreateTestModel(t, seededAPI(), nil)

	press(m, "H")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "status", m.statusMsg, "Activity history is disabled")
}

func TestModel_HistoryModal(t *testing.T) {
	store := &fakeHistory{entries: []types.HistoryEntry{
		{ID: 2, Op: types.OpDelete, CarID: "abc123", Label: "2015 Ford Focus"},
		{ID: 1, Op: types.OpCreate, CarID: "abc123", Label: "2015 Ford Focus"},
	}}
	m := CreateTestModel(t, seededAPI(), store)

	press(m, "H")
	AssertModelField(t, "mode", m.mode, ModeHistory)
	AssertModelField(t, "entries", len(m.history.GetEntries()), 2)
	if !strings.Contains(m.View(), "2015 Ford Focus") {
		t.Error("history modal should list the entries")
	}

	press(m, "j")
	AssertModelField(t, "index", m.history.GetIndex(), 1)

	press(m, "C")
	AssertModelField(t, "cleared", store.cleared, true)
	AssertModelField(t, "entries", len(m.history.GetEntries()), 0)
	AssertModelField(t, "status", m.statusMsg, "History cleared")

	press(m, "esc")
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestModel_MessagesPersistWithoutTimeout(t *testing.T) {
	m := CreateTestModel(t, seededAPI(), nil)

	if cmd := m.setStatusMessage("saved"); cmd != nil {
		t.Error("no clear command expected when message timeout is 0")
	}
	press(m, "x")
	AssertModelField(t, "status", m.statusMsg, "")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", MessageMaxLength+20)
	got := truncate(long)
	AssertModelField(t, "len", len(got), MessageMaxLength)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q", got)
	}
	AssertModelField(t, "short", truncate("ok"), "ok")
}

func TestTruncate_MultibyteStaysValid(t *testing.T) {
	msg := "Deleted " + strings.Repeat("a", 88) + strings.Repeat("é", 20)
	got := truncate(msg)

	if !utf8.ValidString(got) {
		t.Fatalf("truncate() produced invalid UTF-8: %q", got)
	}
	if w := ansi.StringWidth(got); w > MessageMaxLength {
		t.Errorf("width = %d, want at most %d", w, MessageMaxLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q", got)
	}
}

func TestModel_OlderTimerKeepsNewerMessage(t *testing.T) {
	m := CreateTestModel(t, seededAPI(), nil)
	m.messageTimeout = time.Millisecond

	first := m.setErrorMessage("failed to load cars")
	second := m.setErrorMessage("create failed")

	m.Update(first())
	AssertModelField(t, "error after stale clear", m.errorMsg, "create failed")

	m.Update(second())
	AssertModelField(t, "error after own clear", m.errorMsg, "")

	status := m.setStatusMessage("Deleted 2015 Ford Focus")
	m.setStatusMessage("Copied id abc123")
	m.Update(status())
	AssertModelField(t, "status after stale clear", m.statusMsg, "Copied id abc123")
}
