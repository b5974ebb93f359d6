package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/carcli/internal/datasource"
	"github.com/studiowebux/carcli/internal/mutation"
	"github.com/studiowebux/carcli/internal/types"
	"github.com/studiowebux/carcli/internal/validation"
)

// refresh re-fetches the current query; older in-flight fetches become stale
func (m *Model) refresh() tea.Cmd {
	ticket := m.data.Begin(m.query)
	m.loading = true

	ds := m.data
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := ds.Fetch(ctx, ticket)
		return listFetchedMsg{ticket: ticket, result: result, err: err}
	}
}

// handleListFetched applies a fetch result if it is still the newest
func (m *Model) handleListFetched(msg listFetchedMsg) tea.Cmd {
	outcome := m.data.Resolve(msg.ticket, msg.result, msg.err)
	if msg.ticket.Seq == m.data.Latest() {
		m.loading = false
	}

	switch outcome {
	case datasource.Applied:
		m.syncGrid()
		// A delete can leave the page past the end
		if m.query.Clamp(msg.result.TotalPages) {
			return m.refresh()
		}
	case datasource.Failed:
		return m.setErrorMessage(msg.err.Error())
	}
	return nil
}

// syncGrid copies the current rows into the table
func (m *Model) syncGrid() {
	rows := GridRows(m.data.Current().Rows)
	m.grid.SetRows(tableRows(rows))
	if m.grid.Cursor() >= len(rows) {
		m.grid.SetCursor(max(0, len(rows)-1))
	}
}

// selectedCar returns the record under the grid cursor
func (m *Model) selectedCar() (types.CarRecord, bool) {
	rows := m.data.Current().Rows
	i := m.grid.Cursor()
	if i < 0 || i >= len(rows) {
		return types.CarRecord{}, false
	}
	return rows[i], true
}

// openCreate opens an empty form
func (m *Model) openCreate() tea.Cmd {
	if err := m.selection.BeginCreate(); err != nil {
		return m.setErrorMessage(err.Error())
	}
	m.form = NewFormState(FormCreate, nil)
	m.mode = ModeForm
	m.dismissMessages()
	return nil
}

// openEdit opens the form seeded with car id
func (m *Model) openEdit(id string) tea.Cmd {
	if err := m.selection.BeginEdit(m.data.Current(), id); err != nil {
		return m.selectionFailed(err)
	}
	m.form = NewFormState(FormEdit, m.selection.Target())
	m.mode = ModeForm
	m.dismissMessages()
	return nil
}

// openDelete asks to confirm deleting car id
func (m *Model) openDelete(id string) tea.Cmd {
	if err := m.selection.BeginDelete(m.data.Current(), id); err != nil {
		return m.selectionFailed(err)
	}
	m.mode = ModeDeleteConfirm
	m.dismissMessages()
	return nil
}

// selectionFailed reports a failed transition; a lookup miss forces a refresh
func (m *Model) selectionFailed(err error) tea.Cmd {
	var miss *LookupMissError
	if errors.As(err, &miss) {
		m.log.Warn("selected car not in loaded page", "id", miss.ID)
		return tea.Batch(m.setErrorMessage(err.Error()), m.refresh())
	}
	return m.setErrorMessage(err.Error())
}

// closeModal cancels the pending selection and returns to the grid
func (m *Model) closeModal() {
	if m.selection.Status() != SelectionIdle {
		m.selection.Cancel()
	}
	m.form = nil
	m.deleting = false
	m.mode = ModeNormal
}

// submitForm validates the form and sends it
func (m *Model) submitForm() tea.Cmd {
	if m.form == nil || m.form.Submitting() {
		return nil
	}

	draft, errs := m.form.Draft()
	if errs.HasErrors() {
		m.form.SetErrors(errs)
		return m.setErrorMessage(fmt.Sprintf("Invalid car: %s", errs.Error()))
	}
	m.form.SetErrors(nil)
	m.form.SetSubmitting(true)

	mutator := m.mutator
	switch m.form.Mode() {
	case FormEdit:
		target := m.selection.Target()
		if target == nil {
			m.form.SetSubmitting(false)
			return m.setErrorMessage("no car selected")
		}
		id := target.ID
		return m.mutate(types.OpUpdate, func(ctx context.Context) (types.CarRecord, error) {
			return mutator.Update(ctx, id, draft)
		})
	default:
		return m.mutate(types.OpCreate, func(ctx context.Context) (types.CarRecord, error) {
			return mutator.Create(ctx, draft)
		})
	}
}

// confirmDelete sends the delete for the pending target
func (m *Model) confirmDelete() tea.Cmd {
	if m.deleting {
		return nil
	}
	target := m.selection.Target()
	if target == nil {
		m.closeModal()
		return m.setErrorMessage("no car selected")
	}
	m.deleting = true

	car := *target
	mutator := m.mutator
	return m.mutate(types.OpDelete, func(ctx context.Context) (types.CarRecord, error) {
		return car, mutator.Delete(ctx, car.ID, ConfirmLabel(car))
	})
}

func (m *Model) mutate(op types.MutationOp, run func(ctx context.Context) (types.CarRecord, error)) tea.Cmd {
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		car, err := run(ctx)
		return mutationDoneMsg{op: op, car: car, err: err}
	}
}

// handleMutationDone keeps the modal open on failure, otherwise refreshes the current page
func (m *Model) handleMutationDone(msg mutationDoneMsg) tea.Cmd {
	m.deleting = false
	if m.form != nil {
		m.form.SetSubmitting(false)
	}

	if msg.err != nil {
		var mutErr *mutation.MutationError
		if m.form != nil {
			if errors.As(msg.err, &mutErr) {
				m.form.SetErrors(mutErr.Fields)
			} else {
				m.form.SetErrors(nil)
			}
		}
		return m.setErrorMessage(msg.err.Error())
	}

	if m.selection.Status() != SelectionIdle {
		m.selection.Complete()
	}
	m.form = nil
	m.mode = ModeNormal

	var verb string
	switch msg.op {
	case types.OpCreate:
		verb = "Created"
	case types.OpUpdate:
		verb = "Updated"
	default:
		verb = "Deleted"
	}
	return tea.Batch(
		m.setStatusMessage(fmt.Sprintf("%s %s", verb, msg.car.Label())),
		m.refresh(),
	)
}

// updateSearch validates the search input; a valid change re-fetches from page 1
func (m *Model) updateSearch() tea.Cmd {
	value := m.searchInput.Value()
	m.searchErrors = validation.ValidateSearch(value)
	if m.searchErrors.HasErrors() {
		return nil
	}
	if !m.query.SetSearch(validation.NormalizeSearch(value)) {
		return nil
	}
	m.grid.GotoTop()
	return m.refresh()
}

// clearSearch drops the filter without validation
func (m *Model) clearSearch() tea.Cmd {
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.searchErrors = nil
	m.mode = ModeNormal
	if !m.query.ClearSearch() {
		return nil
	}
	m.grid.GotoTop()
	return m.refresh()
}

// changePage moves one page forward or back
func (m *Model) changePage(delta int) tea.Cmd {
	var changed bool
	if delta > 0 {
		changed = m.query.NextPage(m.data.Current().TotalPages)
	} else {
		changed = m.query.PrevPage()
	}
	if !changed {
		return nil
	}
	m.grid.GotoTop()
	return m.refresh()
}

// copySelectedID copies the selected car id to the clipboard
func (m *Model) copySelectedID() tea.Cmd {
	car, ok := m.selectedCar()
	if !ok {
		return m.setErrorMessage("No car selected")
	}
	if err := clipboard.WriteAll(car.ID); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to copy id: %v", err))
	}
	return m.setStatusMessage(fmt.Sprintf("Copied id %s", car.ID))
}

// openHistory shows recorded mutations
func (m *Model) openHistory() tea.Cmd {
	if m.historyStore == nil {
		return m.setStatusMessage("Activity history is disabled")
	}
	m.mode = ModeHistory
	m.updateHistoryView()
	return m.loadHistory()
}

func (m *Model) loadHistory() tea.Cmd {
	m.history.SetLoading(true)
	store := m.historyStore
	profile := m.profile
	return func() tea.Msg {
		entries, err := store.Load(profile, 0)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) clearHistory() tea.Cmd {
	store := m.historyStore
	return func() tea.Msg {
		return historyClearedMsg{err: store.Clear()}
	}
}
