package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/carcli/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	// Mode-specific handling
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeDeleteConfirm:
		return m.handleDeleteConfirmKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// handleNormalKeys handles keyboard input on the car grid
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit

	case keybinds.ActionNavigateUp:
		m.grid.MoveUp(1)

	case keybinds.ActionNavigateDown:
		m.grid.MoveDown(1)

	case keybinds.ActionGoToTop:
		m.grid.GotoTop()

	case keybinds.ActionGoToBottom:
		m.grid.GotoBottom()

	case keybinds.ActionNextPage:
		return m.changePage(1)

	case keybinds.ActionPrevPage:
		return m.changePage(-1)

	case keybinds.ActionNewCar:
		return m.openCreate()

	case keybinds.ActionEditCar:
		car, ok := m.selectedCar()
		if !ok {
			return m.setErrorMessage("No car selected")
		}
		return m.openEdit(car.ID)

	case keybinds.ActionDeleteCar:
		car, ok := m.selectedCar()
		if !ok {
			return m.setErrorMessage("No car selected")
		}
		return m.openDelete(car.ID)

	case keybinds.ActionCopyID:
		return m.copySelectedID()

	case keybinds.ActionRefresh:
		return m.refresh()

	case keybinds.ActionOpenSearch:
		m.mode = ModeSearch
		m.searchInput.SetValue(m.query.Search())
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()

	case keybinds.ActionSearchClear:
		return m.clearSearch()

	case keybinds.ActionOpenHistory:
		return m.openHistory()

	case keybinds.ActionOpenHelp:
		m.updateHelpView()
		m.mode = ModeHelp

	case keybinds.ActionDismissMessage:
		m.dismissMessages()
	}

	return nil
}

// handleSearchKeys handles keyboard input while typing a search
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextSearch, msg.String()); ok {
		switch action {
		case keybinds.ActionSearchApply:
			m.searchInput.Blur()
			m.mode = ModeNormal
			return nil
		case keybinds.ActionSearchClear:
			return m.clearSearch()
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return tea.Batch(cmd, m.updateSearch())
}

// handleFormKeys handles keyboard input in the create/edit form
func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	if m.form == nil {
		m.mode = ModeNormal
		return nil
	}
	// Input is locked while the save is in flight
	if m.form.Submitting() {
		return nil
	}

	if action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String()); ok {
		switch action {
		case keybinds.ActionFormNextField:
			m.form.Next()
			return nil
		case keybinds.ActionFormPrevField:
			m.form.Prev()
			return nil
		case keybinds.ActionFormSubmit:
			return m.submitForm()
		case keybinds.ActionCloseModal:
			m.closeModal()
			m.dismissMessages()
			return nil
		}
	}

	return m.form.Update(msg)
}

// handleDeleteConfirmKeys handles keyboard input in the delete confirmation
func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	if m.deleting {
		return nil
	}

	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		return m.confirmDelete()
	case keybinds.ActionCancel:
		m.closeModal()
		m.dismissMessages()
	}
	return nil
}

// handleHistoryKeys handles keyboard input in the activity history modal
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHistory, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal

	case keybinds.ActionNavigateUp:
		m.history.Navigate(-1)
		m.updateHistoryView()

	case keybinds.ActionNavigateDown:
		m.history.Navigate(1)
		m.updateHistoryView()

	case keybinds.ActionHistoryClear:
		return m.clearHistory()

	case keybinds.ActionRefresh:
		return m.loadHistory()
	}

	return nil
}

// handleHelpKeys handles keyboard input in the help modal
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal

	case keybinds.ActionNavigateDown:
		m.helpView.LineDown(1)

	case keybinds.ActionNavigateUp:
		m.helpView.LineUp(1)
	}

	return nil
}
