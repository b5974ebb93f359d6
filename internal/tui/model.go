package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/carcli/internal/datasource"
	"github.com/studiowebux/carcli/internal/keybinds"
	"github.com/studiowebux/carcli/internal/types"
	"github.com/studiowebux/carcli/internal/validation"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeForm
	ModeDeleteConfirm
	ModeHistory
	ModeHelp
)

// Mutator runs create, update and delete; mutation.Controller satisfies it
type Mutator interface {
	Create(ctx context.Context, draft types.CarDraft) (types.CarRecord, error)
	Update(ctx context.Context, id string, draft types.CarDraft) (types.CarRecord, error)
	Delete(ctx context.Context, id, label string) error
}

// HistoryStore reads recorded mutations; history.Manager satisfies it
type HistoryStore interface {
	Load(profileName string, limit int) ([]types.HistoryEntry, error)
	Clear() error
}

// Model represents the TUI state
type Model struct {
	// Core state
	mode     Mode
	keybinds *keybinds.Registry
	log      *slog.Logger
	profile  string

	// Data
	data      *datasource.DataSource
	query     *datasource.Query
	selection *SelectionState
	mutator   Mutator
	pageSize  int

	requestTimeout time.Duration
	messageTimeout time.Duration

	// Grid and search
	grid         table.Model
	searchInput  textinput.Model
	searchErrors validation.Errors

	// Modals
	form         *FormState
	deleting     bool // Delete request in flight
	historyStore HistoryStore
	history      *HistoryState
	helpView     viewport.Model
	modalView    viewport.Model

	// UI state
	width         int
	height        int
	loading       bool
	statusMsg     string
	errorMsg      string // Truncated error for footer
	fullStatusMsg string
	fullErrorMsg  string
	statusSeq     uint64 // Bumped per status message
	errorSeq      uint64 // Bumped per error message
}

// Init starts the first fetch
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case listFetchedMsg:
		cmd = m.handleListFetched(msg)

	case mutationDoneMsg:
		cmd = m.handleMutationDone(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			m.history.SetLoading(false)
			cmd = m.setErrorMessage(msg.err.Error())
			break
		}
		m.history.SetEntries(msg.entries)
		m.updateHistoryView()

	case historyClearedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage(msg.err.Error())
			break
		}
		m.history.Reset()
		m.updateHistoryView()
		cmd = m.setStatusMessage("History cleared")

	case clearStatusMsg:
		// A newer message restarted the timer
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.fullStatusMsg = ""
		}

	case clearErrorMsg:
		if msg.seq == m.errorSeq {
			m.errorMsg = ""
			m.fullErrorMsg = ""
		}

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeForm:
		return m.renderForm()
	case ModeDeleteConfirm:
		return m.renderDeleteConfirm()
	case ModeHistory:
		return m.renderHistory()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// Custom message types
type listFetchedMsg struct {
	ticket datasource.Ticket
	result types.ListResult
	err    error
}

type mutationDoneMsg struct {
	op  types.MutationOp
	car types.CarRecord
	err error
}

type historyLoadedMsg struct {
	entries []types.HistoryEntry
	err     error
}

type historyClearedMsg struct {
	err error
}

// Clear messages carry the sequence of the notification they expire
type clearStatusMsg struct{ seq uint64 }
type clearErrorMsg struct{ seq uint64 }

type errorMsg string

// truncate shortens a notification to MessageMaxLength terminal cells
func truncate(msg string) string {
	return ansi.Truncate(msg, MessageMaxLength, "...")
}

// Helper methods for setting messages with optional timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.fullStatusMsg = msg
	m.statusMsg = truncate(msg)
	m.statusSeq++

	if m.messageTimeout > 0 {
		seq := m.statusSeq
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})
	}
	return nil
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMsg = msg
	m.errorMsg = truncate(msg)
	m.errorSeq++

	if m.messageTimeout > 0 {
		seq := m.errorSeq
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearErrorMsg{seq: seq}
		})
	}
	return nil
}

// dismissMessages clears both notifications
func (m *Model) dismissMessages() {
	m.statusMsg = ""
	m.fullStatusMsg = ""
	m.errorMsg = ""
	m.fullErrorMsg = ""
}
