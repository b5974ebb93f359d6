package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/carcli/internal/datasource"
	"github.com/studiowebux/carcli/internal/keybinds"
	"github.com/studiowebux/carcli/internal/logging"
)

// Options configures the TUI
type Options struct {
	Lister   datasource.Lister
	Mutator  Mutator
	History  HistoryStore // nil disables the activity modal
	Keybinds *keybinds.Registry
	Logger   *slog.Logger
	Profile  string

	PageSize       int           // Used for the approximate row count
	RequestTimeout time.Duration // Per API call
	MessageTimeout time.Duration // 0 keeps notifications until dismissed
}

// New creates a new TUI model
func New(opts Options) (*Model, error) {
	if opts.Lister == nil {
		return nil, errors.New("tui: a car lister is required")
	}
	if opts.Mutator == nil {
		return nil, errors.New("tui: a mutator is required")
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.PageSize < 1 {
		opts.PageSize = 5
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "make or model"
	search.CharLimit = 100

	grid := table.New(
		table.WithColumns(gridColumns(80)),
		table.WithFocused(true),
		table.WithHeight(opts.PageSize+1),
	)
	grid.SetStyles(gridStyles())

	m := &Model{
		mode:           ModeNormal,
		keybinds:       opts.Keybinds,
		log:            opts.Logger,
		profile:        opts.Profile,
		data:           datasource.New(opts.Lister, opts.Logger),
		query:          datasource.NewQuery(),
		selection:      NewSelectionState(),
		mutator:        opts.Mutator,
		pageSize:       opts.PageSize,
		requestTimeout: opts.RequestTimeout,
		messageTimeout: opts.MessageTimeout,
		grid:           grid,
		searchInput:    search,
		historyStore:   opts.History,
		history:        NewHistoryState(),
		helpView:       viewport.New(80, 20),
		modalView:      viewport.New(80, 20),
	}

	return m, nil
}

// Run starts the TUI and blocks until it exits
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	// Note: Mouse is disabled by default in bubbletea
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
