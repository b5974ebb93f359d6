/*
Package tui implements the terminal admin view for cars.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, modes and message types
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Fetches, mutations and other side effects as tea.Cmd
  - render.go, modals.go: The car grid and the form, confirm, history and help modals
  - grid.go: Mapping of car records to grid rows

# State Management

  - datasource.Query: page and search text; any change triggers a re-fetch
  - datasource.DataSource: the last applied page; responses
    for superseded requests are discarded by sequence number
  - SelectionState: Idle, CreatePending, EditPending or DeleteConfirmPending
  - FormState: form inputs and inline field errors
  - HistoryState: recorded mutations shown in the activity modal

# Threading Model

All state changes happen in Update on Bubble Tea's event loop. API calls
run inside tea.Cmd goroutines and report back as messages.

# Example Usage

	err := tui.Run(tui.Options{
		Lister:  client,
		Mutator: mutation.New(client),
		History: historyMgr,
	})
*/
package tui
