package tui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/studiowebux/carcli/internal/types"
)

// SelectionStatus is where the grid is in a create/edit/delete flow
type SelectionStatus int

const (
	SelectionIdle SelectionStatus = iota
	SelectionCreatePending
	SelectionEditPending
	SelectionDeleteConfirmPending
)

func (s SelectionStatus) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionCreatePending:
		return "create_pending"
	case SelectionEditPending:
		return "edit_pending"
	case SelectionDeleteConfirmPending:
		return "delete_confirm_pending"
	default:
		return fmt.Sprintf("selection(%d)", int(s))
	}
}

// FormMode is the mode the car form opens in
type FormMode int

const (
	FormNone FormMode = iota
	FormCreate
	FormEdit
)

func (f FormMode) String() string {
	switch f {
	case FormCreate:
		return "create"
	case FormEdit:
		return "edit"
	default:
		return "none"
	}
}

// ErrInvalidTransition is returned for a selection change not allowed from the current state
var ErrInvalidTransition = errors.New("invalid selection transition")

// LookupMissError means an edit or delete named a car that is not in the loaded page
type LookupMissError struct {
	ID string
}

func (e *LookupMissError) Error() string {
	return fmt.Sprintf("car %s is not on the current page", e.ID)
}

// SelectionState tracks the car targeted by a pending create, edit or delete
type SelectionState struct {
	mu sync.RWMutex

	status SelectionStatus
	target *types.CarRecord
}

// NewSelectionState creates an idle selection
func NewSelectionState() *SelectionState {
	return &SelectionState{status: SelectionIdle}
}

// Status returns the current state
func (s *SelectionState) Status() SelectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Target returns the selected record (nil when idle or creating)
func (s *SelectionState) Target() *types.CarRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.target == nil {
		return nil
	}
	car := *s.target
	return &car
}

// FormMode derives the form mode from the state
func (s *SelectionState) FormMode() FormMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.status {
	case SelectionCreatePending:
		return FormCreate
	case SelectionEditPending:
		return FormEdit
	default:
		return FormNone
	}
}

// BeginCreate moves Idle -> CreatePending
func (s *SelectionState) BeginCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != SelectionIdle {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.status, SelectionCreatePending)
	}
	s.status = SelectionCreatePending
	s.target = nil
	return nil
}

// BeginEdit moves Idle -> EditPending for car id, which must be in rows
func (s *SelectionState) BeginEdit(rows types.ListResult, id string) error {
	return s.begin(rows, id, SelectionEditPending)
}

// BeginDelete moves Idle -> DeleteConfirmPending for car id, which must be in rows
func (s *SelectionState) BeginDelete(rows types.ListResult, id string) error {
	return s.begin(rows, id, SelectionDeleteConfirmPending)
}

func (s *SelectionState) begin(rows types.ListResult, id string, next SelectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != SelectionIdle {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.status, next)
	}

	car, ok := rows.Find(id)
	if !ok {
		return &LookupMissError{ID: id}
	}
	s.status = next
	s.target = &car
	return nil
}

// Cancel returns a pending state to Idle
func (s *SelectionState) Cancel() error {
	return s.toIdle()
}

// Complete returns a pending state to Idle after a successful mutation
func (s *SelectionState) Complete() error {
	return s.toIdle()
}

func (s *SelectionState) toIdle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == SelectionIdle {
		return fmt.Errorf("%w: already idle", ErrInvalidTransition)
	}
	s.status = SelectionIdle
	s.target = nil
	return nil
}
