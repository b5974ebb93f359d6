package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/carcli/internal/types"
	"github.com/studiowebux/carcli/internal/validation"
)

// fieldLabels are the form labels per wire field
var fieldLabels = map[string]string{
	types.FieldMake:             "Make",
	types.FieldModel:            "Model",
	types.FieldSize:             "Size",
	types.FieldStyle:            "Style",
	types.FieldTransmissionType: "Transmission",
	types.FieldPrice:            "Price",
	types.FieldReleaseDate:      "Release year",
}

var fieldPlaceholders = map[string]string{
	types.FieldSize:             "Compact, Midsize, Large",
	types.FieldStyle:            "Sedan, Hatchback, 4dr SUV",
	types.FieldTransmissionType: "AUTOMATIC, MANUAL",
	types.FieldPrice:            "18000",
	types.FieldReleaseDate:      "2017",
}

// FormState holds the inputs of the create/edit car form
type FormState struct {
	mode       FormMode
	inputs     []textinput.Model
	focus      int
	errors     validation.Errors
	submitting bool
}

// NewFormState creates a form in mode, seeded from seed when editing
func NewFormState(mode FormMode, seed *types.CarRecord) *FormState {
	values := types.CarDraft{}.Fields()
	if seed != nil {
		values = seed.Draft().Fields()
	}

	f := &FormState{mode: mode}
	for _, field := range types.DraftFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Placeholder = fieldPlaceholders[field]
		ti.SetValue(values[field])
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

// Mode returns the form mode
func (f *FormState) Mode() FormMode {
	return f.mode
}

// Focused returns the index of the focused field
func (f *FormState) Focused() int {
	return f.focus
}

// FocusedField returns the wire name of the focused field
func (f *FormState) FocusedField() string {
	return types.DraftFields[f.focus]
}

// Next focuses the next field, wrapping around
func (f *FormState) Next() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

// Prev focuses the previous field, wrapping around
func (f *FormState) Prev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *FormState) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Update forwards a key to the focused input
func (f *FormState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// SetValue sets the text of field
func (f *FormState) SetValue(field, value string) {
	for i, name := range types.DraftFields {
		if name == field {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

// Values returns the current text per wire field
func (f *FormState) Values() map[string]string {
	values := make(map[string]string, len(f.inputs))
	for i, field := range types.DraftFields {
		values[field] = f.inputs[i].Value()
	}
	return values
}

// Draft parses the inputs; errors are per field
func (f *FormState) Draft() (types.CarDraft, validation.Errors) {
	return validation.ParseDraft(f.Values())
}

// Errors returns the inline field errors
func (f *FormState) Errors() validation.Errors {
	return f.errors
}

// SetErrors replaces the inline field errors
func (f *FormState) SetErrors(errs validation.Errors) {
	f.errors = errs
}

// Submitting reports whether a save is in flight
func (f *FormState) Submitting() bool {
	return f.submitting
}

// SetSubmitting marks a save as in flight or finished
func (f *FormState) SetSubmitting(v bool) {
	f.submitting = v
}

// inputView renders field i
func (f *FormState) inputView(i int) string {
	return f.inputs[i].View()
}
