package tui

import (
	"fmt"
	"strings"

	"github.com/studiowebux/carcli/internal/keybinds"
	"github.com/studiowebux/carcli/internal/types"
)

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := fmt.Sprintf("↑/↓ j/k: scroll | %s: close",
		m.keybinds.GetBindingString(keybinds.ContextHelp, keybinds.ActionCloseModal))

	// Footer is OUTSIDE the viewport so it stays visible
	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	return renderModal(fullContent, colorBlue, m.width-ModalWidthMarginNarrow, m.height-ModalHeightMarginMed, m.width, m.height)
}

// renderForm renders the create/edit car form
func (m Model) renderForm() string {
	if m.form == nil {
		return m.renderMain()
	}

	title := "New car"
	if m.form.Mode() == FormEdit {
		if target := m.selection.Target(); target != nil {
			title = "Edit " + target.Label()
		} else {
			title = "Edit car"
		}
	}

	var content strings.Builder
	content.WriteString(styleTitle.Render(title) + "\n\n")

	errs := m.form.Errors()
	for i, field := range types.DraftFields {
		label := fmt.Sprintf("%-14s", fieldLabels[field])
		if i == m.form.Focused() {
			label = styleTitleFocused.Render(label)
		} else {
			label = styleSubtle.Render(label)
		}
		content.WriteString(label + " " + m.form.inputView(i) + "\n")
		if msg := errs.Get(field); msg != "" {
			content.WriteString(strings.Repeat(" ", 15) + styleError.Render(msg) + "\n")
		}
	}

	content.WriteString("\n")
	switch {
	case m.form.Submitting():
		content.WriteString(styleWarning.Render("Saving...") + "\n")
	case m.fullErrorMsg != "":
		content.WriteString(styleError.Render(wrapText(m.fullErrorMsg, m.formWidth()-4)) + "\n")
	}

	content.WriteString(styleSubtle.Render(fmt.Sprintf("%s: next field | %s: save | %s: cancel",
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionFormNextField),
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionFormSubmit),
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionCloseModal))))

	return renderModal(content.String(), colorCyan, m.formWidth(), 0, m.width, m.height)
}

func (m Model) formWidth() int {
	return min(FormModalWidth, m.width-ModalWidthMargin)
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m Model) renderDeleteConfirm() string {
	label := "this car"
	if target := m.selection.Target(); target != nil {
		label = ConfirmLabel(*target)
	}

	var content strings.Builder
	content.WriteString(styleError.Bold(true).Render("Delete car") + "\n\n")
	content.WriteString(fmt.Sprintf("Delete %s?\n\n", styleWarning.Render(label)))

	switch {
	case m.deleting:
		content.WriteString(styleWarning.Render("Deleting...") + "\n\n")
	case m.fullErrorMsg != "":
		content.WriteString(styleError.Render(wrapText(m.fullErrorMsg, m.formWidth()-4)) + "\n\n")
	}

	content.WriteString(styleSubtle.Render(fmt.Sprintf("%s: delete | %s: cancel",
		m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm),
		m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel))))

	return renderModal(content.String(), colorRed, m.formWidth(), 0, m.width, m.height)
}

// renderHistory renders the activity history with a detail pane
func (m Model) renderHistory() string {
	entry := m.history.GetCurrentEntry()

	detail := styleSubtle.Render("No entry selected")
	if entry != nil {
		detail = renderHistoryDetail(*entry)
	}

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:       m.width - ModalWidthMargin,
		ModalHeight:      m.height - ModalHeightMargin,
		IsSplitView:      true,
		LeftTitle:        "Activity",
		LeftContent:      m.modalView.View(),
		LeftBorderColor:  colorBlue,
		LeftIsFocused:    true,
		RightTitle:       "Details",
		RightContent:     detail,
		RightBorderColor: colorGray,
		Footer: fmt.Sprintf("↑/↓: navigate | %s: refresh | %s: clear | %s: close",
			m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionRefresh),
			m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionHistoryClear),
			m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionCloseModal)),
		LeftWidthRatio: HistoryListWidthRatio,
	}, m.width, m.height)
}

func renderHistoryDetail(e types.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Operation: %s\n", e.Op))
	b.WriteString(fmt.Sprintf("Car:       %s\n", e.Label))
	if e.CarID != "" {
		b.WriteString(fmt.Sprintf("ID:        %s\n", e.CarID))
	}
	b.WriteString(fmt.Sprintf("When:      %s\n", e.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Duration:  %dms\n", e.Duration))
	if e.Profile != "" {
		b.WriteString(fmt.Sprintf("Profile:   %s\n", e.Profile))
	}
	if e.Succeeded() {
		b.WriteString("\n" + styleSuccess.Render("Succeeded"))
	} else {
		b.WriteString("\n" + styleError.Render("Failed: "+e.Error))
	}
	return b.String()
}

// updateHistoryView rebuilds the history list content
func (m *Model) updateHistoryView() {
	m.modalView.Width = int(float64(m.width-ModalWidthMargin-3)*HistoryListWidthRatio) - 2
	m.modalView.Height = m.height - ModalHeightMargin - 7

	entries := m.history.GetEntries()
	index := m.history.GetIndex()

	var content strings.Builder
	switch {
	case m.history.IsLoading() && len(entries) == 0:
		content.WriteString("Loading history...")
	case len(entries) == 0:
		content.WriteString("No recorded changes")
	default:
		for i, entry := range entries {
			statusStyle := styleSuccess
			status := "ok"
			if !entry.Succeeded() {
				statusStyle = styleError
				status = "failed"
			}

			line := fmt.Sprintf("%s %-6s %s %s",
				entry.Timestamp.Format("01-02 15:04"),
				entry.Op,
				entry.Label,
				statusStyle.Render(status))

			// Highlight selected entry
			if i == index {
				line = styleSelected.Render(line)
			}
			content.WriteString(line + "\n")
		}
	}

	m.modalView.SetContent(content.String())

	// Keep the selected entry visible
	if len(entries) > 0 {
		if index < m.modalView.YOffset {
			m.modalView.SetYOffset(index)
		} else if index >= m.modalView.YOffset+m.modalView.Height {
			m.modalView.SetYOffset(index - m.modalView.Height + 1)
		}
	} else {
		m.modalView.GotoTop()
	}
}
