package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/carcli/internal/keybinds"
	"github.com/studiowebux/carcli/internal/validation"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleTitleUnfocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// gridStyles derives the table styles from the palette
func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		BorderBottom(true).
		Bold(true).
		Foreground(colorCyan)
	s.Selected = styleSelected.Bold(true)
	return s
}

// renderMain renders the car grid with its search bar, pager and status bar
func (m Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	title := styleTitle.Render("Cars")
	if m.loading {
		title += " " + styleWarning.Render("loading...")
	}

	gridBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(m.width - 2).
		Render(m.renderGrid())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.renderSearchBar(),
		gridBox,
		m.renderPager(),
		m.renderStatusBar(),
	)
}

func (m Model) renderGrid() string {
	if len(m.data.Current().Rows) == 0 {
		msg := "No cars found"
		if !m.data.Loaded() {
			msg = "Loading cars..."
		}
		return lipgloss.Place(m.width-4, m.grid.Height(), lipgloss.Center, lipgloss.Center, styleSubtle.Render(msg))
	}
	return m.grid.View()
}

// renderSearchBar renders the search input and its inline error
func (m Model) renderSearchBar() string {
	var line string
	switch {
	case m.mode == ModeSearch:
		line = styleWarning.Render("Search: ") + m.searchInput.View()
	case m.query.Search() != "":
		line = fmt.Sprintf("Search: %s %s", m.query.Search(),
			styleSubtle.Render(fmt.Sprintf("(%s: edit | %s: clear)",
				m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenSearch),
				m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionSearchClear))))
	default:
		line = styleSubtle.Render(fmt.Sprintf("Search: press %s to filter by make or model",
			m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenSearch)))
	}

	inline := ""
	if msg := m.searchErrors.Get(validation.SearchField); msg != "" {
		inline = styleError.Render("  " + msg)
	}
	return line + "\n" + inline
}

// renderPager renders the page position and row count
func (m Model) renderPager() string {
	current := m.data.Current()
	count, exact := current.DisplayCount(m.pageSize)
	countText := fmt.Sprintf("%d cars", count)
	if !exact {
		countText = "~" + countText
	}

	return styleSubtle.Render(fmt.Sprintf("Page %d of %d | %s | %s/%s: page",
		m.query.Page(), current.TotalPages, countText,
		m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionPrevPage),
		m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionNextPage)))
}

func (m Model) renderStatusBar() string {
	// Left side - profile
	profile := m.profile
	if profile == "" {
		profile = "default"
	}
	left := fmt.Sprintf("Profile: %s", profile)

	// Right side - messages
	right := ""
	if m.errorMsg != "" {
		right = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		right = styleSuccess.Render(m.statusMsg)
	} else {
		right = styleSubtle.Render("n: new | e: edit | d: delete | ? for help | q to quit")
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// updateViewport resizes the grid and modal viewports
func (m *Model) updateViewport() {
	m.grid.SetColumns(gridColumns(m.width - 4))
	m.grid.SetWidth(m.width - 4)
	height := m.height - MainViewChromeLines
	if height < 3 {
		height = 3
	}
	m.grid.SetHeight(height)

	m.helpView.Width = m.width - ModalWidthMarginNarrow - 4
	m.helpView.Height = m.height - ModalHeightMarginMed - 8

	m.searchInput.Width = m.width - 12
}

// helpSections orders the contexts shown in the help modal
var helpSections = []struct {
	title   string
	context keybinds.Context
}{
	{"Grid", keybinds.ContextNormal},
	{"Search", keybinds.ContextSearch},
	{"Car form", keybinds.ContextForm},
	{"Delete confirmation", keybinds.ContextConfirm},
	{"Activity history", keybinds.ContextHistory},
	{"Global", keybinds.ContextGlobal},
}

// updateHelpView rebuilds the help text from the active keybindings
func (m *Model) updateHelpView() {
	var content strings.Builder

	for _, section := range helpSections {
		bindings := m.keybinds.ListBindings(section.context)
		if len(bindings) == 0 {
			continue
		}

		// Group keys per action, keeping the action order
		keysByAction := map[keybinds.Action][]string{}
		var actions []keybinds.Action
		for _, b := range bindings {
			if _, seen := keysByAction[b.Action]; !seen {
				actions = append(actions, b.Action)
			}
			keysByAction[b.Action] = append(keysByAction[b.Action], b.Key)
		}
		sort.SliceStable(actions, func(i, j int) bool {
			return keybinds.GetActionInfo(actions[i]).Description < keybinds.GetActionInfo(actions[j]).Description
		})

		content.WriteString(styleTitle.Render(section.title) + "\n")
		for _, action := range actions {
			keys := strings.Join(keysByAction[action], "/")
			content.WriteString(fmt.Sprintf("  %-22s %s\n", keys, keybinds.GetActionInfo(action).Description))
		}
		content.WriteString("\n")
	}

	m.helpView.SetContent(content.String())
	m.helpView.GotoTop()
}
