package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin      = 3  // Standard vertical margin (m.height - 3)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalHeightMarginMed   = 4  // Medium vertical margin (m.height - 4)

	// Form modal width, capped by the terminal width
	FormModalWidth = 64

	// Main view rows outside the grid: title, search (2), border (2), pager, status bar
	MainViewChromeLines = 8

	// Footer notifications are truncated to this many characters
	MessageMaxLength = 100

	// Split View Ratios
	HistoryListWidthRatio = 0.55 // History list pane share, detail gets the rest
)
