package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextNormal  Context = "normal"  // Car grid
	ContextSearch  Context = "search"  // Search input
	ContextForm    Context = "form"    // Create/edit car form
	ContextConfirm Context = "confirm" // Delete confirmation
	ContextHistory Context = "history" // Activity history modal
	ContextHelp    Context = "help"    // Help modal
)

// AllContexts lists every context in display order
var AllContexts = []Context{
	ContextGlobal,
	ContextNormal,
	ContextSearch,
	ContextForm,
	ContextConfirm,
	ContextHistory,
	ContextHelp,
}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"   // Move up one row
	ActionNavigateDown Action = "navigate_down" // Move down one row
	ActionGoToTop      Action = "go_to_top"     // First row
	ActionGoToBottom   Action = "go_to_bottom"  // Last row

	// Pagination
	ActionNextPage Action = "next_page" // Next page of cars
	ActionPrevPage Action = "prev_page" // Previous page of cars

	// Car actions (Normal mode)
	ActionNewCar    Action = "new_car"    // Open the create form
	ActionEditCar   Action = "edit_car"   // Open the edit form for the selected row
	ActionDeleteCar Action = "delete_car" // Ask to delete the selected row
	ActionCopyID    Action = "copy_id"    // Copy the selected car id
	ActionRefresh   Action = "refresh"    // Re-fetch the current page

	// Search actions
	ActionOpenSearch  Action = "open_search"  // Focus the search input
	ActionSearchApply Action = "search_apply" // Leave the search input keeping the filter
	ActionSearchClear Action = "search_clear" // Drop the search filter

	// Modal launchers
	ActionOpenHistory Action = "open_history" // Open activity history
	ActionOpenHelp    Action = "open_help"    // Open help

	// Form actions
	ActionFormNextField Action = "form_next_field" // Focus next field
	ActionFormPrevField Action = "form_prev_field" // Focus previous field
	ActionFormSubmit    Action = "form_submit"     // Submit the form

	// Modal actions
	ActionCloseModal Action = "close_modal" // Close current modal
	ActionConfirm    Action = "confirm"     // Confirm action (y/Y)
	ActionCancel     Action = "cancel"      // Cancel action (n/N)

	// History actions
	ActionHistoryClear Action = "history_clear" // Clear recorded history

	// Notifications
	ActionDismissMessage Action = "dismiss_message" // Dismiss status/error notification
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:           {ActionQuit, "Quit", "Global"},
	ActionQuitForce:      {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:     {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:   {ActionNavigateDown, "Move down", "Navigation"},
	ActionGoToTop:        {ActionGoToTop, "First row", "Navigation"},
	ActionGoToBottom:     {ActionGoToBottom, "Last row", "Navigation"},
	ActionNextPage:       {ActionNextPage, "Next page", "Pagination"},
	ActionPrevPage:       {ActionPrevPage, "Previous page", "Pagination"},
	ActionNewCar:         {ActionNewCar, "New car", "Cars"},
	ActionEditCar:        {ActionEditCar, "Edit selected car", "Cars"},
	ActionDeleteCar:      {ActionDeleteCar, "Delete selected car", "Cars"},
	ActionCopyID:         {ActionCopyID, "Copy car id", "Cars"},
	ActionRefresh:        {ActionRefresh, "Refresh", "Cars"},
	ActionOpenSearch:     {ActionOpenSearch, "Search", "Search"},
	ActionSearchApply:    {ActionSearchApply, "Keep search", "Search"},
	ActionSearchClear:    {ActionSearchClear, "Clear search", "Search"},
	ActionOpenHistory:    {ActionOpenHistory, "Activity history", "Information"},
	ActionOpenHelp:       {ActionOpenHelp, "Help", "Information"},
	ActionFormNextField:  {ActionFormNextField, "Next field", "Form"},
	ActionFormPrevField:  {ActionFormPrevField, "Previous field", "Form"},
	ActionFormSubmit:     {ActionFormSubmit, "Save", "Form"},
	ActionCloseModal:     {ActionCloseModal, "Close", "Modal"},
	ActionConfirm:        {ActionConfirm, "Confirm", "Modal"},
	ActionCancel:         {ActionCancel, "Cancel", "Modal"},
	ActionHistoryClear:   {ActionHistoryClear, "Clear history", "History"},
	ActionDismissMessage: {ActionDismissMessage, "Dismiss notification", "Global"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is defined
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}
