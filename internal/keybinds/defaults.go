package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerSearchBindings(r)
	registerFormBindings(r)
	registerConfirmBindings(r)
	registerHistoryBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalModeBindings sets up keybindings for the car grid
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)

	// Rows
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextNormal, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextNormal, []string{"end", "G"}, ActionGoToBottom)

	// Pages
	r.RegisterMultiple(ContextNormal, []string{"right", "l", "pgdown"}, ActionNextPage)
	r.RegisterMultiple(ContextNormal, []string{"left", "h", "pgup"}, ActionPrevPage)

	// Cars
	r.RegisterMultiple(ContextNormal, []string{"n", "a"}, ActionNewCar)
	r.RegisterMultiple(ContextNormal, []string{"e", "enter"}, ActionEditCar)
	r.Register(ContextNormal, "d", ActionDeleteCar)
	r.Register(ContextNormal, "y", ActionCopyID)
	r.Register(ContextNormal, "r", ActionRefresh)

	// Search
	r.Register(ContextNormal, "/", ActionOpenSearch)
	r.Register(ContextNormal, "ctrl+r", ActionSearchClear)

	// Modals
	r.Register(ContextNormal, "H", ActionOpenHistory)
	r.Register(ContextNormal, "?", ActionOpenHelp)
	r.Register(ContextNormal, "x", ActionDismissMessage)
}

// registerSearchBindings sets up keybindings for the search input; other keys edit the text
func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionSearchApply)
	r.Register(ContextSearch, "esc", ActionSearchClear)
}

// registerFormBindings sets up keybindings for the create/edit form
func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionFormNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionFormPrevField)
	r.RegisterMultiple(ContextForm, []string{"ctrl+s", "enter"}, ActionFormSubmit)
	r.Register(ContextForm, "esc", ActionCloseModal)
}

// registerConfirmBindings sets up keybindings for confirmation dialogs
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc", "q"}, ActionCancel)
}

// registerHistoryBindings sets up keybindings for the activity history modal
func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"esc", "q", "H"}, ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "C", ActionHistoryClear)
	r.Register(ContextHistory, "r", ActionRefresh)
}

// registerHelpBindings sets up keybindings for the help modal
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
}
