package keybinds

import (
	"sort"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match attempts to match a key to an action in the given context
// Returns the action and whether a match was found
// Contexts are checked in priority order: specific context -> global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if action, ok := r.bindings[context][key]; ok {
		return action, true
	}
	if action, ok := r.bindings[ContextGlobal][key]; ok {
		return action, true
	}
	return "", false
}

// GetBinding returns the key(s) bound to an action in a context, sorted
func (r *Registry) GetBinding(context Context, action Action) []string {
	keys := keysFor(r.bindings[context], action)
	if len(keys) == 0 {
		keys = keysFor(r.bindings[ContextGlobal], action)
	}
	return keys
}

func keysFor(bindings map[string]Action, action Action) []string {
	var keys []string
	for key, act := range bindings {
		if act == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, "/")
}

// ListBindings returns the bindings of a context sorted by action then key
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
	}
	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Action != bindings[j].Action {
			return bindings[i].Action < bindings[j].Action
		}
		return bindings[i].Key < bindings[j].Key
	})
	return bindings
}

// HasBinding checks if a key is bound in a context
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	clone.Merge(r)
	return clone
}

// Merge combines bindings from another registry, with other taking precedence
func (r *Registry) Merge(other *Registry) {
	for context, contextBindings := range other.bindings {
		for key, action := range contextBindings {
			r.Register(context, key, action)
		}
	}
}
