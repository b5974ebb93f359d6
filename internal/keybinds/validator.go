package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]bool

	// contextHierarchy defines context inheritance
	contextHierarchy map[Context]Context
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{
			"ctrl+c": true, // Force quit should always work
		},
		contextHierarchy: map[Context]Context{
			ContextNormal:  ContextGlobal,
			ContextSearch:  ContextGlobal,
			ContextForm:    ContextGlobal,
			ContextConfirm: ContextGlobal,
			ContextHistory: ContextGlobal,
			ContextHelp:    ContextGlobal,
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkReservedKeys(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a user configuration applied over the defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkConfigEntries(config, result)
	if result.HasErrors() {
		return result
	}

	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Message: err.Error(),
		})
		return result
	}

	registryResult := v.ValidateRegistry(registry)
	result.Errors = append(result.Errors, registryResult.Errors...)
	result.Warnings = append(result.Warnings, registryResult.Warnings...)
	return result
}

// checkConfigEntries reports unknown actions, bad keys and keys given to two actions
func (v *Validator) checkConfigEntries(config *Config, result *ValidationResult) {
	for _, context := range AllContexts {
		section := config.sections()[context]

		actions := make([]string, 0, len(section))
		for action := range section {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		owner := make(map[string]string)
		for _, actionStr := range actions {
			if err := ValidateAction(actionStr); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     actionStr,
					Message: err.Error(),
				})
				continue
			}

			keys := SplitKeys(section[actionStr])
			if len(keys) == 0 {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     actionStr,
					Message: "no keys given",
				})
			}

			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					result.Errors = append(result.Errors, ValidationError{
						Type:    "invalid",
						Context: context,
						Key:     key,
						Message: err.Error(),
					})
					continue
				}
				if prev, taken := owner[key]; taken && prev != actionStr {
					result.Errors = append(result.Errors, ValidationError{
						Type:    "conflict",
						Context: context,
						Key:     key,
						Message: fmt.Sprintf("bound to both %s and %s", prev, actionStr),
					})
					continue
				}
				owner[key] = actionStr
			}
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for _, context := range AllContexts {
		for _, b := range registry.ListBindings(context) {
			if v.reservedKeys[b.Key] && b.Action != ActionQuitForce {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     b.Key,
					Message: "reserved key rebound (may cause issues)",
				})
			}
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow their parent's bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	for _, context := range AllContexts {
		parent, ok := v.contextHierarchy[context]
		if !ok {
			continue
		}
		parentBindings := registry.bindings[parent]

		for _, b := range registry.ListBindings(context) {
			if parentAction, has := parentBindings[b.Key]; has && parentAction != b.Action {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     b.Key,
					Message: fmt.Sprintf("shadows %s binding (%s -> %s)", parent, parentAction, b.Action),
				})
			}
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	result := NewValidator().ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	validModifiers := []string{"ctrl+", "alt+", "shift+", "super+"}
	for _, mod := range validModifiers {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}

// ValidateAction checks if an action string names a known action
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action %q", actionStr)
	}
	return nil
}
