package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	for _, ctx := range AllContexts {
		if ctx == ContextGlobal {
			continue
		}
		if parent := v.contextHierarchy[ctx]; parent != ContextGlobal {
			t.Errorf("context %s parent = %q, want global", ctx, parent)
		}
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "conflict error",
			err:      ValidationError{Type: "conflict", Context: ContextNormal, Key: "d", Message: "bound to both delete_car and new_car"},
			expected: "[conflict] d in context 'normal': bound to both delete_car and new_car",
		},
		{
			name:     "invalid error",
			err:      ValidationError{Type: "invalid", Context: ContextGlobal, Key: "", Message: "empty key"},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name:     "warning",
			err:      ValidationError{Type: "warning", Context: ContextForm, Key: "ctrl+c", Message: "reserved key rebound"},
			expected: "[warning] ctrl+c in context 'form': reserved key rebound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	empty := &ValidationResult{}
	if got := empty.String(); got != "No issues found" {
		t.Errorf("String() = %q", got)
	}

	r := &ValidationResult{
		Errors:   []ValidationError{{Type: "conflict", Context: ContextNormal, Key: "d", Message: "dup"}},
		Warnings: []ValidationError{{Type: "warning", Context: ContextHelp, Key: "q", Message: "shadows"}},
	}
	got := r.String()
	for _, want := range []string{"Errors (1):", "Warnings (1):", "[conflict] d", "[warning] q"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
	if !r.HasErrors() || !r.HasWarnings() {
		t.Error("expected both errors and warnings")
	}
}

func TestValidateRegistry_DefaultsAreClean(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry has issues:\n%s", result.String())
	}
}

func TestCheckReservedKeys(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(*Registry)
		wantWarnings int
	}{
		{
			name:         "reserved key kept",
			setup:        func(r *Registry) { r.Register(ContextGlobal, "ctrl+c", ActionQuitForce) },
			wantWarnings: 0,
		},
		{
			name:         "reserved key rebound globally",
			setup:        func(r *Registry) { r.Register(ContextGlobal, "ctrl+c", ActionQuit) },
			wantWarnings: 1,
		},
		{
			name:         "reserved key used in a modal",
			setup:        func(r *Registry) { r.Register(ContextForm, "ctrl+c", ActionCloseModal) },
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.setup(r)
			result := &ValidationResult{}
			NewValidator().checkReservedKeys(r, result)
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d: %v", len(result.Warnings), tt.wantWarnings, result.Warnings)
			}
		})
	}
}

func TestCheckShadowing(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextHelp, "q", ActionCloseModal) // shadows
	r.Register(ContextNormal, "q", ActionQuit)     // same action, fine

	result := &ValidationResult{}
	NewValidator().checkShadowing(r, result)

	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1: %v", len(result.Warnings), result.Warnings)
	}
	if result.Warnings[0].Context != ContextHelp {
		t.Errorf("warning context = %s, want help", result.Warnings[0].Context)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		wantErrors   int
		wantWarnings int
		wantType     string
	}{
		{
			name:   "valid override",
			config: &Config{Normal: map[string]string{"next_page": "ctrl+n,l"}},
		},
		{
			name:       "unknown action",
			config:     &Config{Normal: map[string]string{"execute": "enter"}},
			wantErrors: 1,
			wantType:   "invalid",
		},
		{
			name:       "same key for two actions",
			config:     &Config{Normal: map[string]string{"new_car": "d", "delete_car": "d"}},
			wantErrors: 1,
			wantType:   "conflict",
		},
		{
			name:       "empty key list",
			config:     &Config{Form: map[string]string{"form_submit": " , "}},
			wantErrors: 1,
			wantType:   "invalid",
		},
		{
			name:       "bare modifier",
			config:     &Config{Confirm: map[string]string{"confirm": "ctrl+"}},
			wantErrors: 1,
			wantType:   "invalid",
		},
		{
			name:         "reserved key rebound",
			config:       &Config{Global: map[string]string{"quit": "ctrl+c"}},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("errors = %d, want %d: %v", len(result.Errors), tt.wantErrors, result.Errors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d: %v", len(result.Warnings), tt.wantWarnings, result.Warnings)
			}
			if tt.wantType != "" && len(result.Errors) > 0 && result.Errors[0].Type != tt.wantType {
				t.Errorf("error type = %q, want %q", result.Errors[0].Type, tt.wantType)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	config := &Config{Normal: map[string]string{"new_car": "n,d", "delete_car": "d"}}
	conflicts := FindConflicts(config)
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %v, want 1", conflicts)
	}
	if !strings.Contains(conflicts[0], "delete_car") || !strings.Contains(conflicts[0], "new_car") {
		t.Errorf("conflict message = %q", conflicts[0])
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"q", false},
		{"ctrl+s", false},
		{"shift+tab", false},
		{",", false},
		{"", true},
		{"ctrl+", true},
		{"alt+", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	tests := []struct {
		action  string
		wantErr bool
	}{
		{"quit", false},
		{"delete_car", false},
		{"form_submit", false},
		{"", true},
		{"execute", true},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			err := ValidateAction(tt.action)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAction(%q) error = %v, wantErr %v", tt.action, err, tt.wantErr)
			}
		})
	}
}
