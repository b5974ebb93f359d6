package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated key list, e.g. "next_page": "right,l".
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Normal  map[string]string `json:"normal,omitempty"`
	Search  map[string]string `json:"search,omitempty"`
	Form    map[string]string `json:"form,omitempty"`
	Confirm map[string]string `json:"confirm,omitempty"`
	History map[string]string `json:"history,omitempty"`
	Help    map[string]string `json:"help,omitempty"`
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextNormal:  c.Normal,
		ContextSearch:  c.Search,
		ContextForm:    c.Form,
		ContextConfirm: c.Confirm,
		ContextHistory: c.History,
		ContextHelp:    c.Help,
	}
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys parses a comma-separated key list; "," itself is written as ",,"
func SplitKeys(spec string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ReplaceAll(spec, ",,", "\x00"), ",") {
		part = strings.TrimSpace(strings.ReplaceAll(part, "\x00", ","))
		if part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces all of its default keys in that context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for actionStr, keySpec := range bindings {
			action := Action(actionStr)
			keys := SplitKeys(keySpec)
			if len(keys) == 0 {
				return fmt.Errorf("no keys given for %s.%s", context, actionStr)
			}
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportRegistry renders a registry in config form, for `keybinds init`
func ExportRegistry(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	set := map[Context]*map[string]string{
		ContextGlobal:  &config.Global,
		ContextNormal:  &config.Normal,
		ContextSearch:  &config.Search,
		ContextForm:    &config.Form,
		ContextConfirm: &config.Confirm,
		ContextHistory: &config.History,
		ContextHelp:    &config.Help,
	}

	for _, context := range AllContexts {
		byAction := map[Action][]string{}
		for _, b := range registry.ListBindings(context) {
			byAction[b.Action] = append(byAction[b.Action], escapeKey(b.Key))
		}
		if len(byAction) == 0 {
			continue
		}
		section := make(map[string]string, len(byAction))
		for action, keys := range byAction {
			sort.Strings(keys)
			section[string(action)] = strings.Join(keys, ",")
		}
		*set[context] = section
	}

	return config
}

func escapeKey(key string) string {
	return strings.ReplaceAll(key, ",", ",,")
}

// CreateExampleConfig writes the default bindings to path
func CreateExampleConfig(path string) error {
	return SaveConfig(ExportRegistry(NewDefaultRegistry()), path)
}
