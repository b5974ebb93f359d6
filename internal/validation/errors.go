package validation

import (
	"sort"
	"strings"
)

// Errors maps a field path to its validation message
type Errors map[string]string

// HasErrors returns true if any field failed validation
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Get returns the message for a field, or empty string
func (e Errors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Fields returns the failed field paths in sorted order
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error implements the error interface
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, e[field])
	}
	return strings.Join(parts, "; ")
}

// Merge copies entries from other that are not already set
func (e Errors) Merge(other Errors) Errors {
	if len(other) == 0 {
		return e
	}
	if e == nil {
		e = make(Errors, len(other))
	}
	for field, msg := range other {
		if _, ok := e[field]; !ok {
			e[field] = msg
		}
	}
	return e
}
