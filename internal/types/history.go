package types

import "time"

// MutationOp identifies a create, update or delete against the collection
type MutationOp string

const (
	OpCreate MutationOp = "create"
	OpUpdate MutationOp = "update"
	OpDelete MutationOp = "delete"
)

// HistoryEntry represents one recorded mutation attempt
type HistoryEntry struct {
	ID        int64      `json:"id" yaml:"id"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
	Op        MutationOp `json:"op" yaml:"op"`
	CarID     string     `json:"carId,omitempty" yaml:"carId,omitempty"`
	Label     string     `json:"label" yaml:"label"`
	Profile   string     `json:"profile,omitempty" yaml:"profile,omitempty"`
	Duration  int64      `json:"duration" yaml:"duration"` // Milliseconds
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the mutation completed without error
func (e HistoryEntry) Succeeded() bool {
	return e.Error == ""
}
