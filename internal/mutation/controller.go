// Package mutation runs create, update and delete calls against the car API
// and records every attempt.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studiowebux/carcli/internal/carapi"
	"github.com/studiowebux/carcli/internal/logging"
	"github.com/studiowebux/carcli/internal/types"
	"github.com/studiowebux/carcli/internal/validation"
)

// API is the subset of the car client used for mutations
type API interface {
	Create(ctx context.Context, draft types.CarDraft) (*types.CarRecord, error)
	Update(ctx context.Context, id string, draft types.CarDraft) (*types.CarRecord, error)
	Delete(ctx context.Context, id string) error
}

// Recorder stores mutation attempts; history.Manager satisfies it
type Recorder interface {
	Record(entry types.HistoryEntry) error
}

// MutationError is a failed create, update or delete.
// Draft holds the attempted input so the form can be kept populated.
type MutationError struct {
	Op     types.MutationOp
	ID     string
	Draft  types.CarDraft
	Fields validation.Errors // Field-level errors, local or from the server
	Err    error
}

func (e *MutationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s failed: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// ErrInvalidDraft is wrapped when a draft fails local validation
var ErrInvalidDraft = errors.New("invalid car")

// Controller executes mutations
type Controller struct {
	api      API
	recorder Recorder
	log      *slog.Logger
	profile  string
}

// Option configures a Controller
type Option func(*Controller)

// WithRecorder records every attempt
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithProfile tags recorded entries with a config profile name
func WithProfile(name string) Option {
	return func(c *Controller) {
		c.profile = name
	}
}

// New creates a controller backed by api
func New(api API, opts ...Option) *Controller {
	c := &Controller{api: api, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create validates and posts a new car
func (c *Controller) Create(ctx context.Context, draft types.CarDraft) (types.CarRecord, error) {
	start := time.Now()
	label := draftLabel(draft)

	if errs := validation.ValidateDraft(draft); errs.HasErrors() {
		return types.CarRecord{}, c.fail(types.OpCreate, "", label, draft, errs, fmt.Errorf("%w: %s", ErrInvalidDraft, errs.Error()), start, false)
	}

	car, err := c.api.Create(ctx, draft)
	if err != nil {
		return types.CarRecord{}, c.fail(types.OpCreate, "", label, draft, nil, err, start, true)
	}

	c.succeed(types.OpCreate, car.ID, car.Label(), start)
	return *car, nil
}

// Update validates and replaces the editable fields of car id
func (c *Controller) Update(ctx context.Context, id string, draft types.CarDraft) (types.CarRecord, error) {
	start := time.Now()
	label := draftLabel(draft)

	if id == "" {
		return types.CarRecord{}, c.fail(types.OpUpdate, id, label, draft, nil, errors.New("missing car id"), start, false)
	}
	if errs := validation.ValidateDraft(draft); errs.HasErrors() {
		return types.CarRecord{}, c.fail(types.OpUpdate, id, label, draft, errs, fmt.Errorf("%w: %s", ErrInvalidDraft, errs.Error()), start, false)
	}

	car, err := c.api.Update(ctx, id, draft)
	if err != nil {
		return types.CarRecord{}, c.fail(types.OpUpdate, id, label, draft, nil, err, start, true)
	}

	c.succeed(types.OpUpdate, id, car.Label(), start)
	return *car, nil
}

// Delete removes car id; label is only used for the history entry
func (c *Controller) Delete(ctx context.Context, id, label string) error {
	start := time.Now()

	if id == "" {
		return c.fail(types.OpDelete, id, label, types.CarDraft{}, nil, errors.New("missing car id"), start, false)
	}

	if err := c.api.Delete(ctx, id); err != nil {
		return c.fail(types.OpDelete, id, label, types.CarDraft{}, nil, err, start, true)
	}

	c.succeed(types.OpDelete, id, label, start)
	return nil
}

func (c *Controller) succeed(op types.MutationOp, id, label string, start time.Time) {
	c.log.Info("mutation succeeded", "op", op, "id", id, "duration_ms", time.Since(start).Milliseconds())
	c.record(op, id, label, start, nil)
}

// fail builds the MutationError; remote failures are recorded, local validation is not
func (c *Controller) fail(op types.MutationOp, id, label string, draft types.CarDraft, fields validation.Errors, err error, start time.Time, remote bool) *MutationError {
	if fields == nil {
		if serverFields := carapi.FieldErrors(err); len(serverFields) > 0 {
			fields = validation.Errors(serverFields)
		}
	}

	c.log.Warn("mutation failed", "op", op, "id", id, "remote", remote, "error", err)
	if remote {
		c.record(op, id, label, start, err)
	}

	return &MutationError{Op: op, ID: id, Draft: draft, Fields: fields, Err: err}
}

func (c *Controller) record(op types.MutationOp, id, label string, start time.Time, err error) {
	if c.recorder == nil {
		return
	}
	entry := types.HistoryEntry{
		Timestamp: start,
		Op:        op,
		CarID:     id,
		Label:     label,
		Profile:   c.profile,
		Duration:  time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if recErr := c.recorder.Record(entry); recErr != nil {
		c.log.Warn("failed to record mutation", "op", op, "error", recErr)
	}
}

func draftLabel(d types.CarDraft) string {
	return types.CarRecord{Make: d.Make, Model: d.Model, ReleaseDate: d.ReleaseDate}.Label()
}
