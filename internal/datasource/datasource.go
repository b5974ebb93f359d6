// Package datasource fetches pages of cars and applies the results in the
// order their requests were issued.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/studiowebux/carcli/internal/logging"
	"github.com/studiowebux/carcli/internal/types"
)

// Lister is the subset of the API client the data source needs
type Lister interface {
	List(ctx context.Context, page int, search string) (*types.ListResponse, error)
}

// Ticket identifies one issued fetch
type Ticket struct {
	Seq    uint64
	Page   int
	Search string
}

// Outcome is what Resolve did with a response
type Outcome int

const (
	// Applied means the response replaced the current result
	Applied Outcome = iota
	// Stale means a newer request was issued and the response was discarded
	Stale
	// Failed means the request errored; the last good result was kept
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Stale:
		return "stale"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// FetchError is a failed list fetch
type FetchError struct {
	Page   int
	Search string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load cars (page %d): %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DataSource runs list fetches and keeps the last applied result
type DataSource struct {
	lister Lister
	log    *slog.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	current types.ListResult
	loaded  bool
}

// New creates a data source backed by lister
func New(lister Lister, log *slog.Logger) *DataSource {
	if log == nil {
		log = logging.Nop()
	}
	return &DataSource{
		lister:  lister,
		log:     log,
		current: types.ListResult{Rows: []types.CarRecord{}, TotalPages: 1, Page: 1},
	}
}

// Begin registers a new fetch for q and returns its ticket.
// Any ticket issued earlier becomes stale.
func (d *DataSource) Begin(q *Query) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.issued++
	t := q.Snapshot()
	t.Seq = d.issued
	return t
}

// Fetch performs exactly one list request for the ticket and normalizes it.
// It does not touch the stored result; pass its return values to Resolve.
func (d *DataSource) Fetch(ctx context.Context, t Ticket) (types.ListResult, error) {
	page := t.Page
	if page < 1 {
		page = 1
	}

	resp, err := d.lister.List(ctx, page, t.Search)
	if err != nil {
		return types.ListResult{}, &FetchError{Page: page, Search: t.Search, Err: err}
	}
	return Normalize(resp, page, t.Search), nil
}

// Normalize converts a raw list response into a ListResult
func Normalize(resp *types.ListResponse, page int, search string) types.ListResult {
	result := types.ListResult{
		Rows:       []types.CarRecord{},
		TotalPages: 1,
		Page:       page,
		Search:     search,
	}
	if resp == nil {
		return result
	}
	if len(resp.Cars) > 0 {
		result.Rows = make([]types.CarRecord, len(resp.Cars))
		copy(result.Rows, resp.Cars)
	}
	if resp.Total > 1 {
		result.TotalPages = resp.Total
	}
	if resp.Count != nil {
		n := *resp.Count
		result.ExactCount = &n
	}
	return result
}

// Resolve applies a finished fetch if it is still the newest request.
// A stale response is discarded whether it succeeded or not.
func (d *DataSource) Resolve(t Ticket, result types.ListResult, err error) Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t.Seq != d.issued || t.Seq <= d.applied {
		d.log.Debug("discarding stale list response", "seq", t.Seq, "latest", d.issued, "page", t.Page)
		return Stale
	}

	if err != nil {
		d.log.Warn("list fetch failed, keeping last result", "seq", t.Seq, "page", t.Page, "search", t.Search, "error", err)
		return Failed
	}

	d.applied = t.Seq
	d.current = result
	d.loaded = true
	d.log.Debug("list applied", "seq", t.Seq, "page", result.Page, "rows", len(result.Rows), "total_pages", result.TotalPages)
	return Applied
}

// Load is Begin, Fetch and Resolve in one call, for callers without an event loop
func (d *DataSource) Load(ctx context.Context, q *Query) (types.ListResult, error) {
	t := d.Begin(q)
	result, err := d.Fetch(ctx, t)
	switch d.Resolve(t, result, err) {
	case Applied:
		return result, nil
	case Failed:
		return d.Current(), err
	default:
		return d.Current(), errors.New("list request superseded")
	}
}

// Current returns the last applied result, or an empty first page
func (d *DataSource) Current() types.ListResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Loaded reports whether any fetch has been applied yet
func (d *DataSource) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

// Latest returns the sequence number of the newest issued request
func (d *DataSource) Latest() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.issued
}
