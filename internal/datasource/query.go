package datasource

import (
	"net/url"
	"strconv"
)

// Query is the page and search text that parameterize the list view.
// The zero value is not usable; call NewQuery.
type Query struct {
	page   int
	search string
}

// NewQuery returns the initial query: page 1, no search
func NewQuery() *Query {
	return &Query{page: 1}
}

// Page returns the current 1-indexed page
func (q *Query) Page() int {
	return q.page
}

// Search returns the current search text
func (q *Query) Search() string {
	return q.search
}

// SetPage moves to page n (values below 1 become 1). Reports whether it changed.
func (q *Query) SetPage(n int) bool {
	if n < 1 {
		n = 1
	}
	if n == q.page {
		return false
	}
	q.page = n
	return true
}

// SetSearch replaces the search text and resets to page 1 when it differs.
// Callers validate s first.
func (q *Query) SetSearch(s string) bool {
	if s == q.search {
		return false
	}
	q.search = s
	q.page = 1
	return true
}

// ClearSearch drops the search filter without validation
func (q *Query) ClearSearch() bool {
	return q.SetSearch("")
}

// NextPage advances one page, bounded by totalPages
func (q *Query) NextPage(totalPages int) bool {
	if q.page >= totalPages {
		return false
	}
	q.page++
	return true
}

// PrevPage goes back one page, bounded by 1
func (q *Query) PrevPage() bool {
	if q.page <= 1 {
		return false
	}
	q.page--
	return true
}

// Clamp pulls the page back inside [1, totalPages]
func (q *Query) Clamp(totalPages int) bool {
	if totalPages < 1 {
		totalPages = 1
	}
	if q.page > totalPages {
		q.page = totalPages
		return true
	}
	if q.page < 1 {
		q.page = 1
		return true
	}
	return false
}

// Params returns the request parameters for GET /car
func (q *Query) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.page))
	v.Set("searchQuery", q.search)
	return v
}

// Snapshot freezes the query for an outgoing request
func (q *Query) Snapshot() Ticket {
	return Ticket{Page: q.page, Search: q.search}
}
