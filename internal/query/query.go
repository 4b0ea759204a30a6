// Package query binds the list view's page and filters to a query string,
// and carries the "return to prior list state" handoff used when navigating
// into a detail view.
package query

import (
	"net/url"
	"strconv"
)

// Filters narrows the books list. A nil AuthorID means "any author";
// empty strings mean "no filter".
type Filters struct {
	Title    string
	AuthorID *int
	Genre    string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Title == "" && f.AuthorID == nil && f.Genre == ""
}

// ListQuery is the addressable state of the list view.
type ListQuery struct {
	Page    int
	Filters Filters
}

// Parse reads page, title, authorId and genre from a query string.
// Absent or malformed entries fall back to the defaults: page 0, empty
// strings, nil author.
func Parse(values url.Values) ListQuery {
	q := ListQuery{}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	q.Filters.Title = values.Get("title")
	q.Filters.Genre = values.Get("genre")
	if id, err := strconv.Atoi(values.Get("authorId")); err == nil {
		q.Filters.AuthorID = &id
	}
	return q
}

// ParseString parses an encoded query string; malformed input yields the
// default query.
func ParseString(raw string) ListQuery {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ListQuery{}
	}
	return Parse(values)
}

// Values writes the query back to url.Values. Page is always written so a
// filter change visibly resets the address to page=0; unset filters are
// omitted.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	if q.Filters.Title != "" {
		values.Set("title", q.Filters.Title)
	}
	if q.Filters.AuthorID != nil {
		values.Set("authorId", strconv.Itoa(*q.Filters.AuthorID))
	}
	if q.Filters.Genre != "" {
		values.Set("genre", q.Filters.Genre)
	}
	return values
}

// Encode renders the query string.
func (q ListQuery) Encode() string {
	return q.Values().Encode()
}

// WithPage returns the query moved to page, filters unchanged.
func (q ListQuery) WithPage(page int) ListQuery {
	q.Page = page
	return q
}

// WithFilters returns the query with new filters. Changing filters always
// returns to page 0.
func (q ListQuery) WithFilters(f Filters) ListQuery {
	q.Filters = f
	q.Page = 0
	return q
}

// ReturnState is the transient handoff attached when navigating from the
// list to a detail view. Navigating back rebuilds the list's query string
// from it rather than from the store, so the user lands on exactly the
// filtered, paged view they left.
type ReturnState struct {
	Page    int
	Filters Filters
}

// Query reconstructs the list query from the handoff.
func (r ReturnState) Query() ListQuery {
	return ListQuery{Page: r.Page, Filters: r.Filters}
}
