package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// ErrNoFilter guards Update and Delete against accidentally touching
// every row in the table.
var ErrNoFilter = errors.New("backend: refusing unfiltered write, add at least one filter")

// Query assembles one call against a named table. Methods return the
// receiver so filters chain; execution happens in Fetch, Insert,
// Update, or Delete.
type Query struct {
	c       *Client
	table   string
	columns string
	filters url.Values
	order   string
}

// From starts a query against a table.
func (c *Client) From(table string) *Query {
	return &Query{
		c:       c,
		table:   table,
		columns: "*",
		filters: url.Values{},
	}
}

// Select names the columns to return.
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

// Eq adds an equality filter on a column.
func (q *Query) Eq(column, value string) *Query {
	q.filters.Add(column, "eq."+value)
	return q
}

// Order sorts the result by a column.
func (q *Query) Order(column string, ascending bool) *Query {
	dir := ".desc"
	if ascending {
		dir = ".asc"
	}
	q.order = column + dir
	return q
}

func (q *Query) path() string {
	return "/rest/v1/" + q.table
}

func (q *Query) values(withSelect bool) url.Values {
	v := url.Values{}
	for col, ops := range q.filters {
		for _, op := range ops {
			v.Add(col, op)
		}
	}
	if withSelect {
		v.Set("select", q.columns)
	}
	if q.order != "" {
		v.Set("order", q.order)
	}
	return v
}

// Fetch runs the select and decodes rows into dest (a slice pointer).
func (q *Query) Fetch(ctx context.Context, dest any) error {
	return q.c.do(ctx, "GET", q.path(), q.values(true), nil, dest, nil)
}

// Insert adds rows. When dest is non-nil the created representation is
// requested back and decoded into it.
func (q *Query) Insert(ctx context.Context, rows, dest any) error {
	headers := http.Header{}
	if dest != nil {
		headers.Set("Prefer", "return=representation")
	}
	return q.c.do(ctx, "POST", q.path(), nil, rows, dest, headers)
}

// Update patches the rows matched by the accumulated filters.
func (q *Query) Update(ctx context.Context, values any) error {
	if len(q.filters) == 0 {
		return ErrNoFilter
	}
	return q.c.do(ctx, "PATCH", q.path(), q.values(false), values, nil, nil)
}

// Delete removes the rows matched by the accumulated filters.
func (q *Query) Delete(ctx context.Context) error {
	if len(q.filters) == 0 {
		return ErrNoFilter
	}
	return q.c.do(ctx, "DELETE", q.path(), q.values(false), nil, nil, nil)
}
