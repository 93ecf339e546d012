// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package paginator turns the API's page-at-a-time list endpoints into
forward-only cursors.

A Cursor wraps a single request-issuing function and a response-shape
rule. The paginated collection is either the whole response body, or
nested under a named key next to sibling resource metadata (a tag
response carries the tag's own fields alongside its paginated book
list). Pages are fetched strictly one at a time, only as far as the
caller actually consumes items.
*/
package paginator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// DefaultPerPage is the page size requested when the caller does not
// choose one; the server-reported per_page takes over from page two on.
const DefaultPerPage = 24

// IssueFunc performs one API round-trip with the given query parameters
// and returns the decoded response body. Request extras that must ride
// along on every fetch (form bodies, file attachments) are captured by
// the closure.
type IssueFunc func(ctx context.Context, params url.Values) (gjson.Result, error)

// Meta is the server-reported pagination metadata of one page.
type Meta struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// Option configures a Cursor.
type Option func(*options)

type options struct {
	nestedKey string
	max       int
}

// WithNestedKey names the response field holding the page when the
// endpoint mixes list data with sibling metadata.
func WithNestedKey(key string) Option {
	return func(o *options) { o.nestedKey = key }
}

// WithMax caps the number of items the cursor yields. Once the cap is
// reached no further pages are fetched, even mid-page.
func WithMax(n int) Option {
	return func(o *options) { o.max = n }
}

// Cursor is a lazy, one-pass iterator over successive pages of one
// logical list query. It is not restartable and not safe for concurrent
// use; construct a fresh Cursor to iterate again.
//
// Iterate in the scanner style:
//
//	for cur.Next(ctx) {
//		item := cur.Item()
//		...
//	}
//	if err := cur.Err(); err != nil {
//		...
//	}
type Cursor[T any] struct {
	issue     IssueFunc
	params    url.Values
	nestedKey string
	max       int

	started bool
	done    bool
	err     error

	aux  map[string]gjson.Result
	meta Meta

	buf     []T
	idx     int
	item    T
	yielded int
}

// New constructs a Cursor over the list produced by issue.
//
// params is owned by the cursor from here on: the page and limit keys are
// rewritten in place as pages advance. It should include the initial page
// and limit.
func New[T any](issue IssueFunc, params url.Values, opts ...Option) *Cursor[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if params == nil {
		params = url.Values{}
	}

	if params.Get("page") == "" {
		params.Set("page", "1")
	}

	if params.Get("limit") == "" {
		params.Set("limit", strconv.Itoa(DefaultPerPage))
	}

	return &Cursor[T]{
		issue:     issue,
		params:    params,
		nestedKey: o.nestedKey,
		max:       o.max,
	}
}

// Next advances the cursor to the next item, fetching further pages as
// needed. It returns false when the list is exhausted, the configured cap
// is reached, or a fetch fails; after a failure Err is non-nil and the
// cursor is permanently exhausted.
func (c *Cursor[T]) Next(ctx context.Context) bool {
	if c.done || c.err != nil {
		return false
	}

	if !c.started {
		c.started = true

		if !c.fetch(ctx, true) {
			return false
		}
	}

	for {
		if c.max > 0 && c.yielded >= c.max {
			c.done = true

			return false
		}

		if c.idx < len(c.buf) {
			c.item = c.buf[c.idx]
			c.idx++
			c.yielded++

			return true
		}

		if c.meta.CurrentPage >= c.meta.LastPage {
			c.done = true

			return false
		}

		// The server is authoritative on page size: carry its per_page
		// forward instead of the caller-supplied limit.
		c.params.Set("page", strconv.Itoa(c.meta.CurrentPage+1))
		c.params.Set("limit", strconv.Itoa(c.meta.PerPage))

		if !c.fetch(ctx, false) {
			return false
		}
	}
}

// Item returns the item produced by the last successful call to Next.
func (c *Cursor[T]) Item() T {
	return c.item
}

// Err returns the first error observed during iteration, if any.
// Items yielded before the failure stand; they are not retracted.
func (c *Cursor[T]) Err() error {
	return c.err
}

// Aux returns the sibling fields of the first response body when a nested
// key is configured: everything except the paginated collection itself.
// It is populated by the first fetch and never changes afterward, since
// it describes the resource the list is attached to, not the list.
func (c *Cursor[T]) Aux() map[string]gjson.Result {
	return c.aux
}

// Meta returns the pagination metadata of the most recently fetched page.
// The zero Meta is returned before the first fetch.
func (c *Cursor[T]) Meta() Meta {
	return c.meta
}

// Total returns the server-reported total item count, available after the
// first fetch.
func (c *Cursor[T]) Total() int {
	return c.meta.Total
}

// All drains the cursor and returns every remaining item.
func (c *Cursor[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	for c.Next(ctx) {
		items = append(items, c.Item())
	}

	return items, c.Err()
}

// fetch issues the request with the current parameters and loads the
// resulting page into the buffer.
func (c *Cursor[T]) fetch(ctx context.Context, first bool) bool {
	body, err := c.issue(ctx, c.params)
	if err != nil {
		c.fail(err)

		return false
	}

	page := body
	if c.nestedKey != "" {
		page = body.Get(c.nestedKey)

		if first {
			aux := make(map[string]gjson.Result)

			body.ForEach(func(key, value gjson.Result) bool {
				if key.String() != c.nestedKey {
					aux[key.String()] = value
				}

				return true
			})

			c.aux = aux
		}
	}

	meta := page.Get("meta")
	c.meta = Meta{
		CurrentPage: int(meta.Get("current_page").Int()),
		LastPage:    int(meta.Get("last_page").Int()),
		PerPage:     int(meta.Get("per_page").Int()),
		Total:       int(meta.Get("total").Int()),
	}

	items := page.Get("data").Array()
	c.buf = make([]T, 0, len(items))
	c.idx = 0

	for _, raw := range items {
		var item T
		if err := json.Unmarshal([]byte(raw.Raw), &item); err != nil {
			c.fail(fmt.Errorf("failed to decode list item: %w", err))

			return false
		}

		c.buf = append(c.buf, item)
	}

	return true
}

// fail records the error and makes the cursor permanently exhausted.
func (c *Cursor[T]) fail(err error) {
	c.err = err
	c.done = true
	c.buf = nil
}
