package client

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// State describes the list controller's fetch lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Filters holds the active client-side filter criteria. Search matches
// title substrings; Kind and Director match whole values. All matching
// is case-insensitive.
type Filters struct {
	Search   string
	Kind     string
	Director string
}

// ListController drives a paginated, filterable entry list. Filters
// apply within each fetched page only, so a filter can hide an entire
// page while matching rows remain on later pages. One fetch runs at a
// time; sentinel events during a fetch are dropped.
type ListController struct {
	api    *Client
	logger *slog.Logger
	limit  int

	state   State
	filters Filters
	entries []Entry
	page    int
	hasMore bool
}

// NewListController creates a list controller fetching pages of the
// given size.
func NewListController(api *Client, logger *slog.Logger, limit int) *ListController {
	return &ListController{
		api:     api,
		logger:  logger.With("component", "list-controller"),
		limit:   limit,
		state:   StateIdle,
		entries: []Entry{},
	}
}

// State returns the current lifecycle state.
func (c *ListController) State() State {
	return c.state
}

// Entries returns the currently displayed rows.
func (c *ListController) Entries() []Entry {
	return c.entries
}

// HasMore reports whether the server holds pages beyond the current one.
func (c *ListController) HasMore() bool {
	return c.hasMore
}

// Filters returns the active filter criteria.
func (c *ListController) Filters() Filters {
	return c.filters
}

// Load performs the initial fetch, replacing any displayed rows with
// page one.
func (c *ListController) Load(ctx context.Context) {
	c.fetch(ctx, 1, true)
}

// SetSearch updates the title search text and restarts from page one.
func (c *ListController) SetSearch(ctx context.Context, search string) {
	c.filters.Search = search
	c.fetch(ctx, 1, true)
}

// SetKindFilter updates the kind filter and restarts from page one. An
// empty value clears the filter.
func (c *ListController) SetKindFilter(ctx context.Context, kind string) {
	c.filters.Kind = kind
	c.fetch(ctx, 1, true)
}

// SetDirectorFilter updates the director filter and restarts from page
// one. An empty value clears the filter.
func (c *ListController) SetDirectorFilter(ctx context.Context, director string) {
	c.filters.Director = director
	c.fetch(ctx, 1, true)
}

// SentinelVisible handles the scroll sentinel entering the viewport.
// It fetches the next page in append mode, unless a fetch is already in
// flight or no further pages exist.
func (c *ListController) SentinelVisible(ctx context.Context) {
	if c.state != StateLoaded || !c.hasMore {
		return
	}
	c.fetch(ctx, c.page+1, false)
}

// Remove deletes an entry and drops it from the displayed rows. A
// failed delete leaves the rows untouched and surfaces the error to the
// caller.
func (c *ListController) Remove(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Error("delete failed", "id", id, "error", err)
		return err
	}

	kept := c.entries[:0:0]
	for _, e := range c.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return nil
}

// Kinds returns the distinct kinds among the displayed rows, sorted.
func (c *ListController) Kinds() []string {
	return c.distinct(func(e Entry) string { return e.Kind })
}

// Directors returns the distinct directors among the displayed rows,
// sorted.
func (c *ListController) Directors() []string {
	return c.distinct(func(e Entry) string { return e.Director })
}

func (c *ListController) distinct(field func(Entry) string) []string {
	seen := map[string]bool{}
	values := []string{}
	for _, e := range c.entries {
		v := field(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func (c *ListController) fetch(ctx context.Context, page int, replace bool) {
	if c.state == StateLoading {
		return
	}
	c.state = StateLoading

	resp, err := c.api.List(ctx, page, c.limit)
	if err != nil {
		c.logger.Error("list fetch failed", "page", page, "error", err)
		c.state = StateLoaded
		return
	}

	visible := c.applyFilters(resp.Data)
	if replace {
		c.entries = visible
	} else {
		c.entries = append(c.entries, visible...)
	}

	c.page = resp.Page
	c.hasMore = resp.HasMore
	c.state = StateLoaded
}

func (c *ListController) applyFilters(entries []Entry) []Entry {
	visible := []Entry{}
	for _, e := range entries {
		if c.matches(e) {
			visible = append(visible, e)
		}
	}
	return visible
}

func (c *ListController) matches(e Entry) bool {
	if c.filters.Search != "" {
		title := strings.ToLower(e.Title)
		if !strings.Contains(title, strings.ToLower(c.filters.Search)) {
			return false
		}
	}
	if c.filters.Kind != "" && !strings.EqualFold(e.Kind, c.filters.Kind) {
		return false
	}
	if c.filters.Director != "" && !strings.EqualFold(e.Director, c.filters.Director) {
		return false
	}
	return true
}
