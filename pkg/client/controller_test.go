package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/cinelog/cinelog/pkg/client"
)

// catalogServer serves canned list pages with real pagination semantics.
type catalogServer struct {
	mu       sync.Mutex
	entries  []client.Entry
	failing  bool
	requests []string
}

func (s *catalogServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/movies", s.list)
	mux.HandleFunc("DELETE /api/movies/{id}", s.delete)
	return mux
}

func (s *catalogServer) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.URL.RawQuery)

	if s.failing {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "server error"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(s.entries) {
		start = len(s.entries)
	}
	if end > len(s.entries) {
		end = len(s.entries)
	}

	json.NewEncoder(w).Encode(client.ListResponse{
		Data:    s.entries[start:end],
		Page:    page,
		Limit:   limit,
		Total:   len(s.entries),
		HasMore: start+(end-start) < len(s.entries),
	})
}

func (s *catalogServer) delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			json.NewEncoder(w).Encode(map[string]string{"message": "Deleted"})
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "catalog entry not found"})
}

func (s *catalogServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *catalogServer) setFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEntries(n int) []client.Entry {
	entries := make([]client.Entry, 0, n)
	for i := n; i >= 1; i-- {
		entries = append(entries, client.Entry{
			ID:       fmt.Sprintf("id-%d", i),
			Title:    fmt.Sprintf("Entry %d", i),
			Kind:     "Movie",
			Director: "Director A",
		})
	}
	return entries
}

func newController(t *testing.T, srv *catalogServer, limit int) *client.ListController {
	t.Helper()

	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	api := client.New(ts.URL, testLogger())
	return client.NewListController(api, testLogger(), limit)
}

func TestListController_Load(t *testing.T) {
	srv := &catalogServer{entries: sampleEntries(25)}
	ctrl := newController(t, srv, 10)

	if ctrl.State() != client.StateIdle {
		t.Errorf("initial State() = %v, want idle", ctrl.State())
	}

	ctrl.Load(context.Background())

	if ctrl.State() != client.StateLoaded {
		t.Errorf("State() = %v, want loaded", ctrl.State())
	}
	if len(ctrl.Entries()) != 10 {
		t.Errorf("len(Entries()) = %d, want 10", len(ctrl.Entries()))
	}
	if !ctrl.HasMore() {
		t.Error("HasMore() = false, want true")
	}
	if ctrl.Entries()[0].Title != "Entry 25" {
		t.Errorf("first entry = %q, want newest first", ctrl.Entries()[0].Title)
	}
}

func TestListController_SentinelAppendsPages(t *testing.T) {
	srv := &catalogServer{entries: sampleEntries(25)}
	ctrl := newController(t, srv, 10)
	ctx := context.Background()

	ctrl.Load(ctx)
	ctrl.SentinelVisible(ctx)

	if len(ctrl.Entries()) != 20 {
		t.Fatalf("after one sentinel event len = %d, want 20", len(ctrl.Entries()))
	}

	ctrl.SentinelVisible(ctx)

	if len(ctrl.Entries()) != 25 {
		t.Fatalf("after two sentinel events len = %d, want 25", len(ctrl.Entries()))
	}
	if ctrl.HasMore() {
		t.Error("HasMore() = true after final page")
	}

	before := srv.requestCount()
	ctrl.SentinelVisible(ctx)
	if srv.requestCount() != before {
		t.Error("sentinel event with no remaining pages triggered a fetch")
	}
}

func TestListController_SentinelBeforeLoad(t *testing.T) {
	srv := &catalogServer{entries: sampleEntries(5)}
	ctrl := newController(t, srv, 10)

	ctrl.SentinelVisible(context.Background())

	if srv.requestCount() != 0 {
		t.Error("sentinel event in idle state triggered a fetch")
	}
}

func TestListController_SearchFilter(t *testing.T) {
	srv := &catalogServer{entries: []client.Entry{
		{ID: "1", Title: "The Dark Knight", Kind: "Movie", Director: "Christopher Nolan"},
		{ID: "2", Title: "Dune", Kind: "Movie", Director: "Denis Villeneuve"},
	}}
	ctrl := newController(t, srv, 10)

	ctrl.SetSearch(context.Background(), "dark")

	entries := ctrl.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(entries))
	}
	if entries[0].Title != "The Dark Knight" {
		t.Errorf("visible entry = %q, want The Dark Knight", entries[0].Title)
	}
}

func TestListController_KindAndDirectorFilters(t *testing.T) {
	srv := &catalogServer{entries: []client.Entry{
		{ID: "1", Title: "Dune", Kind: "Movie", Director: "Denis Villeneuve"},
		{ID: "2", Title: "Breaking Bad", Kind: "TV Show", Director: "Vince Gilligan"},
		{ID: "3", Title: "Arrival", Kind: "Movie", Director: "Denis Villeneuve"},
	}}
	ctrl := newController(t, srv, 10)
	ctx := context.Background()

	ctrl.SetKindFilter(ctx, "tv show")
	if got := ctrl.Entries(); len(got) != 1 || got[0].Title != "Breaking Bad" {
		t.Errorf("kind filter result = %+v, want only Breaking Bad", got)
	}

	ctrl.SetKindFilter(ctx, "")
	ctrl.SetDirectorFilter(ctx, "DENIS VILLENEUVE")
	if got := ctrl.Entries(); len(got) != 2 {
		t.Errorf("director filter result len = %d, want 2", len(got))
	}
}

func TestListController_FilterResetsToPageOne(t *testing.T) {
	srv := &catalogServer{entries: sampleEntries(25)}
	ctrl := newController(t, srv, 10)
	ctx := context.Background()

	ctrl.Load(ctx)
	ctrl.SentinelVisible(ctx)

	if len(ctrl.Entries()) != 20 {
		t.Fatalf("setup: len = %d, want 20", len(ctrl.Entries()))
	}

	ctrl.SetSearch(ctx, "")

	if len(ctrl.Entries()) != 10 {
		t.Errorf("after filter change len = %d, want page one only (10)", len(ctrl.Entries()))
	}

	srv.mu.Lock()
	last := srv.requests[len(srv.requests)-1]
	srv.mu.Unlock()
	if got := last; got != "limit=10&page=1" && got != "page=1&limit=10" {
		t.Errorf("filter change fetched %q, want page=1", got)
	}
}

func TestListController_FetchFailurePreservesState(t *testing.T) {
	srv := &catalogServer{entries: sampleEntries(25)}
	ctrl := newController(t, srv, 10)
	ctx := context.Background()

	ctrl.Load(ctx)
	srv.setFailing(true)

	ctrl.SentinelVisible(ctx)

	if ctrl.State() != client.StateLoaded {
		t.Errorf("State() = %v, want loaded after failed fetch", ctrl.State())
	}
	if len(ctrl.Entries()) != 10 {
		t.Errorf("len(Entries()) = %d, want displayed list untouched (10)", len(ctrl.Entries()))
	}
}

func TestListController_OptionSets(t *testing.T) {
	srv := &catalogServer{entries: []client.Entry{
		{ID: "1", Title: "Dune", Kind: "Movie", Director: "Denis Villeneuve"},
		{ID: "2", Title: "Breaking Bad", Kind: "TV Show", Director: "Vince Gilligan"},
		{ID: "3", Title: "Arrival", Kind: "Movie", Director: "Denis Villeneuve"},
		{ID: "4", Title: "Unknown", Kind: "Movie", Director: ""},
	}}
	ctrl := newController(t, srv, 10)

	ctrl.Load(context.Background())

	kinds := ctrl.Kinds()
	if len(kinds) != 2 || kinds[0] != "Movie" || kinds[1] != "TV Show" {
		t.Errorf("Kinds() = %v, want [Movie, TV Show]", kinds)
	}

	directors := ctrl.Directors()
	if len(directors) != 2 || directors[0] != "Denis Villeneuve" || directors[1] != "Vince Gilligan" {
		t.Errorf("Directors() = %v, want two distinct directors sorted", directors)
	}
}

func TestListController_Remove(t *testing.T) {
	srv := &catalogServer{entries: []client.Entry{
		{ID: "1", Title: "Dune", Kind: "Movie"},
		{ID: "2", Title: "Arrival", Kind: "Movie"},
	}}
	ctrl := newController(t, srv, 10)
	ctx := context.Background()

	ctrl.Load(ctx)

	if err := ctrl.Remove(ctx, "1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	entries := ctrl.Entries()
	if len(entries) != 1 || entries[0].ID != "2" {
		t.Errorf("Entries() after remove = %+v, want only id 2", entries)
	}
}

func TestListController_RemoveFailure(t *testing.T) {
	srv := &catalogServer{entries: []client.Entry{{ID: "1", Title: "Dune", Kind: "Movie"}}}
	ctrl := newController(t, srv, 10)
	ctx := context.Background()

	ctrl.Load(ctx)

	err := ctrl.Remove(ctx, "missing")
	if err == nil {
		t.Fatal("Remove() error = nil, want error")
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Remove() error = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	if len(ctrl.Entries()) != 1 {
		t.Errorf("failed remove mutated displayed list: len = %d, want 1", len(ctrl.Entries()))
	}
}
