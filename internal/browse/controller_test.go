package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/debounce"
	"github.com/five82/reel/internal/state"
)

type fakeFetcher struct {
	mu       sync.Mutex
	calls    []catalog.TitleQuery
	respond  func(catalog.TitleQuery) ([]catalog.Title, error)
	facets   catalog.Facets
	facetErr error
}

func (f *fakeFetcher) FetchFacets(context.Context, catalog.Kind) (catalog.Facets, error) {
	return f.facets, f.facetErr
}

func (f *fakeFetcher) FetchTitles(_ context.Context, q catalog.TitleQuery) ([]catalog.Title, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return nil, nil
	}
	return respond(q)
}

func (f *fakeFetcher) Calls() []catalog.TitleQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.TitleQuery(nil), f.calls...)
}

// newSyncController runs every refresh to completion before returning.
func newSyncController(f *fakeFetcher, clock debounce.Clock) *Controller {
	var c *Controller
	c = NewController(catalog.Movie, f, func(r Refresh) {
		c.Apply(c.Fetch(context.Background(), r))
	}, Options{Clock: clock})
	return c
}

// newQueuedController holds refreshes until the test completes them.
func newQueuedController(f *fakeFetcher) (*Controller, *[]Refresh) {
	var queue []Refresh
	c := NewController(catalog.Movie, f, func(r Refresh) {
		queue = append(queue, r)
	}, Options{Clock: &debounce.ManualClock{}})
	return c, &queue
}

func TestController_InitialRefreshUsesDefaults(t *testing.T) {
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) { return makeTitles(130), nil }}
	c := newSyncController(f, &debounce.ManualClock{})
	c.Refresh()

	calls := f.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if got := calls[0].Values().Encode(); got != "order=asc&type=movie" {
		t.Fatalf("params = %q, want only type and order", got)
	}
	view := c.View()
	if view.Page != 1 || view.TotalPages != 3 || len(view.Items) != 50 {
		t.Fatalf("view = page %d/%d len %d, want 1/3 len 50", view.Page, view.TotalPages, len(view.Items))
	}
	if view.HasPrev() || !view.HasNext() {
		t.Fatalf("first page controls wrong: prev=%v next=%v", view.HasPrev(), view.HasNext())
	}
}

func TestController_PagingDoesNotRefetch(t *testing.T) {
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) { return makeTitles(130), nil }}
	c := newSyncController(f, &debounce.ManualClock{})
	c.Refresh()

	if !c.NextPage() || !c.NextPage() {
		t.Fatalf("NextPage refused within range")
	}
	if c.NextPage() {
		t.Fatalf("NextPage moved past the last page")
	}
	view := c.View()
	if view.Page != 3 || len(view.Items) != 30 || view.HasNext() {
		t.Fatalf("view = page %d len %d next=%v, want page 3 len 30 no next", view.Page, len(view.Items), view.HasNext())
	}
	if !c.PrevPage() || c.View().Page != 2 {
		t.Fatalf("PrevPage did not move back")
	}
	if got := len(f.Calls()); got != 1 {
		t.Fatalf("calls = %d after paging, want 1", got)
	}
}

func TestController_TransitionsResetPageAndRefetch(t *testing.T) {
	cases := []struct {
		name  string
		apply func(*Controller)
		check func(catalog.TitleQuery) bool
	}{
		{"genre", func(c *Controller) { c.SetGenre("Drame") }, func(q catalog.TitleQuery) bool { return q.Genre == "Drame" }},
		{"year", func(c *Controller) { c.SetYear("1995") }, func(q catalog.TitleQuery) bool { return q.Year == "1995" }},
		{"sort", func(c *Controller) { c.SetSort(state.Descending) }, func(q catalog.TitleQuery) bool { return q.Order == catalog.Descending }},
		{"toggle sort", func(c *Controller) { c.ToggleSort() }, func(q catalog.TitleQuery) bool { return q.Order == catalog.Descending }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) { return makeTitles(130), nil }}
			c := newSyncController(f, &debounce.ManualClock{})
			c.Refresh()
			c.NextPage()
			c.NextPage()

			tc.apply(c)

			calls := f.Calls()
			if len(calls) != 2 {
				t.Fatalf("calls = %d, want 2", len(calls))
			}
			if !tc.check(calls[1]) {
				t.Fatalf("query = %#v", calls[1])
			}
			if c.Filter().Page != 1 || c.View().Page != 1 {
				t.Fatalf("page = %d, want 1", c.Filter().Page)
			}
		})
	}
}

func TestController_ResetRestoresDefaults(t *testing.T) {
	f := &fakeFetcher{}
	clock := &debounce.ManualClock{}
	c := newSyncController(f, clock)
	c.SetGenre("Drame")
	c.SetYear("2001")
	c.SetSort(state.Descending)
	c.SetQuery("night")
	clock.Advance(SearchWindow)

	c.Reset()
	if c.Filter() != state.DefaultFilter() {
		t.Fatalf("filter = %#v, want default", c.Filter())
	}
	calls := f.Calls()
	last := calls[len(calls)-1]
	if got := last.Values().Encode(); got != "order=asc&type=movie" {
		t.Fatalf("reset params = %q", got)
	}
}

func TestController_SearchIsDebounced(t *testing.T) {
	f := &fakeFetcher{}
	clock := &debounce.ManualClock{}
	c := newSyncController(f, clock)

	for _, text := range []string{"d", "da", "dar", "dark", "dark "} {
		c.SetQuery(text)
		clock.Advance(20 * time.Millisecond)
	}
	if got := len(f.Calls()); got != 0 {
		t.Fatalf("calls = %d during typing, want 0", got)
	}
	if !c.Loading() {
		t.Fatalf("Loading = false while search is pending")
	}

	clock.Advance(SearchWindow)
	calls := f.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Text != "dark" {
		t.Fatalf("q = %q, want trimmed last value", calls[0].Text)
	}
	if c.Loading() {
		t.Fatalf("Loading = true after commit")
	}
}

func TestController_SearchSetsPageImmediately(t *testing.T) {
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) { return makeTitles(130), nil }}
	c := newSyncController(f, &debounce.ManualClock{})
	c.Refresh()
	c.NextPage()

	c.SetQuery("x")
	if c.Filter().Page != 1 {
		t.Fatalf("page = %d right after typing, want 1", c.Filter().Page)
	}
}

func TestController_ImmediateRefreshCancelsPendingSearch(t *testing.T) {
	f := &fakeFetcher{}
	clock := &debounce.ManualClock{}
	c := newSyncController(f, clock)

	c.SetQuery("dr")
	c.SetYear("2020")
	calls := f.Calls()
	if len(calls) != 1 || calls[0].Text != "dr" || calls[0].Year != "2020" {
		t.Fatalf("calls = %#v, want one request with q and year", calls)
	}

	clock.Advance(time.Second)
	if got := len(f.Calls()); got != 1 {
		t.Fatalf("calls = %d after window, want 1", got)
	}
}

func TestController_LatestRequestWins(t *testing.T) {
	orders := [][]int{{1, 0}, {0, 1}}
	for _, order := range orders {
		f := &fakeFetcher{respond: func(q catalog.TitleQuery) ([]catalog.Title, error) {
			return []catalog.Title{{ID: q.Genre, Genre: q.Genre}}, nil
		}}
		c, queue := newQueuedController(f)
		c.SetGenre("Action")
		c.SetGenre("Drame")
		if len(*queue) != 2 {
			t.Fatalf("queued = %d, want 2", len(*queue))
		}
		if !c.Loading() {
			t.Fatalf("Loading = false with requests in flight")
		}

		results := []Result{
			c.Fetch(context.Background(), (*queue)[0]),
			c.Fetch(context.Background(), (*queue)[1]),
		}
		for _, idx := range order {
			c.Apply(results[idx])
		}

		snap := c.Snapshot()
		if len(snap.Items) != 1 || snap.Items[0].ID != "Drame" {
			t.Fatalf("order %v: items = %#v, want the Drame response", order, snap.Items)
		}
		if c.Loading() {
			t.Fatalf("Loading = true after the latest commit")
		}
	}
}

func TestController_StaleApplyKeepsPage(t *testing.T) {
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) { return makeTitles(130), nil }}
	c, queue := newQueuedController(f)
	c.Refresh()
	c.Refresh()
	second := c.Fetch(context.Background(), (*queue)[1])
	if !c.Apply(second) {
		t.Fatalf("latest result rejected")
	}
	c.NextPage()

	if c.Apply(c.Fetch(context.Background(), (*queue)[0])) {
		t.Fatalf("stale result applied")
	}
	if c.Filter().Page != 2 {
		t.Fatalf("page = %d, stale result must not rewind", c.Filter().Page)
	}
}

func TestController_ReconcilesWithRequestGenre(t *testing.T) {
	loose := []catalog.Title{
		{ID: "1", Genre: "Drame"},
		{ID: "2", Genre: "Drame psychologique"},
		{ID: "3", Genre: "Action & Drame"},
	}
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) { return loose, nil }}
	c, queue := newQueuedController(f)
	c.SetGenre("Drame")
	c.SetGenre("")

	res := c.Fetch(context.Background(), (*queue)[0])
	if len(res.Items) != 2 {
		t.Fatalf("items = %#v, want the two exact Drame matches", res.Items)
	}
	res = c.Fetch(context.Background(), (*queue)[1])
	if len(res.Items) != 3 {
		t.Fatalf("items = %d, want all three without a genre", len(res.Items))
	}
}

func TestController_FailureEmptiesResults(t *testing.T) {
	fail := errors.New("connection refused")
	var mu sync.Mutex
	failing := false
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return nil, &catalog.NetworkError{Op: "/api/titles", Err: fail}
		}
		return makeTitles(60), nil
	}}
	c := newSyncController(f, &debounce.ManualClock{})
	c.Refresh()
	c.NextPage()

	mu.Lock()
	failing = true
	mu.Unlock()
	c.SetYear("1990")

	var network *catalog.NetworkError
	if err := c.Err(); !errors.As(err, &network) {
		t.Fatalf("Err = %v, want NetworkError", err)
	}
	view := c.View()
	if view.Total != 0 || view.Page != 1 || view.TotalPages != 1 {
		t.Fatalf("view after failure = %#v", view)
	}
	if c.Snapshot().ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", c.Snapshot().ConsecutiveFailures)
	}

	mu.Lock()
	failing = false
	mu.Unlock()
	c.Refresh()
	if c.Err() != nil || c.View().Total != 60 {
		t.Fatalf("retry did not recover: err=%v total=%d", c.Err(), c.View().Total)
	}
}

func TestController_DefaultLauncherRunsInBackground(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	f := &fakeFetcher{respond: func(catalog.TitleQuery) ([]catalog.Title, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return makeTitles(3), nil
	}}
	c := NewController(catalog.Series, f, nil, Options{Clock: &debounce.ManualClock{}})

	returned := make(chan struct{})
	go func() {
		c.Refresh()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatalf("Refresh blocked on the fetch")
	}
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatalf("fetch never started")
	}
	if !c.Loading() {
		t.Fatalf("expected loading while the fetch is outstanding")
	}

	close(release)
	deadline := time.Now().Add(2 * time.Second)
	for c.Loading() {
		if time.Now().After(deadline) {
			t.Fatalf("refresh never committed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := c.View().Total; got != 3 {
		t.Fatalf("total = %d, want 3", got)
	}
	if calls := f.Calls(); calls[0].Kind != catalog.Series {
		t.Fatalf("kind = %q, want series", calls[0].Kind)
	}
}
