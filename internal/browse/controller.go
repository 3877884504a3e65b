package browse

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/debounce"
	"github.com/five82/reel/internal/state"
)

// SearchWindow is the quiet period after the last keystroke before a search
// is sent.
const SearchWindow = 250 * time.Millisecond

// Refresh is a title request the controller wants executed.
type Refresh struct {
	Seq   uint64
	Query catalog.TitleQuery
}

// Result is the outcome of executing a Refresh.
type Result struct {
	Seq   uint64
	Query catalog.TitleQuery
	Items []catalog.Title
	Err   error
}

// Launcher executes a Refresh somewhere and eventually hands the Result to
// Controller.Apply. The terminal UI runs it as a bubbletea command.
type Launcher func(Refresh)

// Options tune a Controller. The zero value is usable.
type Options struct {
	Clock        debounce.Clock
	SearchWindow time.Duration
	PageSize     int
	Logger       *log.Logger
	// Context bounds fetches started by the default launcher.
	Context context.Context
}

// Controller owns one filter session for a content type: the filter, the
// result set and the debounced search. State changes go through its methods.
type Controller struct {
	kind     catalog.Kind
	fetcher  catalog.TitleFetcher
	launch   Launcher
	pageSize int
	logger   *log.Logger

	store  state.Store
	search *debounce.Debouncer

	mu     sync.Mutex
	filter state.Filter
}

// NewController starts a session with the default filter. No request is sent
// until Refresh or a transition asks for one. A nil launch runs each fetch on
// its own goroutine.
func NewController(kind catalog.Kind, fetcher catalog.TitleFetcher, launch Launcher, opts Options) *Controller {
	c := &Controller{
		kind:     kind,
		fetcher:  fetcher,
		launch:   launch,
		pageSize: opts.PageSize,
		logger:   opts.Logger,
		filter:   state.DefaultFilter(),
	}
	if c.pageSize <= 0 {
		c.pageSize = PageSize
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.launch == nil {
		ctx := opts.Context
		if ctx == nil {
			ctx = context.Background()
		}
		c.launch = func(r Refresh) {
			go func() { c.Apply(c.Fetch(ctx, r)) }()
		}
	}
	window := opts.SearchWindow
	if window <= 0 {
		window = SearchWindow
	}
	c.search = debounce.New(opts.Clock, window, c.Refresh)
	return c
}

// Kind is the content type of the session.
func (c *Controller) Kind() catalog.Kind {
	return c.kind
}

// Filter returns the current filter.
func (c *Controller) Filter() state.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetQuery records new search text and schedules a debounced refresh.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	if c.filter.Query == q {
		c.mu.Unlock()
		return
	}
	c.filter = c.filter.WithQuery(q)
	c.mu.Unlock()
	c.search.Trigger()
}

// SetGenre selects a genre ("" for all) and refreshes immediately.
func (c *Controller) SetGenre(g string) {
	c.transition(func(f state.Filter) state.Filter { return f.WithGenre(g) })
}

// SetYear selects a year ("" for all) and refreshes immediately.
func (c *Controller) SetYear(y string) {
	c.transition(func(f state.Filter) state.Filter { return f.WithYear(y) })
}

// SetSort selects the ordering and refreshes immediately.
func (c *Controller) SetSort(s state.Sort) {
	c.transition(func(f state.Filter) state.Filter { return f.WithSort(s) })
}

// ToggleSort flips the ordering and refreshes immediately.
func (c *Controller) ToggleSort() {
	c.transition(func(f state.Filter) state.Filter { return f.WithSort(f.Sort.Toggle()) })
}

// Reset restores the default filter and refreshes immediately.
func (c *Controller) Reset() {
	c.transition(func(state.Filter) state.Filter { return state.DefaultFilter() })
}

// An immediate refresh carries the current search text, so a search still
// waiting in the debouncer is redundant.
func (c *Controller) transition(apply func(state.Filter) state.Filter) {
	c.mu.Lock()
	c.filter = apply(c.filter)
	c.mu.Unlock()
	c.search.Cancel()
	c.Refresh()
}

// Refresh issues a request for the current filter.
func (c *Controller) Refresh() {
	c.mu.Lock()
	r := Refresh{Seq: c.store.Begin(), Query: c.filter.TitleQuery(c.kind)}
	c.mu.Unlock()
	c.logger.Debug("refresh", "kind", c.kind, "seq", r.Seq, "params", r.Query.Values().Encode())
	c.launch(r)
}

// Fetch executes r against the catalog and reconciles the items with the
// genre r was issued with. It touches no controller state and is safe to
// call from any goroutine.
func (c *Controller) Fetch(ctx context.Context, r Refresh) Result {
	items, err := c.fetcher.FetchTitles(ctx, r.Query)
	if err != nil {
		return Result{Seq: r.Seq, Query: r.Query, Err: err}
	}
	return Result{Seq: r.Seq, Query: r.Query, Items: Reconcile(items, r.Query.Genre)}
}

// Apply commits res unless a later refresh was committed first. On commit
// the page rewinds to 1. It reports whether res was applied.
func (c *Controller) Apply(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.store.Commit(res.Seq, res.Items, res.Err) {
		c.logger.Debug("dropped stale response", "kind", c.kind, "seq", res.Seq)
		return false
	}
	c.filter.Page = 1
	if res.Err != nil {
		c.logger.Warn("refresh failed", "kind", c.kind, "seq", res.Seq, "err", res.Err)
	} else {
		c.logger.Debug("refresh committed", "kind", c.kind, "seq", res.Seq, "items", len(res.Items))
	}
	return true
}

// NextPage moves forward one page if there is one. No request is made.
func (c *Controller) NextPage() bool {
	return c.movePage(1)
}

// PrevPage moves back one page if there is one. No request is made.
func (c *Controller) PrevPage() bool {
	return c.movePage(-1)
}

func (c *Controller) movePage(delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := Paginate(c.store.Snapshot().Items, c.filter.Page, c.pageSize)
	target := c.filter.Page + delta
	if target < 1 || target > view.TotalPages {
		return false
	}
	c.filter.Page = target
	return true
}

// View is the current page of the result set.
func (c *Controller) View() PageView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Paginate(c.store.Snapshot().Items, c.filter.Page, c.pageSize)
}

// Snapshot exposes the committed result set.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Err is the error of the last committed refresh, if it failed.
func (c *Controller) Err() error {
	return c.store.Snapshot().LastError
}

// Loading reports whether a refresh newer than the displayed data is in
// flight or waiting for the search window to close.
func (c *Controller) Loading() bool {
	return c.store.Pending() || c.search.Pending()
}

// Close drops a pending debounced search.
func (c *Controller) Close() {
	c.search.Cancel()
}
