package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/reel/internal/browse"
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/genre"
	"github.com/five82/reel/internal/logging"
	"github.com/five82/reel/internal/prefs"
)

// Client is everything the UI reads from the catalog.
type Client interface {
	catalog.TitleFetcher
	catalog.DetailFetcher
}

// Options configure the UI.
type Options struct {
	Context   context.Context
	Client    Client
	Kind      catalog.Kind
	Collate   genre.Compare
	Logger    *log.Logger
	ThemeName string
	PrefsPath string
	LogPath   string // shown on the failure panel; empty hides it
}

const (
	failureLogLines = 8
	chromeLines     = 6 // header, filter bar, blank, footer, help
)

type resultMsg struct {
	ctrl *browse.Controller
	res  browse.Result
}

type facetsMsg struct {
	kind   catalog.Kind
	facets browse.Facets
	err    error
}

type detailsMsg struct {
	kind    catalog.Kind
	id      string
	details catalog.Details
	recs    []catalog.Title
	err     error
}

type prefsSavedMsg struct {
	err error
}

// detailState is the open detail pane.
type detailState struct {
	kind    catalog.Kind
	item    catalog.Title
	loading bool
	details catalog.Details
	recs    []catalog.Title
	err     error
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	client    Client
	logger    *log.Logger
	collate   genre.Compare
	prefsPath string
	logPath   string

	// Shared across copies of the model: commands queued by the controller
	// and the debounce clock are drained at the end of each Update.
	pending *cmdQueue
	clock   *loopClock

	kind      catalog.Kind
	ctrl      *browse.Controller
	facets    browse.Facets
	facetsErr error
	logLines  []string
	cursor    int

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	pager     paginator.Model
	help      help.Model
	keys      keyMap
	viewport  viewport.Model
	detail    *detailState

	theme     Theme
	themeName string
	status    string
	width     int
	height    int
}

// New builds the model. Nothing is fetched until Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	collate := opts.Collate
	if collate == nil {
		collate = genre.Collation(genre.DefaultLocale)
	}
	kind := opts.Kind
	if kind == "" {
		kind = catalog.Movie
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search titles"
	search.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = browse.PageSize

	queue := &cmdQueue{}
	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		logger:    logger,
		collate:   collate,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		pending:   queue,
		clock:     newLoopClock(queue),
		kind:      kind,
		search:    search,
		spinner:   spin,
		pager:     pager,
		help:      help.New(),
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
		theme:     GetTheme(opts.ThemeName),
		themeName: GetTheme(opts.ThemeName).Name,
	}
	m.ctrl = m.newController(kind)
	m.applyTheme()
	return m
}

func (m Model) newController(kind catalog.Kind) *browse.Controller {
	var ctrl *browse.Controller
	ctx, client, queue := m.ctx, m.client, m.pending
	ctrl = browse.NewController(kind, client, func(r browse.Refresh) {
		queue.push(func() tea.Msg {
			return resultMsg{ctrl: ctrl, res: ctrl.Fetch(ctx, r)}
		})
	}, browse.Options{
		Clock:  m.clock,
		Logger: m.logger.WithPrefix(string(kind)),
	})
	return ctrl
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.ctrl.Refresh()
	cmds := append(m.pending.drain(), m.spinner.Tick, m.loadFacets(m.kind))
	return tea.Batch(cmds...)
}

func (m Model) loadFacets(kind catalog.Kind) tea.Cmd {
	ctx, client, collate := m.ctx, m.client, m.collate
	return func() tea.Msg {
		facets, err := browse.LoadFacets(ctx, client, kind, collate)
		return facetsMsg{kind: kind, facets: facets, err: err}
	}
}

func (m Model) loadDetails(kind catalog.Kind, id string) tea.Cmd {
	ctx, client, logger := m.ctx, m.client, m.logger
	return func() tea.Msg {
		details, err := client.FetchDetails(ctx, kind, id)
		if err != nil {
			return detailsMsg{kind: kind, id: id, err: err}
		}
		recs, recErr := client.FetchRecommendations(ctx, kind, id, catalog.DefaultRecommendations)
		if recErr != nil {
			logger.Warn("recommendations failed", "kind", kind, "id", id, "err", recErr)
		}
		return detailsMsg{kind: kind, id: id, details: details, recs: recs}
	}
}

func (m Model) savePrefs() tea.Cmd {
	path := m.prefsPath
	p := prefs.Prefs{Theme: m.themeName, Kind: m.kind}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.search.PromptStyle = styles.AccentText
	m.search.TextStyle = styles.Text
	m.search.PlaceholderStyle = styles.FaintText
	m.spinner.Style = styles.AccentText
	m.pager.ActiveDot = styles.AccentText.Render("•")
	m.pager.InactiveDot = styles.FaintText.Render("•")
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.MutedText
}

func (m *Model) syncPager() {
	view := m.ctrl.View()
	m.pager.TotalPages = view.TotalPages
	m.pager.Page = view.Page - 1
	if view.TotalPages > 10 {
		m.pager.Type = paginator.Arabic
	} else {
		m.pager.Type = paginator.Dots
	}
}

func (m *Model) refreshLogTail() {
	if m.logPath == "" {
		m.logLines = nil
		return
	}
	lines, err := logging.Tail(m.logPath, failureLogLines)
	if err != nil {
		m.logger.Debug("read log tail", "err", err)
		return
	}
	m.logLines = lines
}

// describeError turns a refresh error into a one-line message.
func describeError(err error) string {
	var network *catalog.NetworkError
	var remote *catalog.RemoteError
	var missing *catalog.MissingParameterError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &remote):
		return fmt.Sprintf("catalog API answered %d", remote.Status)
	case errors.As(err, &network):
		return "catalog API unreachable"
	case errors.As(err, &missing):
		return missing.Error()
	default:
		return err.Error()
	}
}
