package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/browse"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, msg.Width/3)
		m.resizeViewport()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case timerFiredMsg:
		m.clock.fire(msg.id)

	case resultMsg:
		if msg.ctrl != m.ctrl {
			// Response for a session that was replaced by a kind switch.
			break
		}
		if m.ctrl.Apply(msg.res) {
			m.cursor = 0
			m.syncPager()
			if msg.res.Err != nil {
				m.refreshLogTail()
			} else if m.facetsErr != nil && len(m.facets.Genres) == 0 {
				m.facets = browse.FacetsFromTitles(m.ctrl.Snapshot().Items, m.collate)
			}
		}

	case facetsMsg:
		if msg.kind != m.kind {
			break
		}
		m.facetsErr = msg.err
		if msg.err != nil {
			m.logger.Warn("facets unavailable", "kind", msg.kind, "err", msg.err)
			if snap := m.ctrl.Snapshot(); len(snap.Items) > 0 {
				m.facets = browse.FacetsFromTitles(snap.Items, m.collate)
			}
			break
		}
		m.facets = msg.facets

	case detailsMsg:
		if m.detail == nil || m.detail.kind != msg.kind || m.detail.item.ID != msg.id {
			break
		}
		m.detail.loading = false
		m.detail.details = msg.details
		m.detail.recs = msg.recs
		m.detail.err = msg.err
		if msg.err != nil {
			m.logger.Warn("details failed", "kind", msg.kind, "id", msg.id, "err", msg.err)
		}
		m.viewport.SetContent(m.renderDetailContent())
		m.viewport.GotoTop()

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "could not save prefs: " + msg.err.Error()
			m.logger.Warn("save prefs", "err", msg.err)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.pending.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()
	case key.Matches(msg, m.keys.NextGenre):
		m.ctrl.SetGenre(browse.Cycle(m.facets.Genres, m.ctrl.Filter().Genre, 1))
	case key.Matches(msg, m.keys.PrevGenre):
		m.ctrl.SetGenre(browse.Cycle(m.facets.Genres, m.ctrl.Filter().Genre, -1))
	case key.Matches(msg, m.keys.NextYear):
		m.ctrl.SetYear(browse.Cycle(m.facets.Years, m.ctrl.Filter().Year, 1))
	case key.Matches(msg, m.keys.PrevYear):
		m.ctrl.SetYear(browse.Cycle(m.facets.Years, m.ctrl.Filter().Year, -1))
	case key.Matches(msg, m.keys.ToggleSort):
		m.ctrl.ToggleSort()
	case key.Matches(msg, m.keys.Reset):
		m.search.SetValue("")
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Retry):
		m.ctrl.Refresh()
		if m.facetsErr != nil {
			return m.loadFacets(m.kind)
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.ctrl.NextPage() {
			m.cursor = 0
			m.syncPager()
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.ctrl.PrevPage() {
			m.cursor = 0
			m.syncPager()
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.ctrl.View().Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		return m.openDetail()
	case key.Matches(msg, m.keys.SwitchKind):
		return m.switchKind()
	case key.Matches(msg, m.keys.CycleTheme):
		m.themeName = NextTheme(m.themeName)
		m.theme = GetTheme(m.themeName)
		m.applyTheme()
		return m.savePrefs()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetQuery(m.search.Value())
	return cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.Type == tea.KeyBackspace:
		m.detail = nil
		return nil
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) openDetail() tea.Cmd {
	items := m.ctrl.View().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	item := items[m.cursor]
	m.detail = &detailState{kind: m.kind, item: item, loading: true}
	m.resizeViewport()
	m.viewport.SetContent(m.renderDetailContent())
	return m.loadDetails(m.kind, item.ID)
}

// switchKind starts a fresh filter session for the other content type.
func (m *Model) switchKind() tea.Cmd {
	m.ctrl.Close()
	m.kind = m.kind.Other()
	m.ctrl = m.newController(m.kind)
	m.facets = browse.Facets{}
	m.facetsErr = nil
	m.cursor = 0
	m.logLines = nil
	m.search.SetValue("")
	m.ctrl.Refresh()
	m.syncPager()
	return tea.Batch(m.loadFacets(m.kind), m.savePrefs())
}

func (m *Model) resizeViewport() {
	m.viewport.Width = max(20, m.width-4)
	m.viewport.Height = max(5, m.height-chromeLines)
}
