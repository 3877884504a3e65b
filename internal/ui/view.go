package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/catalog"
)

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	styles := m.theme.Styles()

	var body string
	if m.detail != nil {
		body = styles.Pane.Width(width - 2).Render(m.viewport.View())
	} else {
		body = m.renderList(styles, width)
	}

	parts := []string{
		m.renderHeader(styles, width),
		m.renderFilterBar(styles, width),
		body,
		m.renderFooter(styles, width),
	}
	if m.status != "" {
		parts = append(parts, styles.WarningText.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(styles Styles, width int) string {
	view := m.ctrl.View()
	parts := []string{
		styles.Logo.Render("reel"),
		styles.AccentText.Render(m.kind.Label()),
		styles.MutedText.Render(fmt.Sprintf("%d titles", view.Total)),
	}
	if m.ctrl.Loading() {
		parts = append(parts, m.spinner.View()+styles.MutedText.Render(" loading"))
	}
	snap := m.ctrl.Snapshot()
	if snap.IsOffline() {
		parts = append(parts, styles.DangerText.Render("● OFFLINE"))
	}
	return styles.Header.Width(width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFilterBar(styles Styles, width int) string {
	f := m.ctrl.Filter()

	var search string
	switch {
	case m.searching:
		search = m.search.View()
	case f.Query != "":
		search = styles.AccentText.Render("/ ") + styles.Text.Render(f.Query)
	default:
		search = styles.FaintText.Render("/ search")
	}

	chip := func(label, value, empty string) string {
		if value == "" {
			return styles.MutedText.Render(label+" ") + styles.FaintText.Render(empty)
		}
		return styles.MutedText.Render(label+" ") + styles.Chip.Render(value)
	}

	bar := strings.Join([]string{
		search,
		chip("genre", f.Genre, "all"),
		chip("year", f.Year, "all"),
		styles.MutedText.Render("sort ") + styles.Text.Render(f.Sort.String()),
	}, "   ")
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

func (m Model) renderList(styles Styles, width int) string {
	height := max(3, m.height-chromeLines)
	if m.height <= 0 {
		height = 20
	}

	if err := m.ctrl.Err(); err != nil {
		return m.renderFailure(styles, width, err)
	}

	view := m.ctrl.View()
	if len(view.Items) == 0 {
		msg := "No titles match the current filters."
		if m.ctrl.Loading() {
			msg = "Loading titles…"
		}
		return lipgloss.NewStyle().Height(height).Render(styles.MutedText.Render(msg))
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(view.Items))

	rows := make([]string, 0, end-start)
	row := lipgloss.NewStyle().MaxWidth(width)
	for i := start; i < end; i++ {
		item := view.Items[i]
		line := fmt.Sprintf("%3d  %s", view.Offset()+i+1, item.Title)
		if item.Year != "" {
			line += fmt.Sprintf(" (%s)", item.Year)
		}
		if i == m.cursor {
			rows = append(rows, row.Render(styles.Selected.Render(line+"  "+item.Genre)))
			continue
		}
		rows = append(rows, row.Render(styles.Text.Render(line)+"  "+styles.FaintText.Render(item.Genre)))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(rows, "\n"))
}

func (m Model) renderFailure(styles Styles, width int, err error) string {
	lines := []string{
		styles.DangerText.Render("Could not load titles: " + describeError(err)),
		styles.MutedText.Render("Press R to try again or change a filter."),
	}
	if len(m.logLines) > 0 {
		lines = append(lines, "", styles.FaintText.Render("log "+m.logPath))
		for _, l := range m.logLines {
			lines = append(lines, styles.MutedText.Render(l))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter(styles Styles, width int) string {
	view := m.ctrl.View()

	prev := styles.AccentText.Render("← prev")
	if !view.HasPrev() {
		prev = styles.FaintText.Render("← prev")
	}
	next := styles.AccentText.Render("next →")
	if !view.HasNext() {
		next = styles.FaintText.Render("next →")
	}

	content := strings.Join([]string{
		prev,
		styles.Text.Render(fmt.Sprintf("Page %d / %d", view.Page, view.TotalPages)),
		m.pager.View(),
		next,
		styles.MutedText.Render(fmt.Sprintf("(%d)", view.Total)),
	}, "  ")
	return styles.Footer.Width(width).Render(content)
}

// renderDetailContent builds the text of the detail pane.
func (m Model) renderDetailContent() string {
	d := m.detail
	if d == nil {
		return ""
	}
	styles := m.theme.Styles()
	wrap := lipgloss.NewStyle().Width(max(20, m.viewport.Width-2))

	title := d.item.Title
	year := d.item.Year
	if d.details.Title.Title != "" {
		title = d.details.Title.Title
		year = d.details.Year
	}
	heading := styles.Logo.Render(title)
	if year != "" {
		heading += styles.MutedText.Render(" (" + year.String() + ")")
	}
	lines := []string{heading}

	switch {
	case d.loading:
		lines = append(lines, "", styles.MutedText.Render("Loading details…"))
		return strings.Join(lines, "\n")
	case d.err != nil:
		lines = append(lines, "", styles.DangerText.Render("Could not load details: "+describeError(d.err)))
		return strings.Join(lines, "\n")
	}

	meta := []string{orDefault(d.details.Genre, d.item.Genre)}
	if d.details.Duration != "" {
		meta = append(meta, d.details.Duration)
	}
	if d.details.Country != "" {
		meta = append(meta, d.details.Country)
	}
	lines = append(lines, styles.AccentText.Render(strings.Join(meta, " · ")), "")
	lines = append(lines, wrap.Render(orDefault(d.details.Synopsis, "No synopsis available.")), "")
	lines = append(lines,
		styles.MutedText.Render(d.details.DirectorsLabel(d.kind)+": ")+styles.Text.Render(orDefault(d.details.Directors, "n/a")),
		styles.MutedText.Render("Actors: ")+styles.Text.Render(orDefault(d.details.Actors, "n/a")),
		"",
		styles.InfoText.Render("Recommendations"),
	)
	if len(d.recs) == 0 {
		lines = append(lines, styles.FaintText.Render("  none available"))
	}
	for _, rec := range d.recs {
		lines = append(lines, "  • "+recLabel(rec))
	}
	return strings.Join(lines, "\n")
}

func recLabel(t catalog.Title) string {
	if t.Year == "" {
		return t.Title
	}
	return fmt.Sprintf("%s (%s)", t.Title, t.Year)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
