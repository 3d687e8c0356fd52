package dash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lazyverdi/lazyverdi/internal/tui/components"
	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
)

// Border and title overhead per panel, in rows.
const panelChrome = 3

// geometry is the resolved cell layout for the current terminal size.
type geometry struct {
	leftWidth   int
	rightWidth  int
	bodyHeight  int
	leftRows    [5]int
	resultsRows int
	statusRows  int
}

func (m Model) layout() geometry {
	g := geometry{}
	g.bodyHeight = m.height - 2 // header and help bar
	if g.bodyHeight < int(PanelCount) {
		g.bodyHeight = int(PanelCount)
	}
	g.leftWidth = m.width * m.cfg.LeftPanelWidthPercent / 100
	if g.leftWidth < 12 {
		g.leftWidth = 12
	}
	g.rightWidth = m.width - g.leftWidth
	if g.rightWidth < 12 {
		g.rightWidth = 12
	}

	pcts := LeftHeights(m.focus.Current(), m.cfg.FocusedPanelHeightPercent)
	rows := pctRows(pcts[:], g.bodyHeight, panelChrome)
	copy(g.leftRows[:], rows)

	rPct, sPct := RightHeights(m.cfg.ResultsPanelHeightPercent)
	right := pctRows([]int{rPct, sPct}, g.bodyHeight, panelChrome)
	g.resultsRows, g.statusRows = right[0], right[1]
	return g
}

// pctRows converts percentages to row counts summing exactly to total,
// giving every panel at least enough rows for its chrome. When total is
// smaller than len(pcts)*min the invariant is unsatisfiable and every
// panel gets min.
func pctRows(pcts []int, total, min int) []int {
	out := make([]int, len(pcts))
	used := 0
	for i, p := range pcts {
		out[i] = total * p / 100
		if out[i] < min {
			out[i] = min
		}
		used += out[i]
	}
	// Shed overshoot round-robin from panels above min so the clamp
	// cannot push the column past total.
	for used > total {
		shrunk := false
		for i := range out {
			if used == total {
				break
			}
			if out[i] > min {
				out[i]--
				used--
				shrunk = true
			}
		}
		if !shrunk {
			return out
		}
	}
	if used < total {
		largest := 0
		for i := range out {
			if out[i] > out[largest] {
				largest = i
			}
		}
		out[largest] += total - used
	}
	return out
}

// panelBodyHeight returns the lines available below a panel's title, used
// for scroll clamping. Table panels lose two more to header and footer.
func (m Model) panelBodyHeight(p PanelID) int {
	g := m.layout()
	h := 1
	switch {
	case p == PanelResults:
		h = g.resultsRows - panelChrome
	case p == PanelStatus:
		h = g.statusRows - panelChrome
	default:
		for i, lp := range leftPanels {
			if lp == p {
				h = g.leftRows[i] - panelChrome
			}
		}
	}
	if len(m.store.Rows(p)) > 0 {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the full dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	g := m.layout()

	left := make([]string, len(leftPanels))
	for i, p := range leftPanels {
		left[i] = m.renderPanel(p, g.leftWidth, g.leftRows[i])
	}
	leftCol := lipgloss.JoinVertical(lipgloss.Left, left...)
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPanel(PanelResults, g.rightWidth, g.resultsRows),
		m.renderPanel(PanelStatus, g.rightWidth, g.statusRows),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.headerBar(), body, m.bottomBar())
}

func (m Model) headerBar() string {
	t := theme.Current()
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("lazyverdi")

	var parts []string
	parts = append(parts, title)
	if m.cfg.VerdiProfile != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Subtext).Render("profile:"+m.cfg.VerdiProfile))
	}
	switch {
	case m.sched.Active():
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Success).
			Render(fmt.Sprintf("auto %s", m.sched.Interval())))
	case m.sched.Interval() > 0:
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Warning).Render("paused"))
	default:
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Overlay).Render("manual"))
	}
	if m.batchActive {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Peach).Render("kill in progress"))
	}
	line := strings.Join(parts, "  ")
	return runewidth.Truncate(line, m.width, "")
}

func (m Model) bottomBar() string {
	if m.confirming {
		t := theme.Current()
		prompt := fmt.Sprintf("kill %d process(es)? (y/n)", len(m.pendingKill))
		return lipgloss.NewStyle().Bold(true).Foreground(t.Red).Render(prompt)
	}
	hints := []components.KeyHint{
		{Key: "j/k", Desc: "move"},
		{Key: "tab", Desc: "panel"},
		{Key: "[/]", Desc: "tab"},
		{Key: "space", Desc: "select"},
		{Key: "v", Desc: "range"},
		{Key: "K", Desc: "kill"},
		{Key: "r", Desc: "refresh"},
		{Key: "p", Desc: "pause"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
	return components.RenderHelpBar(hints, m.width)
}

func (m Model) renderPanel(p PanelID, width, height int) string {
	t := theme.Current()
	focused := m.focus.Current() == p
	view := m.store.Snapshot(p)

	borderColor := t.Surface1
	if focused {
		borderColor = t.Primary
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Height(height - 2)

	innerW := width - 2
	bodyH := height - panelChrome
	if bodyH < 1 {
		bodyH = 1
	}

	lines := []string{m.panelTitle(p, view, innerW, focused)}
	if view.Err != "" {
		lines = append(lines, m.renderError(view.Err, innerW, bodyH)...)
	} else if len(view.Rows) > 0 || len(view.Headers) > 0 {
		lines = append(lines, m.renderTable(p, view, innerW, bodyH, focused)...)
	} else {
		lines = append(lines, m.renderText(view, innerW, bodyH)...)
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) panelTitle(p PanelID, view PanelView, width int, focused bool) string {
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(t.Subtext)
	if focused {
		style = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	}
	name := fmt.Sprintf("[%d] %s", int(p), p.Title())
	if tabs := p.Tabs(); len(tabs) > 1 {
		q, _ := m.activeQuery(p)
		name += fmt.Sprintf(" · %s %d/%d", q.Name, m.activeTab[p]+1, len(tabs))
	}
	if view.SelCount > 0 {
		name += fmt.Sprintf(" (%d selected)", view.SelCount)
	}
	if view.Changed {
		name += " *"
	}

	right := ""
	if p.AutoRefresh() && !view.LastUpdate.IsZero() {
		right = components.RenderFreshness(view.LastUpdate, m.sched.Interval())
	}
	gap := width - lipgloss.Width(name) - lipgloss.Width(right)
	if gap < 1 {
		return runewidth.Truncate(style.Render(name), width, "…")
	}
	return style.Render(name) + strings.Repeat(" ", gap) + right
}

func (m Model) renderError(msg string, width, height int) []string {
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(t.Error)
	wrapped := strings.Split(wordwrap.String(msg, width), "\n")
	if len(wrapped) > height {
		wrapped = wrapped[:height]
	}
	for i := range wrapped {
		wrapped[i] = style.Render(wrapped[i])
	}
	return wrapped
}

func (m Model) renderTable(p PanelID, view PanelView, width, height int, focused bool) []string {
	t := theme.Current()
	widths := columnWidths(view.Headers, view.Rows)

	var out []string
	// One line each for the header and the footer zone.
	rowH := height - 2
	if rowH < 1 {
		rowH = 1
	}
	if len(view.Headers) > 0 {
		head := shiftLine(joinCells(view.Headers, widths), view.XOffset, width)
		out = append(out, lipgloss.NewStyle().Bold(true).Foreground(t.Blue).Render(head))
	}

	end := view.Scroll + rowH
	if end > len(view.Rows) {
		end = len(view.Rows)
	}
	for i := view.Scroll; i < end; i++ {
		row := view.Rows[i]
		marker := " "
		style := lipgloss.NewStyle().Foreground(t.Text)
		if view.Selected[row.ID] {
			marker = "▌"
			style = lipgloss.NewStyle().Foreground(t.Pink)
		}
		if focused && i == view.Cursor {
			style = style.Bold(true).Background(t.Surface1)
		}
		line := shiftLine(joinCells(row.Cells, widths), view.XOffset, width-1)
		out = append(out, marker+style.Render(line))
	}

	if len(view.Rows) > 0 {
		scroll := components.ScrollState{
			FirstVisible: view.Scroll,
			LastVisible:  end - 1,
			TotalItems:   len(view.Rows),
		}
		footer := view.Footer
		if ind := components.RenderScrollIndicator(scroll); ind != "" && (scroll.HasMoreAbove() || scroll.HasMoreBelow()) {
			footer = ind
		}
		if footer != "" {
			out = append(out, lipgloss.NewStyle().Foreground(t.Overlay).
				Render(runewidth.Truncate(footer, width, "…")))
		}
	}
	return out
}

func (m Model) renderText(view PanelView, width, height int) []string {
	t := theme.Current()
	// The scroll offset counts raw lines; wrapping multiplies them, so
	// map each raw line to its first wrapped row before windowing.
	var lines []string
	starts := make([]int, 0, len(view.Lines))
	for _, l := range view.Lines {
		starts = append(starts, len(lines))
		lines = append(lines, strings.Split(wordwrap.String(l, width), "\n")...)
	}
	start := 0
	switch {
	case view.Follow:
		start = len(lines) - height
	case len(starts) > 0:
		idx := view.Scroll
		if idx > len(starts)-1 {
			idx = len(starts) - 1
		}
		if idx < 0 {
			idx = 0
		}
		start = starts[idx]
	}
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	style := lipgloss.NewStyle().Foreground(t.Text)
	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		out = append(out, style.Render(runewidth.Truncate(l, width, "…")))
	}
	if len(out) == 0 {
		out = append(out, lipgloss.NewStyle().Foreground(t.Overlay).Render("no data yet"))
	}
	return out
}

// columnWidths sizes each column to its widest cell.
func columnWidths(headers []string, rows []Row) []int {
	n := len(headers)
	for _, r := range rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	widths := make([]int, n)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, c := range r.Cells {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		w := runewidth.StringWidth(c)
		pad := 0
		if i < len(widths) && widths[i] > w {
			pad = widths[i] - w
		}
		parts[i] = c + strings.Repeat(" ", pad)
	}
	return strings.Join(parts, "  ")
}

// shiftLine applies a horizontal offset then truncates to the viewport.
func shiftLine(line string, xOffset, width int) string {
	if xOffset > 0 {
		r := []rune(line)
		if xOffset >= len(r) {
			return ""
		}
		line = string(r[xOffset:])
	}
	return runewidth.Truncate(line, width, "…")
}
