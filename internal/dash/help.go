package dash

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
)

const helpMarkdown = `# lazyverdi

Keyboard-driven dashboard for AiiDA's verdi CLI.

## Navigation

| Key | Action |
| --- | ------ |
| j / k | move cursor down / up |
| h / l | scroll wide tables horizontally |
| gg / G | jump to top / bottom |
| tab / shift+tab | cycle panel focus |
| [ / ] | cycle the focused panel's tabs |
| 0-6 | focus panel by number |

## Selection (processes panel)

| Key | Action |
| --- | ------ |
| space | toggle row selection |
| v | extend selection to cursor |
| ctrl+a | select all rows |
| esc | clear selection |

## Actions

| Key | Action |
| --- | ------ |
| K | kill selected processes (asks y/n) |
| r | refresh focused panel |
| p | pause / resume auto-refresh |
| ? | toggle this help |
| q | quit |
`

// helpView renders the help overlay centered in the window.
func (m Model) helpView() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}
	if width > 80 {
		width = 80
	}

	style := "dark"
	if theme.NoColorEnabled() {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	body := helpMarkdown
	if err == nil {
		if out, rerr := r.Render(helpMarkdown); rerr == nil {
			body = out
		}
	}

	t := theme.Current()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
