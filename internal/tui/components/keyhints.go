package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
)

// KeyHint is a single keybinding hint, e.g. "j/k" → "move".
type KeyHint struct {
	Key  string
	Desc string
}

// RenderKeyHint renders one hint as a badge-plus-description pair.
func RenderKeyHint(hint KeyHint) string {
	t := theme.Current()
	keyStyle := lipgloss.NewStyle().
		Background(t.Surface0).
		Foreground(t.Text).
		Bold(true).
		Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(t.Overlay)
	return keyStyle.Render(hint.Key) + " " + descStyle.Render(hint.Desc)
}

// RenderHelpBar renders a horizontal bar of hints, dropping hints from the
// right until the bar fits the available width.
func RenderHelpBar(hints []KeyHint, width int) string {
	if len(hints) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(hints))
	for _, h := range hints {
		rendered = append(rendered, RenderKeyHint(h))
	}
	if width <= 0 {
		return strings.Join(rendered, "  ")
	}

	for len(rendered) > 0 {
		bar := strings.Join(rendered, "  ")
		if lipgloss.Width(bar) <= width {
			return bar
		}
		rendered = rendered[:len(rendered)-1]
	}
	return ""
}
