// Package components provides shared TUI building blocks.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
)

// ScrollState tracks scroll position within a viewport.
type ScrollState struct {
	FirstVisible int // index of first visible row
	LastVisible  int // index of last visible row, inclusive
	TotalItems   int
}

// HasMoreAbove returns true if there's content above the viewport.
func (s ScrollState) HasMoreAbove() bool {
	return s.FirstVisible > 0
}

// HasMoreBelow returns true if there's content below the viewport.
func (s ScrollState) HasMoreBelow() bool {
	return s.TotalItems > 0 && s.LastVisible < s.TotalItems-1
}

// Indicator returns "▲▼", "▲", "▼", or "" depending on hidden content.
func (s ScrollState) Indicator() string {
	switch {
	case s.HasMoreAbove() && s.HasMoreBelow():
		return "▲▼"
	case s.HasMoreAbove():
		return "▲"
	case s.HasMoreBelow():
		return "▼"
	default:
		return ""
	}
}

// RenderScrollIndicator renders "12-24 of 130 ▼" for a panel footer.
func RenderScrollIndicator(s ScrollState) string {
	if s.TotalItems == 0 {
		return ""
	}
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(t.Overlay)
	text := fmt.Sprintf("%d-%d of %d", s.FirstVisible+1, s.LastVisible+1, s.TotalItems)
	if ind := s.Indicator(); ind != "" {
		text += " " + ind
	}
	return style.Render(text)
}
