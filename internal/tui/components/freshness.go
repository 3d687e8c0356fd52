package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
)

// IsStale returns true if data is older than twice the refresh interval.
func IsStale(lastUpdate time.Time, refreshInterval time.Duration) bool {
	if lastUpdate.IsZero() || refreshInterval <= 0 {
		return false
	}
	return time.Since(lastUpdate) > 2*refreshInterval
}

// RenderFreshness renders an "updated Xs ago" marker, highlighted when the
// data has outlived its refresh interval.
func RenderFreshness(lastUpdate time.Time, refreshInterval time.Duration) string {
	if lastUpdate.IsZero() {
		return ""
	}
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(t.Overlay)
	if IsStale(lastUpdate, refreshInterval) {
		style = lipgloss.NewStyle().Foreground(t.Warning)
	}
	return style.Render("updated " + FormatAge(time.Since(lastUpdate)) + " ago")
}

// FormatAge formats a duration compactly: 800ms, 5s, 3m12s, 2h5m.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
