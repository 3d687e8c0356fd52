// Package theme defines the color palettes used by the dashboard.
package theme

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is a complete color palette for the TUI.
type Theme struct {
	// Base colors
	Base     lipgloss.Color // background
	Surface0 lipgloss.Color // panel surface
	Surface1 lipgloss.Color // surface highlight

	// Text colors
	Text    lipgloss.Color // primary text
	Subtext lipgloss.Color // secondary text
	Overlay lipgloss.Color // dimmed text

	// Accents
	Blue     lipgloss.Color
	Mauve    lipgloss.Color
	Pink     lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Sky      lipgloss.Color
	Lavender lipgloss.Color

	// Semantic colors
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// CatppuccinMocha is the flagship dark theme.
var CatppuccinMocha = Theme{
	Base:     lipgloss.Color("#1e1e2e"),
	Surface0: lipgloss.Color("#313244"),
	Surface1: lipgloss.Color("#45475a"),

	Text:    lipgloss.Color("#cdd6f4"),
	Subtext: lipgloss.Color("#a6adc8"),
	Overlay: lipgloss.Color("#6c7086"),

	Blue:     lipgloss.Color("#89b4fa"),
	Mauve:    lipgloss.Color("#cba6f7"),
	Pink:     lipgloss.Color("#f5c2e7"),
	Red:      lipgloss.Color("#f38ba8"),
	Peach:    lipgloss.Color("#fab387"),
	Yellow:   lipgloss.Color("#f9e2af"),
	Green:    lipgloss.Color("#a6e3a1"),
	Sky:      lipgloss.Color("#89dceb"),
	Lavender: lipgloss.Color("#b4befe"),

	Primary: lipgloss.Color("#89b4fa"),
	Success: lipgloss.Color("#a6e3a1"),
	Warning: lipgloss.Color("#f9e2af"),
	Error:   lipgloss.Color("#f38ba8"),
	Info:    lipgloss.Color("#89dceb"),
}

// CatppuccinLatte is a light theme for light terminals.
var CatppuccinLatte = Theme{
	Base:     lipgloss.Color("#eff1f5"),
	Surface0: lipgloss.Color("#ccd0da"),
	Surface1: lipgloss.Color("#bcc0cc"),

	Text:    lipgloss.Color("#4c4f69"),
	Subtext: lipgloss.Color("#6c6f85"),
	Overlay: lipgloss.Color("#7c7f93"),

	Blue:     lipgloss.Color("#1e66f5"),
	Mauve:    lipgloss.Color("#8839ef"),
	Pink:     lipgloss.Color("#ea76cb"),
	Red:      lipgloss.Color("#d20f39"),
	Peach:    lipgloss.Color("#fe640b"),
	Yellow:   lipgloss.Color("#df8e1d"),
	Green:    lipgloss.Color("#40a02b"),
	Sky:      lipgloss.Color("#04a5e5"),
	Lavender: lipgloss.Color("#7287fd"),

	Primary: lipgloss.Color("#1e66f5"),
	Success: lipgloss.Color("#40a02b"),
	Warning: lipgloss.Color("#df8e1d"),
	Error:   lipgloss.Color("#d20f39"),
	Info:    lipgloss.Color("#04a5e5"),
}

// Plain uses terminal default colors. Selected when NO_COLOR is set.
var Plain = Theme{}

// NoColorEnabled respects the NO_COLOR standard (https://no-color.org/).
// LAZYVERDI_NO_COLOR=0 forces colors on, =1 forces them off.
func NoColorEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LAZYVERDI_NO_COLOR"))) {
	case "0", "false", "no", "off":
		return false
	case "1", "true", "yes", "on":
		return true
	}
	_, set := os.LookupEnv("NO_COLOR")
	return set
}

// FromName returns a theme by name. Unknown names and "auto" fall back to
// background detection.
func FromName(name string) Theme {
	if NoColorEnabled() {
		return Plain
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "none", "no-color", "nocolor":
		return Plain
	case "mocha", "dark":
		return CatppuccinMocha
	case "latte", "light":
		return CatppuccinLatte
	default:
		if t, ok := loadCustom(name); ok {
			return t
		}
		return autoTheme()
	}
}

var current struct {
	mu  sync.RWMutex
	set bool
	t   Theme
}

// Configure selects the active theme by name.
func Configure(name string) {
	t := FromName(name)
	current.mu.Lock()
	current.t = t
	current.set = true
	current.mu.Unlock()
}

// Current returns the active theme, configuring from LAZYVERDI_THEME on
// first use.
func Current() Theme {
	current.mu.RLock()
	if current.set {
		t := current.t
		current.mu.RUnlock()
		return t
	}
	current.mu.RUnlock()
	Configure(os.Getenv("LAZYVERDI_THEME"))
	return Current()
}

// detectDarkBackground is a variable for testability.
var detectDarkBackground = func() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

var (
	cachedAutoTheme Theme
	autoThemeOnce   sync.Once
)

func autoTheme() Theme {
	autoThemeOnce.Do(func() {
		cachedAutoTheme = CatppuccinMocha
		defer func() {
			if recover() != nil {
				cachedAutoTheme = CatppuccinMocha
			}
		}()
		if !detectDarkBackground() {
			cachedAutoTheme = CatppuccinLatte
		}
	})
	return cachedAutoTheme
}
