package theme

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// customTheme is the TOML shape of a user-provided palette. Unset fields
// inherit from the dark theme.
type customTheme struct {
	Base     string `toml:"base"`
	Surface0 string `toml:"surface0"`
	Surface1 string `toml:"surface1"`
	Text     string `toml:"text"`
	Subtext  string `toml:"subtext"`
	Overlay  string `toml:"overlay"`
	Primary  string `toml:"primary"`
	Success  string `toml:"success"`
	Warning  string `toml:"warning"`
	Error    string `toml:"error"`
	Info     string `toml:"info"`
}

// loadCustom resolves a theme name to ~/.config/lazyverdi/themes/<name>.toml.
func loadCustom(name string) (Theme, bool) {
	if name == "" {
		return Theme{}, false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Theme{}, false
	}
	path := filepath.Join(home, ".config", "lazyverdi", "themes", name+".toml")
	return LoadCustomFile(path)
}

// LoadCustomFile reads a palette override from a TOML file.
func LoadCustomFile(path string) (Theme, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, false
	}
	var ct customTheme
	if err := toml.Unmarshal(data, &ct); err != nil {
		return Theme{}, false
	}

	t := CatppuccinMocha
	assign := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	assign(&t.Base, ct.Base)
	assign(&t.Surface0, ct.Surface0)
	assign(&t.Surface1, ct.Surface1)
	assign(&t.Text, ct.Text)
	assign(&t.Subtext, ct.Subtext)
	assign(&t.Overlay, ct.Overlay)
	assign(&t.Primary, ct.Primary)
	assign(&t.Success, ct.Success)
	assign(&t.Warning, ct.Warning)
	assign(&t.Error, ct.Error)
	assign(&t.Info, ct.Info)
	return t, true
}
