package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromNameKnownThemes(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	t.Setenv("LAZYVERDI_NO_COLOR", "0")

	if got := FromName("mocha"); got.Text != CatppuccinMocha.Text {
		t.Error("mocha not resolved")
	}
	if got := FromName("latte"); got.Text != CatppuccinLatte.Text {
		t.Error("latte not resolved")
	}
	if got := FromName("plain"); got.Text != Plain.Text {
		t.Error("plain not resolved")
	}
}

func TestNoColorWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LAZYVERDI_NO_COLOR", "")
	if got := FromName("mocha"); got.Text != Plain.Text {
		t.Error("NO_COLOR must force the plain theme")
	}
}

func TestNoColorOverride(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LAZYVERDI_NO_COLOR", "0")
	if NoColorEnabled() {
		t.Error("LAZYVERDI_NO_COLOR=0 should force colors on")
	}
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mytheme.toml")
	content := "text = \"#ffffff\"\nprimary = \"#ff00ff\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	th, ok := LoadCustomFile(path)
	if !ok {
		t.Fatal("expected custom theme to load")
	}
	if string(th.Text) != "#ffffff" {
		t.Errorf("text = %q", th.Text)
	}
	if string(th.Primary) != "#ff00ff" {
		t.Errorf("primary = %q", th.Primary)
	}
	// Unset fields inherit the dark palette.
	if th.Surface0 != CatppuccinMocha.Surface0 {
		t.Error("unset fields should inherit")
	}
}

func TestLoadCustomFileMissing(t *testing.T) {
	if _, ok := LoadCustomFile(filepath.Join(t.TempDir(), "nope.toml")); ok {
		t.Error("missing file should not load")
	}
}
