package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestIsInteractiveRejectsNonFiles(t *testing.T) {
	if IsInteractive(&bytes.Buffer{}) {
		t.Error("a plain buffer is not a terminal")
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "lazyverdi version") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestVersionCmdShort(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != Version {
		t.Errorf("short output = %q, want %q", got, Version)
	}
}

func TestConfigCmdLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfgFile = dir + "/config.yaml"
	defer func() { cfgFile = "" }()

	cmd := newConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out.String(), "Created config file") {
		t.Errorf("init output: %q", out.String())
	}

	out.Reset()
	cmd = newConfigCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"show"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "auto_refresh_interval") {
		t.Errorf("show output missing keys: %q", out.String())
	}

	out.Reset()
	cmd = newConfigCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"path"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out.String()) != cfgFile {
		t.Errorf("path = %q, want %q", out.String(), cfgFile)
	}
}
