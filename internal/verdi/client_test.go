package verdi

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunSuccess(t *testing.T) {
	skipWithoutShell(t)

	c := NewClient("sh", "")
	res, err := c.Run(context.Background(), "-c", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "hello\n" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if !res.Success() {
		t.Errorf("expected success, exit code %d", res.ExitCode)
	}
}

func TestRunExecutionFailed(t *testing.T) {
	skipWithoutShell(t)

	c := NewClient("sh", "")
	res, err := c.Run(context.Background(), "-c", "echo oops >&2; exit 3")
	if err == nil {
		t.Fatal("expected an error")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if cmdErr.Kind != KindExecutionFailed {
		t.Errorf("kind = %v, want execution failed", cmdErr.Kind)
	}
	if cmdErr.ExitCode != 3 || res.ExitCode != 3 {
		t.Errorf("exit code = %d/%d, want 3", cmdErr.ExitCode, res.ExitCode)
	}
	if cmdErr.Stderr != "oops" {
		t.Errorf("stderr = %q", cmdErr.Stderr)
	}
}

func TestRunTimeout(t *testing.T) {
	skipWithoutShell(t)

	c := NewClient("sh", "")
	start := time.Now()
	_, err := c.RunWithTimeout(context.Background(), 100*time.Millisecond, "-c", "sleep 5")
	if time.Since(start) > 3*time.Second {
		t.Fatal("timeout did not terminate the process promptly")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Kind != KindTimeout {
		t.Errorf("kind = %v, want timeout", cmdErr.Kind)
	}
}

func TestRunTimeoutKillsProcessTree(t *testing.T) {
	skipWithoutShell(t)

	// The backgrounded sleep inherits the stdout pipe; unless the whole
	// process group is killed it keeps the pipe open and Run blocks until
	// the grandchild exits on its own.
	c := NewClient("sh", "")
	start := time.Now()
	_, err := c.RunWithTimeout(context.Background(), 100*time.Millisecond, "-c", "sleep 5 & sleep 5")
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("run returned after %v; grandchild kept the pipes open", elapsed)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Kind != KindTimeout {
		t.Errorf("kind = %v, want timeout", cmdErr.Kind)
	}
}

func TestRunLaunchFailure(t *testing.T) {
	c := NewClient("definitely-not-a-real-binary-xyz", "")
	_, err := c.Run(context.Background())
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Kind != KindExecutionFailed {
		t.Errorf("kind = %v", cmdErr.Kind)
	}
}

func TestProfileFlagInjection(t *testing.T) {
	c := NewClient("", "dev")
	if c.Bin != "verdi" {
		t.Errorf("default bin = %q", c.Bin)
	}
	got := c.argv([]string{"process", "list"})
	want := []string{"-p", "dev", "process", "list"}
	if len(got) != len(want) {
		t.Fatalf("argv = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("argv = %v, want %v", got, want)
		}
	}
}

func TestCommandErrorReason(t *testing.T) {
	e := &CommandError{Kind: KindExecutionFailed, ExitCode: 2, Stderr: "first\nsecond"}
	if got := e.Reason(); got != "first" {
		t.Errorf("reason = %q", got)
	}
	e = &CommandError{Kind: KindTimeout}
	if got := e.Reason(); got != "timed out" {
		t.Errorf("reason = %q", got)
	}
}

func TestFriendlyMessage(t *testing.T) {
	msg := FriendlyMessage("profile list", "critical: no profile")
	if msg == "critical: no profile" {
		t.Error("profile errors should be rewritten to a setup hint")
	}
	if got := FriendlyMessage("group list", ""); got != "Command failed" {
		t.Errorf("empty stderr = %q", got)
	}
}

func TestIgnorableStderr(t *testing.T) {
	if !IgnorableStderr("Warning: configuration file ~/.aiida/config.json does not exist") {
		t.Error("first-run config warning should be ignorable")
	}
	if IgnorableStderr("Error: everything is broken") {
		t.Error("real errors are not ignorable")
	}
}
