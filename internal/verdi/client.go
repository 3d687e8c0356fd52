// Package verdi wraps invocations of the AiiDA verdi command-line tool.
package verdi

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Client runs verdi subcommands as external processes.
type Client struct {
	Bin     string // verdi executable, default "verdi"
	Profile string // optional profile selector, passed as -p <profile>
}

// NewClient creates a client for the given executable and profile.
// An empty bin falls back to "verdi"; an empty profile uses the default.
func NewClient(bin, profile string) *Client {
	if bin == "" {
		bin = "verdi"
	}
	return &Client{Bin: bin, Profile: profile}
}

// Result holds the raw output of a single verdi invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Success reports whether the command exited cleanly.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Run executes a verdi subcommand and waits for it to finish.
// The context controls cancellation and timeout; on expiry the process is
// killed and a CommandError with KindTimeout is returned. A non-zero exit
// yields KindExecutionFailed with the exit code and stderr attached.
func (c *Client) Run(ctx context.Context, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, c.Bin, c.argv(args)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// verdi forks helpers that inherit the output pipes. Killing only the
	// direct child leaves those holding the pipes open, so Run would block
	// past the deadline waiting for EOF. Put the command in its own process
	// group and take the whole group down on cancellation, with WaitDelay
	// as a backstop for anything that escaped the group.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, &CommandError{
				Kind: KindTimeout,
				Args: args,
				Err:  ctxErr,
			}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &CommandError{
				Kind:     KindExecutionFailed,
				Args:     args,
				ExitCode: res.ExitCode,
				Stderr:   strings.TrimSpace(res.Stderr),
				Err:      err,
			}
		}
		// Launch failure (binary missing, permission denied, ...).
		return res, &CommandError{
			Kind:   KindExecutionFailed,
			Args:   args,
			Stderr: err.Error(),
			Err:    err,
		}
	}

	return res, nil
}

// argv prepends the profile selector to the subcommand arguments.
func (c *Client) argv(args []string) []string {
	full := make([]string, 0, len(args)+2)
	if c.Profile != "" {
		full = append(full, "-p", c.Profile)
	}
	return append(full, args...)
}

// RunWithTimeout runs a subcommand with a per-command deadline.
func (c *Client) RunWithTimeout(ctx context.Context, timeout time.Duration, args ...string) (Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.Run(ctx, args...)
}

// IsInstalled checks whether the verdi executable is on PATH.
func (c *Client) IsInstalled() bool {
	bin := c.Bin
	if bin == "" {
		bin = "verdi"
	}
	_, err := exec.LookPath(bin)
	return err == nil
}
