package verdi

import (
	"fmt"
	"strings"
)

// ErrorKind classifies command failures.
type ErrorKind int

const (
	// KindExecutionFailed means the process ran but exited non-zero,
	// or could not be launched at all.
	KindExecutionFailed ErrorKind = iota
	// KindTimeout means the per-command deadline expired and the
	// process was killed.
	KindTimeout
	// KindUnparsable means the command succeeded but its output did not
	// match the expected shape.
	KindUnparsable
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindUnparsable:
		return "unparsable"
	default:
		return "execution failed"
	}
}

// CommandError is the typed failure of a single verdi invocation.
type CommandError struct {
	Kind     ErrorKind
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements error.
func (e *CommandError) Error() string {
	cmd := "verdi " + strings.Join(e.Args, " ")
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s: timed out", cmd)
	case KindUnparsable:
		return fmt.Sprintf("%s: unparsable output", cmd)
	default:
		if e.Stderr != "" {
			return fmt.Sprintf("%s: exit %d: %s", cmd, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("%s: exit %d", cmd, e.ExitCode)
	}
}

// Unwrap returns the underlying cause.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Reason returns a short human-readable failure reason, suitable for
// batch summaries.
func (e *CommandError) Reason() string {
	switch e.Kind {
	case KindTimeout:
		return "timed out"
	case KindUnparsable:
		return "unparsable output"
	default:
		if e.Stderr != "" {
			return firstLine(e.Stderr)
		}
		return fmt.Sprintf("exit code %d", e.ExitCode)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// FriendlyMessage rewrites raw stderr of common failure modes into an
// actionable hint for display in the results panel.
func FriendlyMessage(subcommand, stderr string) string {
	lower := strings.ToLower(subcommand + " " + stderr)

	if strings.Contains(lower, "profile") {
		return "No AiiDA profile configured.\n\nPlease run:\n  verdi presto       (for quick setup)\n  verdi setup        (for detailed setup)"
	}
	if strings.Contains(subcommand, "computer") && strings.Contains(stderr, "No") {
		return "No computers configured.\n\nUse 'verdi computer setup' to add computers."
	}
	if strings.Contains(subcommand, "process") && strings.Contains(stderr, "No") {
		return "No processes found.\n\nSubmit calculations to see them here."
	}
	if stderr == "" {
		return "Command failed"
	}
	return stderr
}

// IgnorableStderr reports whether a stderr message is a known harmless
// warning that should not be surfaced (first-run config file notice).
func IgnorableStderr(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "configuration file") && strings.Contains(lower, "does not exist")
}
