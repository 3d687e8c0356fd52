// Package runner schedules external verdi commands off the UI loop and
// delivers their results as Bubble Tea messages.
package runner

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyverdi/lazyverdi/internal/verdi"
)

// Invoker runs one external command to completion. *verdi.Client satisfies it.
type Invoker interface {
	RunWithTimeout(ctx context.Context, timeout time.Duration, args ...string) (verdi.Result, error)
}

// CompletionMsg carries the outcome of one dispatched query back into the
// event loop. Seq disambiguates overlapping queries to the same panel; Gen
// identifies the panel generation the query was issued against.
type CompletionMsg struct {
	Panel  int
	Seq    uint64
	Gen    uint64
	Query  verdi.Query
	Result verdi.Result
	Err    error
}

// Runner dispatches commands asynchronously, tagging each with a
// monotonically increasing sequence number.
type Runner struct {
	client  Invoker
	timeout atomic.Int64
	seq     atomic.Uint64
}

// New creates a Runner with a per-command timeout.
func New(client Invoker, timeout time.Duration) *Runner {
	r := &Runner{client: client}
	r.SetTimeout(timeout)
	return r
}

// Timeout returns the per-command deadline.
func (r *Runner) Timeout() time.Duration {
	return time.Duration(r.timeout.Load())
}

// SetTimeout replaces the per-command deadline. In-flight commands keep
// the deadline they started with.
func (r *Runner) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = time.Second
	}
	r.timeout.Store(int64(timeout))
}

// Dispatch issues one query for a panel. The sequence number is assigned
// synchronously at call time, so dispatch order defines result precedence
// even when completions arrive out of order. The returned command runs the
// query in the background and never retries.
func (r *Runner) Dispatch(ctx context.Context, panel int, gen uint64, q verdi.Query) tea.Cmd {
	seq := r.seq.Add(1)
	timeout := r.Timeout()
	return func() tea.Msg {
		res, err := r.client.RunWithTimeout(ctx, timeout, q.Args...)
		return CompletionMsg{
			Panel:  panel,
			Seq:    seq,
			Gen:    gen,
			Query:  q,
			Result: res,
			Err:    err,
		}
	}
}
