package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyverdi/lazyverdi/internal/verdi"
)

// ItemFailure records one failed item of a batch.
type ItemFailure struct {
	ID     string
	Reason string
}

// BatchSummary aggregates the outcome of a batch action. It is produced
// once, after every item has resolved.
type BatchSummary struct {
	Action    string
	Total     int
	Succeeded int
	Failures  []ItemFailure
	Duration  time.Duration
}

// BatchDoneMsg delivers a finished batch to the event loop.
type BatchDoneMsg struct {
	Summary BatchSummary
}

// DispatchBatch fans out one command per id, at most maxInFlight at a time.
// One item's failure never cancels the others; every outcome is collected
// into a single summary. Failed items are not retried.
func (r *Runner) DispatchBatch(ctx context.Context, action string, ids []string, argsFor func(id string) []string, maxInFlight int) tea.Cmd {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	// Snapshot the ids so later selection changes cannot alter the job.
	targets := make([]string, len(ids))
	copy(targets, ids)

	timeout := r.Timeout()
	return func() tea.Msg {
		start := time.Now()
		sem := make(chan struct{}, maxInFlight)
		outcomes := make([]error, len(targets))

		var wg sync.WaitGroup
		for i, id := range targets {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, id string) {
				defer wg.Done()
				defer func() { <-sem }()
				_, err := r.client.RunWithTimeout(ctx, timeout, argsFor(id)...)
				outcomes[i] = err
			}(i, id)
		}
		wg.Wait()

		summary := BatchSummary{
			Action:   action,
			Total:    len(targets),
			Duration: time.Since(start),
		}
		for i, err := range outcomes {
			if err == nil {
				summary.Succeeded++
				continue
			}
			summary.Failures = append(summary.Failures, ItemFailure{
				ID:     targets[i],
				Reason: failureReason(err),
			})
		}
		return BatchDoneMsg{Summary: summary}
	}
}

func failureReason(err error) string {
	var cmdErr *verdi.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Reason()
	}
	return err.Error()
}
