package dash

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler drives the periodic refresh loop. Panels with a query still
// in flight are skipped on the next tick rather than queued, so a slow
// verdi never accumulates a backlog.
type Scheduler struct {
	interval time.Duration
	enabled  bool
	epoch    uint64
	inFlight [PanelCount]bool
}

// NewScheduler builds a scheduler from the configured interval in
// seconds. A non-positive interval disables periodic refresh entirely.
func NewScheduler(intervalSeconds float64, enabled bool) *Scheduler {
	s := &Scheduler{}
	s.Configure(intervalSeconds, enabled)
	return s
}

// Configure replaces the interval and enabled flag. Ticks armed under
// the previous settings are invalidated.
func (s *Scheduler) Configure(intervalSeconds float64, enabled bool) {
	s.epoch++
	if intervalSeconds <= 0 {
		s.interval = 0
		s.enabled = false
		return
	}
	s.interval = time.Duration(intervalSeconds * float64(time.Second))
	s.enabled = enabled
}

// Active reports whether periodic refresh is running.
func (s *Scheduler) Active() bool {
	return s.enabled && s.interval > 0
}

// Interval returns the configured period, zero when disabled.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Toggle flips the pause state. Pausing is a no-op when the interval is
// disabled in config. Reports whether the scheduler is active afterwards.
func (s *Scheduler) Toggle() bool {
	if s.interval <= 0 {
		return false
	}
	s.epoch++
	s.enabled = !s.enabled
	return s.enabled
}

// Epoch identifies the current tick chain. Every Configure or Toggle
// starts a new chain, so a tick armed before either call carries a
// stale epoch and must be dropped instead of re-armed. Without the tag
// a pause/resume cycle would leave two live chains doubling the
// refresh rate.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// TickCmd arms the next tick, or nil when refresh is inactive.
func (s *Scheduler) TickCmd() tea.Cmd {
	if !s.Active() {
		return nil
	}
	epoch := s.epoch
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return RefreshTickMsg{At: t, Epoch: epoch}
	})
}

// Due returns the panels to refresh on this tick: every auto-refresh
// panel that is not already waiting on a result, the focused panel first.
func (s *Scheduler) Due(focused PanelID) []PanelID {
	var due []PanelID
	if focused.AutoRefresh() && !s.inFlight[focused] {
		due = append(due, focused)
	}
	for p := PanelID(0); p < PanelCount; p++ {
		if p == focused || !p.AutoRefresh() || s.inFlight[p] {
			continue
		}
		due = append(due, p)
	}
	return due
}

// MarkInFlight records that a query for the panel has been dispatched.
func (s *Scheduler) MarkInFlight(p PanelID) {
	s.inFlight[p] = true
}

// Done records that the panel's outstanding query resolved.
func (s *Scheduler) Done(p PanelID) {
	s.inFlight[p] = false
}

// InFlight reports whether the panel has an unresolved query.
func (s *Scheduler) InFlight(p PanelID) bool {
	return s.inFlight[p]
}
