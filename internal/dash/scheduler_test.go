package dash

import (
	"testing"
	"time"
)

func TestSchedulerDisabledInterval(t *testing.T) {
	s := NewScheduler(0, true)
	if s.Active() {
		t.Error("zero interval must disable refresh")
	}
	if s.TickCmd() != nil {
		t.Error("TickCmd must be nil when disabled")
	}
	if s.Toggle() {
		t.Error("Toggle must not enable a disabled interval")
	}

	s = NewScheduler(-1, true)
	if s.Active() {
		t.Error("negative interval must disable refresh")
	}
}

func TestSchedulerToggle(t *testing.T) {
	s := NewScheduler(10, true)
	if !s.Active() {
		t.Fatal("setup: scheduler should start active")
	}
	if s.Toggle() {
		t.Error("first toggle should pause")
	}
	if s.TickCmd() != nil {
		t.Error("paused scheduler must not arm ticks")
	}
	if !s.Toggle() {
		t.Error("second toggle should resume")
	}
	if s.TickCmd() == nil {
		t.Error("resumed scheduler must arm ticks")
	}
}

func TestSchedulerEpochAdvances(t *testing.T) {
	s := NewScheduler(10, true)
	start := s.Epoch()

	if s.Toggle() {
		t.Fatal("setup: first toggle should pause")
	}
	afterPause := s.Epoch()
	if afterPause == start {
		t.Error("pause must start a new tick chain")
	}

	s.Toggle()
	if s.Epoch() == afterPause {
		t.Error("resume must start a new tick chain")
	}

	before := s.Epoch()
	s.Configure(5, true)
	if s.Epoch() == before {
		t.Error("reconfigure must start a new tick chain")
	}
}

func TestSchedulerInterval(t *testing.T) {
	s := NewScheduler(2.5, true)
	if got := s.Interval(); got != 2500*time.Millisecond {
		t.Errorf("Interval = %v, want 2.5s", got)
	}
}

func TestDueFocusedFirst(t *testing.T) {
	s := NewScheduler(10, true)
	due := s.Due(PanelGroups)
	if len(due) != 6 {
		t.Fatalf("due count = %d, want 6 query panels", len(due))
	}
	if due[0] != PanelGroups {
		t.Errorf("focused panel should be dispatched first, got %v", due[0])
	}
	for _, p := range due {
		if p == PanelResults {
			t.Error("results panel has no query and must never be due")
		}
	}
}

func TestDueSkipsInFlight(t *testing.T) {
	s := NewScheduler(10, true)
	s.MarkInFlight(PanelProcesses)
	s.MarkInFlight(PanelStatus)

	for _, p := range s.Due(PanelComputers) {
		if p == PanelProcesses || p == PanelStatus {
			t.Errorf("panel %v still in flight must be skipped, not queued", p)
		}
	}

	s.Done(PanelProcesses)
	found := false
	for _, p := range s.Due(PanelComputers) {
		if p == PanelProcesses {
			found = true
		}
	}
	if !found {
		t.Error("panel should be due again after its query resolves")
	}
}

func TestDueSkipsFocusedInFlight(t *testing.T) {
	s := NewScheduler(10, true)
	s.MarkInFlight(PanelGroups)
	due := s.Due(PanelGroups)
	for _, p := range due {
		if p == PanelGroups {
			t.Error("focused panel in flight must be skipped")
		}
	}
	if len(due) != 5 {
		t.Errorf("due count = %d, want 5", len(due))
	}
}
