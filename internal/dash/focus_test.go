package dash

import (
	"testing"
)

func TestFocusCycleCoversAllPanels(t *testing.T) {
	f := NewFocus(PanelComputers)
	seen := make(map[PanelID]bool)
	for i := 0; i < int(PanelCount); i++ {
		seen[f.Current()] = true
		f.Next()
	}
	if len(seen) != int(PanelCount) {
		t.Errorf("tab cycle visited %d panels, want %d", len(seen), PanelCount)
	}
	if f.Current() != PanelComputers {
		t.Errorf("full cycle should wrap back to start, got %v", f.Current())
	}
}

func TestFocusPrevWraps(t *testing.T) {
	f := NewFocus(PanelComputers)
	f.Prev()
	if f.Current() != PanelStatus {
		t.Errorf("Prev from first = %v, want status", f.Current())
	}
}

func TestFocusSetRejectsInvalid(t *testing.T) {
	f := NewFocus(PanelProcesses)
	if f.Set(PanelID(-1)) || f.Set(PanelCount) {
		t.Error("out-of-range panel ids must be rejected")
	}
	if f.Current() != PanelProcesses {
		t.Errorf("focus moved on invalid Set: %v", f.Current())
	}
}

func TestLeftHeightsSumTo100(t *testing.T) {
	for _, focused := range []PanelID{PanelComputers, PanelProcesses, PanelProfiles, PanelResults} {
		h := LeftHeights(focused, 50)
		sum := 0
		for _, v := range h {
			sum += v
		}
		if sum != 100 {
			t.Errorf("focused=%v: heights %v sum to %d", focused, h, sum)
		}
	}
}

func TestLeftHeightsFocusedGrows(t *testing.T) {
	h := LeftHeights(PanelProcesses, 50)
	if h[1] != 50 {
		t.Errorf("focused panel height = %d, want 50", h[1])
	}
	for i, v := range h {
		if i != 1 && v >= 50 {
			t.Errorf("unfocused panel %d height = %d, want < 50", i, v)
		}
	}
}

func TestLeftHeightsUnfocusedColumnEven(t *testing.T) {
	h := LeftHeights(PanelResults, 50)
	for _, v := range h {
		if v != 20 {
			t.Errorf("heights = %v, want all 20 when focus is on the right", h)
			break
		}
	}
}

func TestRightHeights(t *testing.T) {
	r, s := RightHeights(80)
	if r != 80 || s != 20 {
		t.Errorf("RightHeights(80) = %d,%d, want 80,20", r, s)
	}
	r, s = RightHeights(150)
	if r+s != 100 {
		t.Errorf("clamped heights %d,%d should sum to 100", r, s)
	}
}
