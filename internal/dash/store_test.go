package dash

import (
	"testing"
)

func tableContent(ids ...string) Content {
	rows := make([]Row, len(ids))
	for i, id := range ids {
		rows[i] = Row{ID: id, Cells: []string{id, "created", "Waiting"}}
	}
	return Content{Headers: []string{"PK", "Created", "State"}, Rows: rows}
}

func TestApplyResultOutOfOrder(t *testing.T) {
	s := NewStore()

	if !s.ApplyResult(PanelProcesses, 1, tableContent("101")) {
		t.Fatal("seq 1 should apply to empty panel")
	}
	if !s.ApplyResult(PanelProcesses, 3, tableContent("103")) {
		t.Fatal("seq 3 should apply over seq 1")
	}
	if s.ApplyResult(PanelProcesses, 2, tableContent("102")) {
		t.Fatal("seq 2 must be discarded after seq 3 applied")
	}

	rows := s.Rows(PanelProcesses)
	if len(rows) != 1 || rows[0].ID != "103" {
		t.Fatalf("panel should show seq 3 content, got %+v", rows)
	}
	if s.LastSeq(PanelProcesses) != 3 {
		t.Errorf("watermark = %d, want 3", s.LastSeq(PanelProcesses))
	}
}

func TestApplyErrorStaleSuppressed(t *testing.T) {
	s := NewStore()
	s.ApplyResult(PanelProcesses, 5, tableContent("101"))

	if s.ApplyError(PanelProcesses, 4, "boom") {
		t.Fatal("stale error must be discarded")
	}
	if got := s.Snapshot(PanelProcesses).Err; got != "" {
		t.Errorf("stale error leaked into panel: %q", got)
	}

	if !s.ApplyError(PanelProcesses, 6, "boom") {
		t.Fatal("newer error should apply")
	}
	view := s.Snapshot(PanelProcesses)
	if view.Err != "boom" {
		t.Errorf("Err = %q, want boom", view.Err)
	}
	// Errors keep the previous content visible.
	if len(view.Rows) != 1 || view.Rows[0].ID != "101" {
		t.Errorf("error wiped panel content: %+v", view.Rows)
	}
}

func TestSetContentClearsSelection(t *testing.T) {
	s := NewStore()
	s.SetContent(PanelProcesses, tableContent("101", "102", "103"))

	sel := s.Selection(PanelProcesses)
	sel.Toggle("101")
	sel.Toggle("103")
	if sel.Count() != 2 {
		t.Fatalf("setup: Count = %d, want 2", sel.Count())
	}

	s.SetContent(PanelProcesses, tableContent("101", "102", "103", "104"))
	if !s.Selection(PanelProcesses).Empty() {
		t.Error("content replacement must clear the selection")
	}
}

func TestChangedMarker(t *testing.T) {
	s := NewStore()
	s.ApplyResult(PanelProcesses, 1, tableContent("101", "102"))
	if s.Snapshot(PanelProcesses).Changed {
		t.Error("first content should not be marked changed")
	}

	s.ApplyResult(PanelProcesses, 2, tableContent("101", "102"))
	if s.Snapshot(PanelProcesses).Changed {
		t.Error("identical refresh should not be marked changed")
	}

	s.ApplyResult(PanelProcesses, 3, tableContent("101", "105"))
	if !s.Snapshot(PanelProcesses).Changed {
		t.Error("differing refresh should be marked changed")
	}
}

func TestMoveCursorClamps(t *testing.T) {
	s := NewStore()
	s.SetContent(PanelProcesses, tableContent("101", "102", "103"))

	s.MoveCursor(PanelProcesses, -5)
	if c := s.Snapshot(PanelProcesses).Cursor; c != 0 {
		t.Errorf("cursor = %d, want 0", c)
	}
	s.MoveCursor(PanelProcesses, 10)
	if c := s.Snapshot(PanelProcesses).Cursor; c != 2 {
		t.Errorf("cursor = %d, want 2", c)
	}
	s.CursorHome(PanelProcesses)
	if c := s.Snapshot(PanelProcesses).Cursor; c != 0 {
		t.Errorf("cursor after home = %d, want 0", c)
	}
}

func TestEnsureVisibleFollowsCursor(t *testing.T) {
	s := NewStore()
	s.SetContent(PanelProcesses, tableContent("1", "2", "3", "4", "5", "6", "7", "8"))

	s.CursorEnd(PanelProcesses)
	s.EnsureVisible(PanelProcesses, 3)
	if sc := s.Snapshot(PanelProcesses).Scroll; sc != 5 {
		t.Errorf("scroll = %d, want 5", sc)
	}

	s.CursorHome(PanelProcesses)
	s.EnsureVisible(PanelProcesses, 3)
	if sc := s.Snapshot(PanelProcesses).Scroll; sc != 0 {
		t.Errorf("scroll after home = %d, want 0", sc)
	}
}

func TestAppendLogCapsHistory(t *testing.T) {
	s := NewStore()
	for i := 0; i < logCap+25; i++ {
		s.AppendLog(PanelResults, "line")
	}
	if n := len(s.Snapshot(PanelResults).Lines); n != logCap {
		t.Errorf("log length = %d, want %d", n, logCap)
	}
}

func TestGenerationBump(t *testing.T) {
	s := NewStore()
	g := s.Generation(PanelProcesses)
	s.BumpGeneration(PanelProcesses)
	if s.Generation(PanelProcesses) != g+1 {
		t.Error("generation should increment")
	}
}
