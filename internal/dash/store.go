package dash

import (
	"fmt"
	"strings"
	"time"
)

// logCap bounds the results panel's retained history.
const logCap = 500

type panelState struct {
	headers []string
	rows    []Row
	lines   []string
	footer  string

	cursor  int
	scroll  int
	xOffset int
	follow  bool

	lastSeq    uint64
	generation uint64
	lastUpdate time.Time
	lastErr    string
	changed    bool
}

// PanelView is an immutable render snapshot of one panel.
type PanelView struct {
	Headers    []string
	Rows       []Row
	Lines      []string
	Footer     string
	Cursor     int
	Scroll     int
	XOffset    int
	Follow     bool
	LastUpdate time.Time
	Err        string
	Changed    bool
	Selected   map[string]bool
	SelCount   int
}

// Store owns all panel state: content, cursor and scroll positions,
// per-panel sequence watermarks and generation counters, and the
// selection set of each selectable panel.
type Store struct {
	panels     [PanelCount]panelState
	selections [PanelCount]*Selection
}

// NewStore returns a store with every panel empty and following output.
func NewStore() *Store {
	s := &Store{}
	for i := range s.panels {
		s.panels[i].follow = true
		s.selections[i] = NewSelection()
	}
	return s
}

// Generation returns the panel's current generation counter.
func (s *Store) Generation(p PanelID) uint64 {
	return s.panels[p].generation
}

// BumpGeneration invalidates all in-flight work addressed to the panel.
func (s *Store) BumpGeneration(p PanelID) {
	s.panels[p].generation++
}

// LastSeq returns the highest sequence number applied to the panel.
func (s *Store) LastSeq(p PanelID) uint64 {
	return s.panels[p].lastSeq
}

// ApplyResult installs content tagged with a dispatch sequence number.
// Results older than the panel's watermark are discarded so a slow query
// can never overwrite a newer one. Reports whether the content landed.
func (s *Store) ApplyResult(p PanelID, seq uint64, c Content) bool {
	st := &s.panels[p]
	if seq <= st.lastSeq {
		return false
	}
	st.lastSeq = seq
	s.setContent(p, c)
	return true
}

// ApplyError records a failed query, subject to the same staleness rule.
// The panel keeps its previous content; only the error banner changes.
func (s *Store) ApplyError(p PanelID, seq uint64, msg string) bool {
	st := &s.panels[p]
	if seq <= st.lastSeq {
		return false
	}
	st.lastSeq = seq
	st.lastErr = msg
	st.lastUpdate = time.Now()
	return true
}

// SetContent unconditionally replaces the panel's content. The selection
// is cleared: identifiers from a previous snapshot must never survive
// into a new one.
func (s *Store) SetContent(p PanelID, c Content) {
	s.setContent(p, c)
}

func (s *Store) setContent(p PanelID, c Content) {
	st := &s.panels[p]
	next := contentFingerprint(c)
	prev := panelFingerprint(st)
	st.changed = prev != "" && similarity(prev, next) < 1
	st.headers = c.Headers
	st.rows = c.Rows
	st.footer = c.Footer
	if c.Text != "" || len(c.Rows) == 0 && len(c.Headers) == 0 {
		st.lines = splitLines(c.Text)
	} else {
		st.lines = nil
	}
	st.lastErr = ""
	st.lastUpdate = time.Now()
	s.selections[p].Clear()
	s.clampCursor(p)
}

// AppendLog appends a timestamped line to a text panel, trimming history
// beyond the retention cap. Panels left in follow mode stay pinned to the
// newest line.
func (s *Store) AppendLog(p PanelID, line string) {
	st := &s.panels[p]
	stamp := time.Now().Format("15:04:05")
	for _, l := range splitLines(line) {
		st.lines = append(st.lines, fmt.Sprintf("%s %s", stamp, l))
	}
	if over := len(st.lines) - logCap; over > 0 {
		st.lines = append([]string(nil), st.lines[over:]...)
	}
	st.lastUpdate = time.Now()
}

// Selection returns the panel's selection set.
func (s *Store) Selection(p PanelID) *Selection {
	return s.selections[p]
}

// Rows returns the panel's current rows.
func (s *Store) Rows(p PanelID) []Row {
	return s.panels[p].rows
}

// CursorRow returns the row under the cursor, if any.
func (s *Store) CursorRow(p PanelID) (Row, bool) {
	st := &s.panels[p]
	if st.cursor < 0 || st.cursor >= len(st.rows) {
		return Row{}, false
	}
	return st.rows[st.cursor], true
}

// MoveCursor moves the cursor (table panels) or the scroll window (text
// panels) by delta, clamped to content bounds.
func (s *Store) MoveCursor(p PanelID, delta int) {
	st := &s.panels[p]
	if len(st.rows) > 0 {
		st.cursor += delta
		s.clampCursor(p)
		return
	}
	st.follow = false
	st.scroll += delta
	if st.scroll < 0 {
		st.scroll = 0
	}
	if max := len(st.lines) - 1; st.scroll > max && max >= 0 {
		st.scroll = max
	}
}

// ScrollX shifts the horizontal view of wide tables.
func (s *Store) ScrollX(p PanelID, delta int) {
	st := &s.panels[p]
	st.xOffset += delta
	if st.xOffset < 0 {
		st.xOffset = 0
	}
}

// CursorHome jumps to the first row or line.
func (s *Store) CursorHome(p PanelID) {
	st := &s.panels[p]
	st.cursor = 0
	st.scroll = 0
	st.follow = false
}

// CursorEnd jumps to the last row, or re-enables tail follow for text.
func (s *Store) CursorEnd(p PanelID) {
	st := &s.panels[p]
	if len(st.rows) > 0 {
		st.cursor = len(st.rows) - 1
		return
	}
	st.follow = true
}

// EnsureVisible adjusts the scroll window so the cursor stays within the
// given body height.
func (s *Store) EnsureVisible(p PanelID, height int) {
	if height < 1 {
		height = 1
	}
	st := &s.panels[p]
	if len(st.rows) == 0 {
		if st.follow {
			st.scroll = len(st.lines) - height
			if st.scroll < 0 {
				st.scroll = 0
			}
		}
		return
	}
	if st.cursor < st.scroll {
		st.scroll = st.cursor
	}
	if st.cursor >= st.scroll+height {
		st.scroll = st.cursor - height + 1
	}
	if st.scroll < 0 {
		st.scroll = 0
	}
}

// Snapshot returns a copy of the panel suitable for rendering.
func (s *Store) Snapshot(p PanelID) PanelView {
	st := &s.panels[p]
	sel := s.selections[p]
	selected := make(map[string]bool, sel.Count())
	for _, r := range st.rows {
		if sel.Has(r.ID) {
			selected[r.ID] = true
		}
	}
	return PanelView{
		Headers:    append([]string(nil), st.headers...),
		Rows:       append([]Row(nil), st.rows...),
		Lines:      append([]string(nil), st.lines...),
		Footer:     st.footer,
		Cursor:     st.cursor,
		Scroll:     st.scroll,
		XOffset:    st.xOffset,
		Follow:     st.follow,
		LastUpdate: st.lastUpdate,
		Err:        st.lastErr,
		Changed:    st.changed,
		Selected:   selected,
		SelCount:   sel.Count(),
	}
}

func (s *Store) clampCursor(p PanelID) {
	st := &s.panels[p]
	if st.cursor >= len(st.rows) {
		st.cursor = len(st.rows) - 1
	}
	if st.cursor < 0 {
		st.cursor = 0
	}
}

func contentFingerprint(c Content) string {
	if len(c.Rows) > 0 {
		var b strings.Builder
		for _, r := range c.Rows {
			b.WriteString(strings.Join(r.Cells, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}
	return c.Text
}

func panelFingerprint(st *panelState) string {
	if len(st.rows) > 0 {
		var b strings.Builder
		for _, r := range st.rows {
			b.WriteString(strings.Join(r.Cells, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}
	return strings.Join(st.lines, "\n")
}

func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
