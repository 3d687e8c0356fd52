package dash

// Selection tracks multi-selected row identifiers for one panel. The
// anchor is the most recent single-row toggle and seeds range extension.
type Selection struct {
	member    map[string]bool
	anchor    string
	anchorSet bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{member: make(map[string]bool)}
}

// Has reports whether the row identifier is selected.
func (s *Selection) Has(id string) bool {
	return s.member[id]
}

// Count returns the number of selected identifiers.
func (s *Selection) Count() int {
	return len(s.member)
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.member) == 0
}

// Toggle flips membership of id and re-anchors on it.
func (s *Selection) Toggle(id string) {
	if id == "" {
		return
	}
	if s.member[id] {
		delete(s.member, id)
	} else {
		s.member[id] = true
	}
	s.anchor = id
	s.anchorSet = true
}

// ExtendRangeTo selects the contiguous run of rows spanning the current
// selection, the anchor and the target, in either direction. Without a
// prior anchor it behaves as a plain toggle.
func (s *Selection) ExtendRangeTo(target string, rows []Row) {
	ti := rowIndex(rows, target)
	if ti < 0 {
		return
	}
	if !s.anchorSet {
		s.Toggle(target)
		return
	}
	lo, hi := ti, ti
	if ai := rowIndex(rows, s.anchor); ai >= 0 {
		lo, hi = minMax(lo, hi, ai)
	}
	for i, r := range rows {
		if s.member[r.ID] {
			lo, hi = minMax(lo, hi, i)
		}
	}
	for i := lo; i <= hi; i++ {
		s.member[rows[i].ID] = true
	}
}

// SelectAll selects every row currently in the panel.
func (s *Selection) SelectAll(rows []Row) {
	for _, r := range rows {
		s.member[r.ID] = true
	}
	if len(rows) > 0 {
		s.anchor = rows[len(rows)-1].ID
		s.anchorSet = true
	}
}

// Clear empties the selection and drops the anchor.
func (s *Selection) Clear() {
	s.member = make(map[string]bool)
	s.anchor = ""
	s.anchorSet = false
}

// OrderedIDs returns the selected identifiers in panel display order.
func (s *Selection) OrderedIDs(rows []Row) []string {
	ids := make([]string, 0, len(s.member))
	for _, r := range rows {
		if s.member[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func rowIndex(rows []Row, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func minMax(lo, hi, v int) (int, int) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}
