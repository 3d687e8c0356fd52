package dash

// Focus tracks which single panel owns keyboard navigation. Exactly one
// panel is focused at all times.
type Focus struct {
	current PanelID
}

// NewFocus returns a controller focused on the given panel.
func NewFocus(initial PanelID) *Focus {
	f := &Focus{}
	f.Set(initial)
	return f
}

// Current returns the focused panel.
func (f *Focus) Current() PanelID {
	return f.current
}

// Set focuses the panel if the identifier is valid.
func (f *Focus) Set(p PanelID) bool {
	if p < 0 || p >= PanelCount {
		return false
	}
	f.current = p
	return true
}

// Next advances focus in tab order, wrapping around.
func (f *Focus) Next() {
	f.step(1)
}

// Prev moves focus backwards in tab order, wrapping around.
func (f *Focus) Prev() {
	f.step(-1)
}

func (f *Focus) step(delta int) {
	idx := 0
	for i, p := range focusOrder {
		if p == f.current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	f.current = focusOrder[idx]
}

// leftPanels is the left column top to bottom.
var leftPanels = []PanelID{PanelComputers, PanelProcesses, PanelGroups, PanelCodes, PanelProfiles}

// LeftHeights splits the left column's height percentage across its five
// panels. When one of them is focused it grows to focusedPct and the rest
// share the remainder evenly; otherwise all five split evenly. The
// returned percentages always sum to 100.
func LeftHeights(focused PanelID, focusedPct int) [5]int {
	var out [5]int
	focusIdx := -1
	for i, p := range leftPanels {
		if p == focused {
			focusIdx = i
		}
	}
	if focusIdx < 0 {
		spread(out[:], 100)
		return out
	}
	if focusedPct < 1 {
		focusedPct = 1
	}
	if focusedPct > 96 {
		focusedPct = 96
	}
	rest := make([]int, 4)
	spread(rest, 100-focusedPct)
	j := 0
	for i := range out {
		if i == focusIdx {
			out[i] = focusedPct
			continue
		}
		out[i] = rest[j]
		j++
	}
	return out
}

// RightHeights splits the right column between results and status.
func RightHeights(resultsPct int) (results, status int) {
	if resultsPct < 1 {
		resultsPct = 1
	}
	if resultsPct > 99 {
		resultsPct = 99
	}
	return resultsPct, 100 - resultsPct
}

// spread distributes total across the slice as evenly as possible,
// assigning remainders to the earliest entries.
func spread(dst []int, total int) {
	n := len(dst)
	if n == 0 {
		return
	}
	base := total / n
	rem := total % n
	for i := range dst {
		dst[i] = base
		if i < rem {
			dst[i]++
		}
	}
}
