// Package dash implements the lazyverdi dashboard: seven cooperating
// panels driven by a single Bubble Tea event loop.
package dash

import (
	"time"

	"github.com/lazyverdi/lazyverdi/internal/config"
	"github.com/lazyverdi/lazyverdi/internal/verdi"
)

// PanelID identifies one of the seven fixed panels.
type PanelID int

const (
	// PanelResults shows command output, batch summaries and errors.
	PanelResults PanelID = iota
	// PanelComputers lists configured computers.
	PanelComputers
	// PanelProcesses lists processes; the selection/kill target.
	PanelProcesses
	// PanelGroups lists node groups.
	PanelGroups
	// PanelCodes lists configured codes.
	PanelCodes
	// PanelProfiles lists profiles.
	PanelProfiles
	// PanelStatus shows verdi status output.
	PanelStatus

	// PanelCount is the number of panels.
	PanelCount
)

// focusOrder is the cyclic tab order: down the left column, then the
// right column top to bottom.
var focusOrder = []PanelID{
	PanelComputers, PanelProcesses, PanelGroups, PanelCodes, PanelProfiles,
	PanelResults, PanelStatus,
}

// Title returns the panel's display name.
func (p PanelID) Title() string {
	switch p {
	case PanelResults:
		return "results"
	case PanelComputers:
		return "computers"
	case PanelProcesses:
		return "processes"
	case PanelGroups:
		return "groups"
	case PanelCodes:
		return "codes"
	case PanelProfiles:
		return "profiles"
	case PanelStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Tabs returns the panel's queries, one per tab. The first tab is the
// panel's default view; the results panel has none, it is fed by other
// panels' errors and batch summaries.
func (p PanelID) Tabs() []verdi.Query {
	switch p {
	case PanelComputers:
		return []verdi.Query{verdi.QueryComputers, verdi.QueryPlugins}
	case PanelProcesses:
		return []verdi.Query{verdi.QueryProcesses, verdi.QueryCalcjobs}
	case PanelGroups:
		return []verdi.Query{verdi.QueryGroups, verdi.QueryNodes}
	case PanelCodes:
		return []verdi.Query{verdi.QueryCodes}
	case PanelProfiles:
		return []verdi.Query{verdi.QueryProfiles, verdi.QueryConfig}
	case PanelStatus:
		return []verdi.Query{verdi.QueryStatus, verdi.QueryDaemon, verdi.QueryStorage}
	default:
		return nil
	}
}

// Query returns the panel's default query, if it has one.
func (p PanelID) Query() (verdi.Query, bool) {
	tabs := p.Tabs()
	if len(tabs) == 0 {
		return verdi.Query{}, false
	}
	return tabs[0], true
}

// LeftColumn reports whether the panel lives in the left column.
func (p PanelID) LeftColumn() bool {
	return p >= PanelComputers && p <= PanelProfiles
}

// AutoRefresh reports whether the panel participates in the refresh loop.
func (p PanelID) AutoRefresh() bool {
	_, ok := p.Query()
	return ok
}

// Selectable reports whether rows of this panel can be multi-selected.
// Only processes have a batch action (kill) bound to them.
func (p PanelID) Selectable() bool {
	return p == PanelProcesses
}

// Row is one selectable record within a panel, keyed by the underlying
// tool's identifier (the PK for processes).
type Row struct {
	ID    string
	Cells []string
}

// Content is a panel's replacement payload: either rows for table panels
// or text for free-text panels.
type Content struct {
	Headers []string
	Rows    []Row
	Text    string
	Footer  string
}

// RowsFromTable converts parsed tabular output, deriving each row's stable
// identifier from its first cell and de-duplicating repeats.
func RowsFromTable(tbl verdi.Table) Content {
	seen := make(map[string]bool, len(tbl.Rows))
	rows := make([]Row, 0, len(tbl.Rows))
	for _, cells := range tbl.Rows {
		if len(cells) == 0 {
			continue
		}
		id := cells[0]
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, Row{ID: id, Cells: cells})
	}
	return Content{Headers: tbl.Headers, Rows: rows, Footer: tbl.Footer}
}

// RefreshTickMsg is the scheduler's periodic wakeup. Epoch names the
// tick chain that armed it; ticks from a superseded chain are dropped.
type RefreshTickMsg struct {
	At    time.Time
	Epoch uint64
}

// ConfigReloadedMsg carries a live-reloaded configuration into the loop.
type ConfigReloadedMsg struct {
	Config *config.Config
}
