package dash

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyverdi/lazyverdi/internal/config"
	"github.com/lazyverdi/lazyverdi/internal/runner"
	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
	"github.com/lazyverdi/lazyverdi/internal/verdi"
)

// doubleKeyWindow is the gg chord timeout.
const doubleKeyWindow = 500 * time.Millisecond

// Options configures a dashboard model.
type Options struct {
	Config *config.Config
	Client *verdi.Client
	// ConfigReloads delivers live-reloaded configurations, typically fed
	// by a file watcher. May be nil.
	ConfigReloads <-chan *config.Config
	// InitialWidth and InitialHeight seed the layout before the first
	// WindowSizeMsg arrives. Zero means wait for the terminal.
	InitialWidth  int
	InitialHeight int
}

// Model is the dashboard's Bubble Tea model. All panel mutation happens
// inside Update; background commands only ever report back via messages.
type Model struct {
	cfg   *config.Config
	run   *runner.Runner
	store *Store
	focus *Focus
	sched *Scheduler
	keys  KeyMap

	// activeTab indexes into each panel's Tabs().
	activeTab [PanelCount]int

	width  int
	height int
	ready  bool

	showHelp    bool
	confirming  bool
	pendingKill []string
	batchActive bool
	lastG       time.Time
	quitting    bool

	ctx     context.Context
	cancel  context.CancelFunc
	reloads <-chan *config.Config
}

// New builds the dashboard from configuration.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	client := opts.Client
	if client == nil {
		client = verdi.NewClient(cfg.VerdiPath, cfg.VerdiProfile)
	}
	ctx, cancel := context.WithCancel(context.Background())
	timeout := time.Duration(cfg.CommandTimeoutSeconds * float64(time.Second))
	m := Model{
		cfg:     cfg,
		run:     runner.New(client, timeout),
		store:   NewStore(),
		focus:   NewFocus(PanelID(cfg.InitialFocusPanel)),
		sched:   NewScheduler(cfg.AutoRefreshInterval, cfg.AutoRefreshOnStart),
		keys:    DefaultKeyMap(),
		ctx:     ctx,
		cancel:  cancel,
		reloads: opts.ConfigReloads,
	}
	if opts.InitialWidth > 0 && opts.InitialHeight > 0 {
		m.width = opts.InitialWidth
		m.height = opts.InitialHeight
		m.ready = true
	}
	return m
}

// Store exposes panel state for tests.
func (m Model) Store() *Store {
	return m.store
}

// Init loads every panel once and arms the refresh loop.
func (m Model) Init() tea.Cmd {
	cmds := m.refreshAll()
	if cmd := m.sched.TickCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := waitForReload(m.reloads); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update is the single state-transition point.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = m.width > 0 && m.height > 0
		m.ensureAllVisible()
		return m, nil

	case RefreshTickMsg:
		if !m.sched.Active() || msg.Epoch != m.sched.Epoch() {
			// Paused, or a leftover tick from a chain that a pause,
			// resume, or config reload has since replaced. Re-arming
			// it would stack a second chain on top of the live one.
			return m, nil
		}
		var cmds []tea.Cmd
		for _, p := range m.sched.Due(m.focus.Current()) {
			if cmd := m.dispatchPanel(p); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, m.sched.TickCmd())
		return m, tea.Batch(cmds...)

	case runner.CompletionMsg:
		cmd := m.handleCompletion(msg)
		return m, cmd

	case runner.BatchDoneMsg:
		cmd := m.handleBatchDone(msg.Summary)
		return m, cmd

	case ConfigReloadedMsg:
		cmd := m.applyConfig(msg.Config)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() != "g" {
		m.lastG = time.Time{}
	}

	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			m.confirming = false
			return m.startKill()
		case "n", "N", "esc", "q":
			m.confirming = false
			m.pendingKill = nil
			m.store.AppendLog(PanelResults, "kill cancelled")
		}
		return nil
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return nil
	}

	focused := m.focus.Current()
	sel := m.store.Selection(focused)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		for p := PanelID(0); p < PanelCount; p++ {
			m.store.BumpGeneration(p)
		}
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.NextPanel):
		m.focus.Next()
		m.ensureAllVisible()

	case key.Matches(msg, m.keys.PrevPanel):
		m.focus.Prev()
		m.ensureAllVisible()

	case key.Matches(msg, m.keys.NextTab):
		return m.cycleTab(focused, 1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.cycleTab(focused, -1)

	case key.Matches(msg, m.keys.Down):
		m.store.MoveCursor(focused, 1)
		m.ensureVisible(focused)

	case key.Matches(msg, m.keys.Up):
		m.store.MoveCursor(focused, -1)
		m.ensureVisible(focused)

	case key.Matches(msg, m.keys.Right):
		m.store.ScrollX(focused, 4)

	case key.Matches(msg, m.keys.Left):
		m.store.ScrollX(focused, -4)

	case key.Matches(msg, m.keys.Bottom):
		m.store.CursorEnd(focused)
		m.ensureVisible(focused)

	case key.Matches(msg, m.keys.Top):
		if !m.lastG.IsZero() && time.Since(m.lastG) < doubleKeyWindow {
			m.lastG = time.Time{}
			m.store.CursorHome(focused)
			m.ensureVisible(focused)
		} else {
			m.lastG = time.Now()
		}

	case key.Matches(msg, m.keys.ToggleSel):
		if focused.Selectable() {
			if row, ok := m.store.CursorRow(focused); ok {
				sel.Toggle(row.ID)
			}
		}

	case key.Matches(msg, m.keys.ExtendSel):
		if focused.Selectable() {
			if row, ok := m.store.CursorRow(focused); ok {
				sel.ExtendRangeTo(row.ID, m.store.Rows(focused))
			}
		}

	case key.Matches(msg, m.keys.SelectAll):
		if focused.Selectable() {
			sel.SelectAll(m.store.Rows(focused))
		}

	case key.Matches(msg, m.keys.ClearSel):
		sel.Clear()

	case key.Matches(msg, m.keys.Kill):
		if focused == PanelProcesses && !sel.Empty() && !m.batchActive {
			m.pendingKill = sel.OrderedIDs(m.store.Rows(focused))
			m.confirming = true
		}

	case key.Matches(msg, m.keys.Refresh):
		return m.dispatchPanel(focused)

	case key.Matches(msg, m.keys.TogglePoll):
		if m.sched.Interval() <= 0 {
			m.store.AppendLog(PanelResults, "auto-refresh disabled in config")
			return nil
		}
		if m.sched.Toggle() {
			m.store.AppendLog(PanelResults, "auto-refresh resumed")
			return m.sched.TickCmd()
		}
		m.store.AppendLog(PanelResults, "auto-refresh paused")

	default:
		if p, ok := digitPanel(msg.String()); ok {
			m.focus.Set(p)
			m.ensureAllVisible()
		}
	}
	return nil
}

// cycleTab moves the panel to its next or previous tab and reloads it.
// Bumping the generation makes any in-flight result for the old tab
// land dead on arrival.
func (m *Model) cycleTab(p PanelID, delta int) tea.Cmd {
	tabs := p.Tabs()
	if len(tabs) < 2 {
		return nil
	}
	n := len(tabs)
	m.activeTab[p] = (m.activeTab[p] + delta + n) % n
	m.store.BumpGeneration(p)
	m.store.SetContent(p, Content{})
	return m.dispatchPanel(p)
}

// activeQuery returns the query of the panel's current tab.
func (m *Model) activeQuery(p PanelID) (verdi.Query, bool) {
	tabs := p.Tabs()
	if len(tabs) == 0 {
		return verdi.Query{}, false
	}
	i := m.activeTab[p]
	if i < 0 || i >= len(tabs) {
		i = 0
	}
	return tabs[i], true
}

// dispatchPanel issues the query of the panel's active tab. The sequence
// number is taken synchronously inside Dispatch, so the ordering of
// calls here is the ordering of result precedence.
func (m *Model) dispatchPanel(p PanelID) tea.Cmd {
	q, ok := m.activeQuery(p)
	if !ok {
		return nil
	}
	m.sched.MarkInFlight(p)
	return m.run.Dispatch(m.ctx, int(p), m.store.Generation(p), q)
}

// refreshAll dispatches every query panel, the focused one first so its
// sequence number wins any same-instant race.
func (m *Model) refreshAll() []tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.sched.Due(m.focus.Current()) {
		if cmd := m.dispatchPanel(p); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *Model) handleCompletion(msg runner.CompletionMsg) tea.Cmd {
	p := PanelID(msg.Panel)
	if p < 0 || p >= PanelCount {
		return nil
	}
	m.sched.Done(p)
	if msg.Gen != m.store.Generation(p) {
		// The panel was torn down and rebuilt since dispatch.
		return nil
	}
	if msg.Err != nil {
		friendly := friendlyError(msg.Query, msg.Err)
		if m.store.ApplyError(p, msg.Seq, friendly) && p != PanelResults {
			m.store.AppendLog(PanelResults, fmt.Sprintf("%s failed: %s", msg.Query.Name, firstLogLine(friendly)))
		}
		return nil
	}
	if s := strings.TrimSpace(msg.Result.Stderr); s != "" && !verdi.IgnorableStderr(s) {
		m.store.AppendLog(PanelResults, fmt.Sprintf("%s: %s", msg.Query.Name, firstLogLine(s)))
	}
	if m.store.ApplyResult(p, msg.Seq, contentFor(msg.Query, msg.Result.Stdout)) {
		m.ensureVisible(p)
	}
	return nil
}

func (m *Model) startKill() tea.Cmd {
	ids := m.pendingKill
	m.pendingKill = nil
	if len(ids) == 0 {
		return nil
	}
	m.batchActive = true
	m.store.AppendLog(PanelResults, fmt.Sprintf("killing %d process(es)...", len(ids)))
	return m.run.DispatchBatch(m.ctx, "kill", ids, verdi.KillArgs, m.cfg.BatchMaxInFlight)
}

func (m *Model) handleBatchDone(sum runner.BatchSummary) tea.Cmd {
	m.batchActive = false
	m.store.AppendLog(PanelResults, fmt.Sprintf(
		"%s finished: %d/%d succeeded in %s",
		sum.Action, sum.Succeeded, sum.Total, sum.Duration.Round(time.Millisecond)))
	for _, f := range sum.Failures {
		m.store.AppendLog(PanelResults, fmt.Sprintf("  %s %s failed: %s", sum.Action, f.ID, f.Reason))
	}
	// The process table is stale now; refresh it right away.
	return m.dispatchPanel(PanelProcesses)
}

func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return waitForReload(m.reloads)
	}
	m.cfg = cfg
	m.run.SetTimeout(time.Duration(cfg.CommandTimeoutSeconds * float64(time.Second)))
	m.sched.Configure(cfg.AutoRefreshInterval, cfg.AutoRefreshInterval > 0)
	theme.Configure(cfg.Theme)
	m.store.AppendLog(PanelResults, "configuration reloaded")
	cmds := []tea.Cmd{waitForReload(m.reloads)}
	if cmd := m.sched.TickCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) ensureAllVisible() {
	for p := PanelID(0); p < PanelCount; p++ {
		m.ensureVisible(p)
	}
}

func (m *Model) ensureVisible(p PanelID) {
	if !m.ready {
		return
	}
	m.store.EnsureVisible(p, m.panelBodyHeight(p))
}

// contentFor parses raw stdout according to the query's output shape.
func contentFor(q verdi.Query, stdout string) Content {
	switch q.Kind {
	case verdi.KindTable:
		return RowsFromTable(verdi.ParseTable(stdout))
	case verdi.KindBullets:
		return RowsFromTable(verdi.ParseBulletList(stdout, bulletHeader(q)))
	default:
		return Content{Text: stdout}
	}
}

func bulletHeader(q verdi.Query) string {
	switch q.Name {
	case verdi.QueryComputers.Name:
		return "Computer"
	case verdi.QueryProfiles.Name:
		return "Profile"
	default:
		return "Name"
	}
}

func friendlyError(q verdi.Query, err error) string {
	var cmdErr *verdi.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Kind == verdi.KindTimeout {
			return fmt.Sprintf("%s timed out", q.Name)
		}
		return verdi.FriendlyMessage(q.Name, cmdErr.Stderr)
	}
	return err.Error()
}

func firstLogLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func digitPanel(s string) (PanelID, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '6' {
		return 0, false
	}
	return PanelID(s[0] - '0'), true
}

func waitForReload(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}
