package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/tracker"
	listview "github.com/rshade/ecotrack/internal/tui/list"
)

// Tab is one page of the dashboard.
type Tab int

// Dashboard tabs, in display order.
const (
	TabTracker Tab = iota
	TabActivities
	TabGreenIT
	TabLedger
	TabRecommendations

	numTabs = 5
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabTracker:
		return "Tracker"
	case TabActivities:
		return "Activities"
	case TabGreenIT:
		return "Green IT"
	case TabLedger:
		return "Ledger"
	case TabRecommendations:
		return "Recommendations"
	default:
		return "?"
	}
}

// chromeHeight is the rows taken by the tab bar, box border and help line.
const chromeHeight = 8

// DashboardData is everything the dashboard shows. It is computed once by the
// caller; the dashboard never touches the state document.
type DashboardData struct {
	Tracker     engine.TrackerSnapshot
	GreenIT     engine.GreenITSnapshot
	Activities  []tracker.Activity
	Equivalency string
}

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Up   key.Binding
	Down key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Up, k.Down}, {k.Help, k.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Next: key.NewBinding(key.WithKeys(keyTab, keyRight, keyVimRt), key.WithHelp("tab/→", "next tab")),
		Prev: key.NewBinding(key.WithKeys(keyBack, keyLeft, keyVimLft), key.WithHelp("shift+tab/←", "previous tab")),
		Up:   key.NewBinding(key.WithKeys(keyUp, keyVimUp), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys(keyDown, keyVimDn), key.WithHelp("↓/j", "down")),
		Help: key.NewBinding(key.WithKeys(keyHelp), key.WithHelp("?", "toggle help")),
		Quit: key.NewBinding(key.WithKeys(keyQuit, keyCtrlC), key.WithHelp("q", "quit")),
	}
}

// DashboardModel is the Bubble Tea model of the interactive dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	state ViewState
	tab   Tab
	data  DashboardData
	nf    *greenops.Formatter
	ctx   context.Context

	width  int
	height int

	activities *listview.Model[tracker.Activity]
	ledger     table.Model
	keys       keyMap
	help       help.Model
}

// NewDashboardModel creates the dashboard over data, formatting numbers with nf.
func NewDashboardModel(ctx context.Context, data DashboardData, nf *greenops.Formatter) DashboardModel {
	m := DashboardModel{
		state:  ViewStateBrowse,
		data:   data,
		nf:     nf,
		ctx:    ctx,
		width:  defaultWidth,
		height: defaultHeight,
		keys:   defaultKeys(),
		help:   help.New(),
	}
	m.activities = listview.New(data.Activities, m.bodyHeight(), m.renderActivity)
	m.ledger = m.buildLedgerTable()
	return m
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.activities.SetHeight(m.bodyHeight())
		m.ledger.SetHeight(m.bodyHeight())
		m.ledger.SetWidth(m.width - borderPadding)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		logging.FromContext(m.ctx).Debug().
			Str("component", "tui").
			Str("tab", m.tab.String()).
			Msg("dashboard closed")
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.state == ViewStateHelp {
			m.state = ViewStateBrowse
		} else {
			m.state = ViewStateHelp
		}
		m.help.ShowAll = m.state == ViewStateHelp
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.tab = (m.tab + 1) % numTabs
		m.syncFocus()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.tab = (m.tab + numTabs - 1) % numTabs
		m.syncFocus()
		return m, nil
	}

	switch m.tab {
	case TabActivities:
		m.activities.Update(msg)
	case TabLedger:
		var cmd tea.Cmd
		m.ledger, cmd = m.ledger.Update(msg)
		return m, cmd
	case TabTracker, TabGreenIT, TabRecommendations:
	}
	return m, nil
}

// syncFocus focuses the ledger table only while its tab is shown.
func (m *DashboardModel) syncFocus() {
	if m.tab == TabLedger {
		m.ledger.Focus()
	} else {
		m.ledger.Blur()
	}
}

// Tab returns the active tab.
func (m DashboardModel) Tab() Tab {
	return m.tab
}

// State returns the view state.
func (m DashboardModel) State() ViewState {
	return m.state
}

func (m DashboardModel) bodyHeight() int {
	return max(m.height-chromeHeight, 3)
}

func (m DashboardModel) buildLedgerTable() table.Model {
	columns := []table.Column{
		{Title: "Transaction", Width: 36},
		{Title: "Type", Width: 12},
		{Title: "Energy kWh", Width: 12},
		{Title: "Carbon kg", Width: 12},
		{Title: "Recorded", Width: 17},
	}

	rows := make([]table.Row, 0, len(m.data.GreenIT.Transactions))
	for _, tx := range m.data.GreenIT.Transactions {
		rows = append(rows, table.Row{
			tx.ID,
			string(tx.Type),
			m.nf.Float(tx.Data.Energy, 0),
			m.nf.Float(tx.Data.Carbon, 0),
			tx.Timestamp.Local().Format(time.DateTime[:16]),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(m.bodyHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func (m DashboardModel) renderActivity(a tracker.Activity, selected bool) string {
	line := fmt.Sprintf("%-10s  %-12s %-28s %8s %-5s %8s kg",
		a.Date, a.Type, truncate(a.Description, 28),
		m.nf.Float(a.Value, 1), a.Unit, m.nf.Float(a.CarbonFootprint, 2))
	if a.IsPlaceholder {
		line += " " + SubtleStyle.Render("sample")
	}
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
