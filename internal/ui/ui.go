// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellar/internal/state"
	"github.com/litescript/ls-stellar/internal/universe"
	"github.com/litescript/ls-stellar/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewStarfield ViewMode = iota
	ViewDashboard
)

// Msg types for Bubble Tea.
type (
	// TickMsg triggers periodic viewpoint requests.
	TickMsg time.Time

	// DataUpdateMsg signals a new visibility result is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}
)

// RequestFunc submits a viewpoint to the visibility worker. It must not
// block; the worker mailbox overwrites stale requests.
type RequestFunc func(universe.Viewpoint)

// tickInterval is how often the UI re-submits its viewpoint. The worker
// coalesces, so a stale request costs nothing.
const tickInterval = 100 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the root Bubble Tea model.
type Model struct {
	state   *state.Manager
	request RequestFunc

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	starfield StarfieldModel
	dashboard DashboardModel

	snapshot state.Snapshot
}

// New creates the root UI model.
func New(stateMgr *state.Manager, request RequestFunc) Model {
	return Model{
		state:     stateMgr,
		request:   request,
		viewMode:  ViewStarfield,
		starfield: NewStarfieldModel(),
		dashboard: NewDashboardModel(),
	}
}

// Init implements the Bubble Tea model interface.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update implements the Bubble Tea model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.starfield = m.starfield.SetSize(msg.Width, msg.Height-2)
		m.dashboard = m.dashboard.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.viewMode == ViewStarfield {
				m.viewMode = ViewDashboard
			} else {
				m.viewMode = ViewStarfield
			}
			return m, nil
		}
		m.starfield = m.starfield.HandleKey(msg)
		return m, nil

	case TickMsg:
		if m.request != nil {
			m.request(m.starfield.Viewpoint())
		}
		return m, tick()

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.starfield = m.starfield.SetSnapshot(msg.Snapshot)
		m.dashboard = m.dashboard.SetSnapshot(msg.Snapshot)
		return m, nil
	}

	return m, nil
}

// View implements the Bubble Tea model interface.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.headerView()

	var body string
	switch m.viewMode {
	case ViewDashboard:
		body = m.dashboard.View()
	default:
		body = m.starfield.View()
	}

	return header + "\n" + body + "\n" + m.helpView()
}

func (m Model) headerView() string {
	title := titleStyle.Render("ls-stellar " + version.Version)

	status := "no data yet"
	if m.snapshot.HasData {
		status = fmt.Sprintf("%d lights / %d batches / %.1fms",
			m.snapshot.Result.Bodies+m.snapshot.Result.Impostors,
			len(m.snapshot.Result.Batches),
			float64(m.snapshot.Result.Duration.Microseconds())/1000)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", statusStyle.Render(status))
}

func (m Model) helpView() string {
	return helpStyle.Render("arrows: look  w/s: move  </>: speed  +/-: fov  tab: stats  q: quit")
}
