package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellar/internal/state"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sparkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("48"))
)

// sparkRunes are the block characters used for the duration sparkline.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// DashboardModel is the query statistics view.
type DashboardModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewDashboardModel creates an empty dashboard.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// SetSize updates the view dimensions.
func (m DashboardModel) SetSize(w, h int) DashboardModel {
	m.width = w
	m.height = h
	return m
}

// SetSnapshot updates the displayed data.
func (m DashboardModel) SetSnapshot(snap state.Snapshot) DashboardModel {
	m.snapshot = snap
	return m
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	snap := m.snapshot

	var sb strings.Builder
	line := func(label, format string, args ...any) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(fmt.Sprintf(format, args...)))
		sb.WriteByte('\n')
	}

	line("Catalogue stars", "%d", snap.Stars)
	line("Queries", "%d", snap.QueryCount)

	if !snap.HasData {
		sb.WriteString(valueStyle.Render("\nWaiting for the first visibility pass..."))
		return sb.String()
	}

	res := snap.Result
	x, y, z := res.Viewpoint.Position.Float64s()

	line("Viewpoint", "(%.3g, %.3g, %.3g) m", x, y, z)
	line("Fov factor", "%g", res.Viewpoint.FovFactor)
	line("Batches", "%d", len(res.Batches))
	line("Real bodies", "%d", res.Bodies)
	line("Impostors", "%d", res.Impostors)
	line("Paged regions", "%d", res.GeneratedRegions)
	line("Last query", "%v", res.Duration.Round(10*time.Microsecond))

	sb.WriteString(labelStyle.Render("Query history"))
	sb.WriteString(sparkStyle.Render(sparkline(snap.History)))
	sb.WriteByte('\n')

	return sb.String()
}

// sparkline renders durations as a row of block characters scaled to the
// slowest query in the window.
func sparkline(history []time.Duration) string {
	if len(history) == 0 {
		return ""
	}
	max := history[0]
	for _, d := range history {
		if d > max {
			max = d
		}
	}
	if max == 0 {
		max = 1
	}

	runes := make([]rune, len(history))
	for i, d := range history {
		tier := int(float64(d) / float64(max) * float64(len(sparkRunes)-1))
		runes[i] = sparkRunes[tier]
	}
	return string(runes)
}
