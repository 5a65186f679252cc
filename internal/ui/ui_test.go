package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-stellar/internal/state"
	"github.com/litescript/ls-stellar/internal/universe"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelViewBeforeResize(t *testing.T) {
	m := New(state.NewManager(), nil)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View before resize = %q", got)
	}
}

func TestModelResize(t *testing.T) {
	m := New(state.NewManager(), nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	if !m.ready {
		t.Error("model should be ready after resize")
	}
	if out := m.View(); !strings.Contains(out, "ls-stellar") {
		t.Errorf("header missing from view:\n%s", out)
	}
}

func TestModelTabTogglesView(t *testing.T) {
	m := New(state.NewManager(), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.viewMode != ViewDashboard {
		t.Errorf("viewMode = %v, want dashboard", m.viewMode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.viewMode != ViewStarfield {
		t.Errorf("viewMode = %v, want starfield", m.viewMode)
	}
}

func TestModelQuit(t *testing.T) {
	m := New(state.NewManager(), nil)

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelTickRequestsViewpoint(t *testing.T) {
	var requested []universe.Viewpoint
	m := New(state.NewManager(), func(vp universe.Viewpoint) {
		requested = append(requested, vp)
	})

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	if len(requested) != 1 {
		t.Fatalf("requests = %d, want 1", len(requested))
	}
	if requested[0] != m.starfield.Viewpoint() {
		t.Errorf("requested %v, want current camera viewpoint", requested[0])
	}
	if cmd == nil {
		t.Error("tick should reschedule itself")
	}
}

func TestModelDataUpdate(t *testing.T) {
	m := New(state.NewManager(), nil)

	snap := state.Snapshot{HasData: true, Result: universe.Result{Bodies: 9}}
	next, _ := m.Update(DataUpdateMsg{Snapshot: snap})
	m = next.(Model)

	if m.snapshot.Result.Bodies != 9 {
		t.Errorf("snapshot bodies = %d, want 9", m.snapshot.Result.Bodies)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	if out := m.View(); !strings.Contains(out, "9 lights") {
		t.Errorf("header should show light count:\n%s", out)
	}
}
