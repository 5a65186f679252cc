// Package state provides thread-safe state management for the viewer.
//
// The visibility worker and the UI run on different goroutines; the
// Manager sits between them, holding the latest completed visibility
// result and a short history of query timings. The UI reads consistent
// snapshots and keeps showing the previous one when no new result has
// arrived.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-stellar/internal/universe"
)

// historyLen bounds the query duration history used for the dashboard
// sparkline.
const historyLen = 60

// Snapshot is a consistent view of the latest visibility state.
type Snapshot struct {
	Result     universe.Result
	HasData    bool
	LastUpdate time.Time
	QueryCount int

	// Durations of recent queries, oldest first.
	History []time.Duration

	// Stars is the catalogue size, set once at startup.
	Stars int
}

// Manager handles shared viewer state with thread-safe access.
type Manager struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewManager creates a manager with no data yet.
func NewManager() *Manager {
	return &Manager{}
}

// SetStars records the catalogue size shown on the dashboard.
func (m *Manager) SetStars(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Stars = n
}

// Update stores a completed visibility result.
func (m *Manager) Update(res universe.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap.Result = res
	m.snap.HasData = true
	m.snap.LastUpdate = time.Now()
	m.snap.QueryCount++

	m.snap.History = append(m.snap.History, res.Duration)
	if len(m.snap.History) > historyLen {
		m.snap.History = m.snap.History[len(m.snap.History)-historyLen:]
	}
}

// Snapshot returns a copy of the current state. The history slice is
// copied so callers cannot observe later updates.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snap
	snap.History = append([]time.Duration(nil), m.snap.History...)
	return snap
}
