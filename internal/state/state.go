// Package state provides thread-safe state shared between the scan loop
// and the terminal UI.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/aspectarian"
)

// NoticeType is the kind of a status notice.
type NoticeType string

const (
	NoticeScanned      NoticeType = "SCANNED"
	NoticeScanFailed   NoticeType = "SCAN_FAILED"
	NoticeOrbsReloaded NoticeType = "ORBS_RELOADED"
	NoticeOrbsInvalid  NoticeType = "ORBS_INVALID"
)

// Notice is a status change worth showing in the UI log.
type Notice struct {
	Type      NoticeType
	Timestamp time.Time
	Message   string
}

// Window is a span of Julian days (UT).
type Window struct {
	Start, Stop float64
}

// Days returns the window length.
func (w Window) Days() float64 { return w.Stop - w.Start }

// Shift moves the window by its own length, forward or back.
func (w Window) Shift(forward bool) Window {
	d := w.Days()
	if !forward {
		d = -d
	}
	return Window{Start: w.Start + d, Stop: w.Stop + d}
}

// Manager holds the latest scan and orb table.
type Manager struct {
	mu sync.RWMutex

	// Latest scan
	window       Window
	events       []aspectarian.Event
	scanned      Window
	lastScan     time.Time
	lastError    error
	scanDuration time.Duration
	scans        int

	orbs *aspect.Table

	// Notice log (ring buffer)
	notices       []Notice
	maxNotices    int
	noticeWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxNotices int
	Window     Window
	Orbs       *aspect.Table // nil uses aspect.DefaultTable
}

// DefaultConfig returns a 30-day window starting at start.
func DefaultConfig(start float64) Config {
	return Config{
		MaxNotices: 50,
		Window:     Window{Start: start, Stop: start + 30},
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxNotices := cfg.MaxNotices
	if maxNotices <= 0 {
		maxNotices = 50
	}
	orbs := cfg.Orbs
	if orbs == nil {
		orbs = aspect.DefaultTable()
	}
	return &Manager{
		window:     cfg.Window,
		orbs:       orbs,
		maxNotices: maxNotices,
		notices:    make([]Notice, 0, maxNotices),
	}
}

// Update records the result of scanning w. On error the previous events
// are kept.
func (m *Manager) Update(w Window, events []aspectarian.Event, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastScan = time.Now()
	m.lastError = err
	m.scanDuration = d

	if err != nil {
		m.addNotice(NoticeScanFailed, err.Error())
		return
	}
	m.events = events
	m.scanned = w
	m.scans++
	m.addNotice(NoticeScanned, fmt.Sprintf("%d events in %s", len(events), d.Round(time.Millisecond)))
}

// SetOrbs installs a reloaded orb table. On error the current table stays.
func (m *Manager) SetOrbs(t *aspect.Table, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.addNotice(NoticeOrbsInvalid, err.Error())
		return
	}
	m.orbs = t
	m.addNotice(NoticeOrbsReloaded, fmt.Sprintf("%d aspects", len(t.Aspects)))
}

// Orbs returns the current orb table.
func (m *Manager) Orbs() *aspect.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orbs
}

// Window returns the window to scan next.
func (m *Manager) Window() Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.window
}

// SetWindow sets the window to scan next.
func (m *Manager) SetWindow(w Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.window = w
}

// addNotice adds a notice to the ring buffer.
func (m *Manager) addNotice(t NoticeType, msg string) {
	n := Notice{Type: t, Timestamp: time.Now(), Message: msg}
	if len(m.notices) < m.maxNotices {
		m.notices = append(m.notices, n)
	} else {
		m.notices[m.noticeWriteAt] = n
		m.noticeWriteAt = (m.noticeWriteAt + 1) % m.maxNotices
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Window       Window // window to scan next
	Scanned      Window // window the events cover
	Events       []aspectarian.Event
	Counts       map[aspectarian.Kind]int
	LastScan     time.Time
	LastError    error
	ScanDuration time.Duration
	Scans        int
	Orbs         *aspect.Table
	Notices      []Notice
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]aspectarian.Event, len(m.events))
	copy(events, m.events)

	counts := make(map[aspectarian.Kind]int)
	for _, e := range events {
		counts[e.Kind]++
	}

	return Snapshot{
		Window:       m.window,
		Scanned:      m.scanned,
		Events:       events,
		Counts:       counts,
		LastScan:     m.lastScan,
		LastError:    m.lastError,
		ScanDuration: m.scanDuration,
		Scans:        m.scans,
		Orbs:         m.orbs,
		Notices:      m.getNoticesOrdered(),
	}
}

// getNoticesOrdered returns notices in chronological order.
func (m *Manager) getNoticesOrdered() []Notice {
	if len(m.notices) == 0 {
		return nil
	}

	if len(m.notices) < m.maxNotices {
		result := make([]Notice, len(m.notices))
		copy(result, m.notices)
		return result
	}

	result := make([]Notice, m.maxNotices)
	for i := 0; i < m.maxNotices; i++ {
		result[i] = m.notices[(m.noticeWriteAt+i)%m.maxNotices]
	}
	return result
}

// RecentNotices returns the last n notices.
func (m *Manager) RecentNotices(n int) []Notice {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getNoticesOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasData returns true once a scan has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scans > 0
}
