package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-transits/internal/aspectarian"
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/chart"
	"github.com/litescript/ls-transits/internal/state"
)

// Styles for the event list
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// kindColors tag each event kind in the list.
var kindColors = map[aspectarian.Kind]lipgloss.Color{
	aspectarian.KindAspect:  lipgloss.Color("#9D4EDD"),
	aspectarian.KindStation: lipgloss.Color("#E84A27"),
	aspectarian.KindIngress: lipgloss.Color("#3B82F6"),
}

// noFilter shows every kind.
const noFilter aspectarian.Kind = -1

// OpenChartMsg requests the chart view at an event time.
type OpenChartMsg struct {
	JD float64
}

// EventsModel is the aspectarian list view.
type EventsModel struct {
	width    int
	height   int
	cursor   int
	filter   aspectarian.Kind
	snapshot state.Snapshot
	lastErr  error
}

// NewEventsModel creates a new event list.
func NewEventsModel() EventsModel {
	return EventsModel{filter: noFilter}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new scan.
func (m EventsModel) UpdateData(snapshot state.Snapshot) EventsModel {
	m.snapshot = snapshot
	m.lastErr = snapshot.LastError
	m.cursor = clampCursor(m.cursor, len(m.visible()))
	return m
}

// SetError sets the last error for display.
func (m EventsModel) SetError(err error) EventsModel {
	m.lastErr = err
	return m
}

// visible returns the events passing the kind filter.
func (m EventsModel) visible() []aspectarian.Event {
	if m.filter == noFilter {
		return m.snapshot.Events
	}
	var out []aspectarian.Event
	for _, e := range m.snapshot.Events {
		if e.Kind == m.filter {
			out = append(out, e)
		}
	}
	return out
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// nextFilter cycles all, aspects, stations, ingresses.
func nextFilter(k aspectarian.Kind) aspectarian.Kind {
	if k == aspectarian.KindIngress {
		return noFilter
	}
	return k + 1
}

// Update handles messages.
func (m EventsModel) Update(msg tea.Msg) (EventsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(m.visible())
	page := m.maxRows()

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "pgup":
		m.cursor = clampCursor(m.cursor-page, n)
	case "pgdown":
		m.cursor = clampCursor(m.cursor+page, n)
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = clampCursor(n-1, n)
	case "f":
		m.filter = nextFilter(m.filter)
		m.cursor = 0
	case "enter":
		if e, ok := m.Selected(); ok {
			jd := e.JD
			return m, func() tea.Msg { return OpenChartMsg{JD: jd} }
		}
	}
	return m, nil
}

// Selected returns the event under the cursor.
func (m EventsModel) Selected() (aspectarian.Event, bool) {
	events := m.visible()
	if m.cursor < 0 || m.cursor >= len(events) {
		return aspectarian.Event{}, false
	}
	return events[m.cursor], true
}

func (m EventsModel) maxRows() int {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	return rows
}

// View renders the event list.
func (m EventsModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.snapshot.Scans == 0 && m.lastErr == nil {
		b.WriteString("Scanning...\n")
		return b.String()
	}

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	return b.String()
}

func (m EventsModel) renderSummary() string {
	var b strings.Builder
	w := m.snapshot.Scanned
	b.WriteString(titleStyle.Render(fmt.Sprintf("Aspectarian %s to %s",
		astro.TimeFromJulian(w.Start).Format("2006-01-02"),
		astro.TimeFromJulian(w.Stop).Format("2006-01-02"))))
	b.WriteString("\n")

	var parts []string
	for _, k := range []aspectarian.Kind{aspectarian.KindAspect, aspectarian.KindStation, aspectarian.KindIngress} {
		label := fmt.Sprintf("%d %s", m.snapshot.Counts[k], plural(k))
		style := lipgloss.NewStyle().Foreground(kindColors[k])
		if m.filter == k {
			style = style.Bold(true).Underline(true)
		}
		parts = append(parts, style.Render(label))
	}
	filter := "all"
	if m.filter != noFilter {
		filter = plural(m.filter)
	}
	b.WriteString("  " + strings.Join(parts, dimStyle.Render(" · ")))
	b.WriteString(dimStyle.Render("  [f] filter: " + filter))
	return b.String()
}

func (m EventsModel) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("%-17s %-8s %-32s %-12s", "Time (UT)", "Kind", "Event", "Position")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	events := m.visible()
	if len(events) == 0 {
		b.WriteString("  No events in window\n")
		return b.String()
	}

	maxRows := m.maxRows()
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(events) {
		endIdx = len(events)
	}

	for i := startIdx; i < endIdx; i++ {
		e := events[i]
		marker := lipgloss.NewStyle().Foreground(kindColors[e.Kind]).Render("●")
		row := fmt.Sprintf("%-17s %-8s %-32s %-12s",
			astro.TimeFromJulian(e.JD).Format("2006-01-02 15:04"),
			e.Kind,
			truncate(e.Title(), 32),
			chart.FormatLon(e.Lon),
		)
		if i == m.cursor {
			b.WriteString(marker + " " + selectedRowStyle.Render(row))
		} else {
			b.WriteString(marker + " " + rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(events) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d events", startIdx+1, endIdx, len(events)))
	}
	return b.String()
}

func plural(k aspectarian.Kind) string {
	if k == aspectarian.KindIngress {
		return "ingresses"
	}
	return k.String() + "s"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
