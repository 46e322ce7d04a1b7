// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/aspectarian"
	"github.com/litescript/ls-transits/internal/chart"
	"github.com/litescript/ls-transits/internal/state"
	"github.com/litescript/ls-transits/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewEvents ViewMode = iota
	ViewChart
	ViewLog
)

const viewCount = 3

// Scanner produces the events of a window of Julian days.
type Scanner interface {
	Scan(ctx context.Context, start, stop float64) ([]aspectarian.Event, error)
}

// ChartFunc computes the chart at jd with the given orbs.
type ChartFunc func(jd float64, orbs *aspect.Table) (*chart.Chart, error)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// ErrorMsg signals an error outside a scan.
	ErrorMsg struct {
		Error error
	}

	// scanDoneMsg carries a finished scan.
	scanDoneMsg struct {
		window state.Window
		events []aspectarian.Event
		dur    time.Duration
		err    error
	}

	// chartReadyMsg carries a computed chart.
	chartReadyMsg struct {
		jd    float64
		chart *chart.Chart
		err   error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctx     context.Context
	state   *state.Manager
	scanner Scanner
	chartFn ChartFunc

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	scanning bool
	animTick int

	// Sub-models
	events EventsModel
	chart  ChartModel

	snapshot state.Snapshot
}

// New creates a new root UI model. The first scan starts with Init.
func New(ctx context.Context, stateMgr *state.Manager, scanner Scanner, chartFn ChartFunc) Model {
	return Model{
		ctx:      ctx,
		state:    stateMgr,
		scanner:  scanner,
		chartFn:  chartFn,
		viewMode: ViewEvents,
		scanning: true,
		events:   NewEventsModel(),
		chart:    NewChartModel(),
		snapshot: stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.scanCmd(m.state.Window()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "e":
			m.viewMode = ViewEvents
		case "2", "c":
			m.viewMode = ViewChart
		case "3", "l":
			m.viewMode = ViewLog

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "n", "p":
			if m.viewMode == ViewEvents && !m.scanning {
				w := m.state.Window().Shift(msg.String() == "n")
				m.state.SetWindow(w)
				m.scanning = true
				cmds = append(cmds, m.scanCmd(w))
			}

		case "r":
			if !m.scanning {
				m.scanning = true
				cmds = append(cmds, m.scanCmd(m.state.Window()))
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.events = m.events.SetSize(msg.Width, contentHeight)
		m.chart = m.chart.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case scanDoneMsg:
		m.scanning = false
		m.state.Update(msg.window, msg.events, msg.dur, msg.err)
		m.snapshot = m.state.Snapshot()
		m.events = m.events.UpdateData(m.snapshot)

	case OpenChartMsg:
		m.viewMode = ViewChart
		m.chart = m.chart.SetLoading(msg.JD)
		cmds = append(cmds, m.chartCmd(msg.JD))

	case chartReadyMsg:
		m.chart = m.chart.SetChart(msg.jd, msg.chart, msg.err)

	case OrbsReloadedMsg:
		m.state.SetOrbs(msg.Table, msg.Err)
		m.snapshot = m.state.Snapshot()
		if jd, ok := m.chart.JD(); ok && msg.Err == nil {
			m.chart = m.chart.SetLoading(jd)
			cmds = append(cmds, m.chartCmd(jd))
		}

	case ErrorMsg:
		m.events = m.events.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	case ViewChart:
		m.chart, cmd = m.chart.Update(msg)
	}
	return cmd
}

func (m Model) scanCmd(w state.Window) tea.Cmd {
	ctx, scanner := m.ctx, m.scanner
	return func() tea.Msg {
		start := time.Now()
		events, err := scanner.Scan(ctx, w.Start, w.Stop)
		return scanDoneMsg{window: w, events: events, dur: time.Since(start), err: err}
	}
}

func (m Model) chartCmd(jd float64) tea.Cmd {
	fn, orbs := m.chartFn, m.state.Orbs()
	return func() tea.Msg {
		c, err := fn(jd, orbs)
		return chartReadyMsg{jd: jd, chart: c, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewEvents:
		content = m.events.View()
	case ViewChart:
		content = m.chart.View()
	case ViewLog:
		content = m.renderLog()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ████████╗██████╗  █████╗ ███╗   ██╗███████╗██╗████████╗███████╗`,
		`  ██║     ██╔════╝      ╚══██╔══╝██╔══██╗██╔══██╗████╗  ██║██╔════╝██║╚══██╔══╝██╔════╝`,
		`  ██║     ███████╗█████╗   ██║   ██████╔╝███████║██╔██╗ ██║███████╗██║   ██║   ███████╗`,
		`  ██║     ╚════██║╚════╝   ██║   ██╔══██╗██╔══██║██║╚██╗██║╚════██║██║   ██║   ╚════██║`,
		`  ███████╗███████║         ██║   ██║  ██║██║  ██║██║ ╚████║███████║██║   ██║   ███████║`,
		`  ╚══════╝╚══════╝         ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝   ╚═╝   ╚══════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Transits · Stations · Ingresses | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient,
// blue to purple to magenta to pink, fading toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64

	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Events", "[2] Chart", "[3] Log"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderLog() string {
	notices := m.snapshot.Notices
	if len(notices) == 0 {
		return "  No notices yet\n"
	}

	var b strings.Builder
	rows := m.height - 15
	if rows < 5 {
		rows = 5
	}
	if len(notices) > rows {
		notices = notices[len(notices)-rows:]
	}
	for i := len(notices) - 1; i >= 0; i-- {
		n := notices[i]
		line := fmt.Sprintf("  %s  %-14s %s", n.Timestamp.Format("15:04:05"), n.Type, n.Message)
		switch n.Type {
		case state.NoticeScanFailed, state.NoticeOrbsInvalid:
			b.WriteString(errorStyle.Render(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.scanning:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Scanning window...")
	case m.snapshot.LastError != nil:
		status = errStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	default:
		status = dimStyle.Render(fmt.Sprintf("%d events · scanned in %s",
			len(m.snapshot.Events), m.snapshot.ScanDuration.Round(time.Millisecond)))
	}

	var help string
	switch m.viewMode {
	case ViewChart:
		help = dimStyle.Render("↑↓: scroll | tab: switch view | q: quit")
	case ViewLog:
		help = dimStyle.Render("tab: switch view | q: quit")
	default:
		help = dimStyle.Render("↑↓: navigate | enter: chart | f: filter | n/p: next/prev window | r: rescan")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
