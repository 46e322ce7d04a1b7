package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/chart"
)

var (
	retroStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)
	applyingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	separateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// ChartModel shows the sky at one instant.
type ChartModel struct {
	width   int
	height  int
	offset  int
	jd      float64
	loading bool
	chart   *chart.Chart
	err     error
}

// NewChartModel creates an empty chart view.
func NewChartModel() ChartModel {
	return ChartModel{}
}

// SetSize updates the viewport size.
func (m ChartModel) SetSize(width, height int) ChartModel {
	m.width = width
	m.height = height
	return m
}

// SetLoading marks a chart at jd as being computed.
func (m ChartModel) SetLoading(jd float64) ChartModel {
	m.jd = jd
	m.loading = true
	m.offset = 0
	return m
}

// SetChart installs a computed chart. Results for a superseded time are
// dropped.
func (m ChartModel) SetChart(jd float64, c *chart.Chart, err error) ChartModel {
	if jd != m.jd {
		return m
	}
	m.loading = false
	m.chart = c
	m.err = err
	return m
}

// JD returns the time shown, and whether there is one.
func (m ChartModel) JD() (float64, bool) {
	return m.jd, m.loading || m.chart != nil || m.err != nil
}

// Update handles messages.
func (m ChartModel) Update(msg tea.Msg) (ChartModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			m.offset++
		case "home":
			m.offset = 0
		}
	}
	return m, nil
}

// View renders the chart.
func (m ChartModel) View() string {
	if _, ok := m.JD(); !ok {
		return "Select an event and press enter to open its chart.\n"
	}
	if m.loading {
		return fmt.Sprintf("Computing chart for %s...\n", astro.TimeFromJulian(m.jd).Format("2006-01-02 15:04:05"))
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	lines := m.lines()
	rows := m.height - 2
	if rows < 5 {
		rows = 5
	}
	offset := m.offset
	if offset > len(lines)-rows {
		offset = len(lines) - rows
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + rows
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n") + "\n"
}

func (m ChartModel) lines() []string {
	c := m.chart
	var out []string

	out = append(out, titleStyle.Render(fmt.Sprintf("Chart %s UT  (JD %.5f)",
		astro.TimeFromJulian(c.JD).Format("2006-01-02 15:04:05"), c.JD)))
	out = append(out, headerStyle.Render(fmt.Sprintf("%-10s %-11s %2s %9s %-17s %-5s %5s %5s",
		"Body", "Longitude", "", "Speed", "Nakshatra", "Nav", "Ucha", "Res")))

	for _, p := range c.Planets {
		retro := "  "
		if p.Retro() {
			retro = retroStyle.Render(" R")
		}
		ucha, res := "", ""
		if p.Classical {
			ucha = fmt.Sprintf("%5.1f", p.Exaltation)
			if c.Houses != nil {
				res = fmt.Sprintf("%5.2f", p.Residential)
			}
		}
		row := fmt.Sprintf("%-10s %-11s", truncate(p.Body.String(), 10), chart.FormatLon(p.Pos.Lon()))
		rest := fmt.Sprintf(" %9.4f %-17s %-5s %5s %5s",
			p.Pos.Speed(),
			fmt.Sprintf("%s %d", truncate(p.Nakshatra.String(), 14), p.Pada+1),
			p.Navamsa.String()[:3],
			ucha, res,
		)
		out = append(out, rowStyle.Render(row)+retro+rowStyle.Render(rest))
	}

	if c.Houses != nil {
		out = append(out, "")
		out = append(out, titleStyle.Render(fmt.Sprintf("Houses (%s)", c.Houses.System)))
		var b strings.Builder
		for i, cusp := range c.Houses.Cusps {
			b.WriteString(fmt.Sprintf("  %2d %s", i+1, chart.FormatLon(cusp)))
			if i%4 == 3 {
				out = append(out, b.String())
				b.Reset()
			}
		}
	}

	out = append(out, "")
	out = append(out, titleStyle.Render("Aspects"))
	if len(c.Aspects) == 0 {
		out = append(out, "  No aspects in orb")
	}
	for _, a := range c.Aspects {
		style := separateStyle
		if a.Applic == aspect.Applying {
			style = applyingStyle
		}
		out = append(out, fmt.Sprintf("  %-10s %-14s %-10s %6.2f° %s",
			truncate(a.A.String(), 10),
			truncate(aspect.Name(a.Aspect), 14),
			truncate(a.B.String(), 10),
			a.Diff,
			style.Render(a.Applic.String()),
		))
	}
	return out
}
