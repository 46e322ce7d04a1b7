package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/astro"
)

// FormatLon renders a longitude as degrees and minutes within its sign,
// e.g. "15°23' Tau".
func FormatLon(lon float64) string {
	lon = astro.NormalizeDeg(lon)
	sign := int(lon / 30)
	within := lon - float64(sign)*30
	deg := math.Floor(within)
	mins := math.Floor((within - deg) * 60)
	return fmt.Sprintf("%2.0f°%02.0f' %s", deg, mins, signAbbrev[sign%12])
}

var signAbbrev = [12]string{
	"Ari", "Tau", "Gem", "Can", "Leo", "Vir",
	"Lib", "Sco", "Sag", "Cap", "Aqu", "Pis",
}

// Export is the JSON-serializable representation of a chart.
type Export struct {
	JD      float64        `json:"jd"`
	Time    time.Time      `json:"time"`
	Planets []PlanetExport `json:"planets"`
	Aspects []AspectExport `json:"aspects"`
	Houses  *HousesExport  `json:"houses,omitempty"`
}

// PlanetExport is a JSON-friendly planet.
type PlanetExport struct {
	Body        string   `json:"body"`
	Lon         float64  `json:"lon"`
	Lat         float64  `json:"lat"`
	Speed       float64  `json:"speed"`
	Retro       bool     `json:"retro"`
	Sign        string   `json:"sign"`
	Nakshatra   string   `json:"nakshatra"`
	Pada        int      `json:"pada"`
	Navamsa     string   `json:"navamsa"`
	Exaltation  *float64 `json:"exaltation,omitempty"`
	Residential *float64 `json:"residential,omitempty"`
	Bhava       int      `json:"bhava,omitempty"`
}

// AspectExport is a JSON-friendly aspect.
type AspectExport struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Aspect string  `json:"aspect"`
	Angle  float64 `json:"angle"`
	Orb    float64 `json:"orb"`
	Applic string  `json:"applic"`
	Factor float64 `json:"factor"`
}

// HousesExport is a JSON-friendly house frame.
type HousesExport struct {
	System string    `json:"system"`
	Asc    float64   `json:"asc"`
	MC     float64   `json:"mc"`
	Cusps  []float64 `json:"cusps"`
	Bhavas []float64 `json:"bhavas"`
}

// ToExport converts c to its exportable form.
func (c *Chart) ToExport() *Export {
	e := &Export{JD: c.JD, Time: astro.TimeFromJulian(c.JD)}
	for _, p := range c.Planets {
		pe := PlanetExport{
			Body:      p.Body.String(),
			Lon:       p.Pos.Lon(),
			Lat:       p.Pos.Lat(),
			Speed:     p.Pos.Speed(),
			Retro:     p.Retro(),
			Sign:      p.Sign.String(),
			Nakshatra: p.Nakshatra.String(),
			Pada:      p.Pada + 1,
			Navamsa:   p.Navamsa.String(),
			Bhava:     p.Bhava,
		}
		if p.Classical {
			ex := p.Exaltation
			pe.Exaltation = &ex
			if c.Houses != nil {
				res := p.Residential
				pe.Residential = &res
			}
		}
		e.Planets = append(e.Planets, pe)
	}
	for _, a := range c.Aspects {
		e.Aspects = append(e.Aspects, AspectExport{
			A:      a.A.String(),
			B:      a.B.String(),
			Aspect: aspect.Name(a.Aspect),
			Angle:  a.Aspect,
			Orb:    a.Diff,
			Applic: a.Applic.String(),
			Factor: a.Factor,
		})
	}
	if c.Houses != nil {
		e.Houses = &HousesExport{
			System: c.Houses.System.String(),
			Asc:    c.Houses.Asc,
			MC:     c.Houses.MC,
			Cusps:  append([]float64(nil), c.Houses.Cusps...),
			Bhavas: append([]float64(nil), c.Bhavas[:]...),
		}
	}
	return e
}

// WriteJSON writes the chart as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteTable writes a text table of the chart.
func (c *Chart) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "Chart @ %s (JD %.5f)\n", astro.TimeFromJulian(c.JD).Format(time.RFC3339), c.JD)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	fmt.Fprintf(w, "%-10s %-12s %2s %9s %-18s %-5s %5s %5s %5s\n",
		"Body", "Longitude", "", "Speed", "Nakshatra", "Nav", "Ucha", "Res", "Bhava")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	for _, p := range c.Planets {
		retro := ""
		if p.Retro() {
			retro = "R"
		}
		ucha, res, bhava := "", "", ""
		if p.Classical {
			ucha = fmt.Sprintf("%5.1f", p.Exaltation)
			if c.Houses != nil {
				res = fmt.Sprintf("%5.2f", p.Residential)
				bhava = fmt.Sprintf("%d", p.Bhava)
			}
		}
		fmt.Fprintf(w, "%-10s %-12s %2s %9.4f %-18s %-5s %5s %5s %5s\n",
			truncateStr(p.Body.String(), 10),
			FormatLon(p.Pos.Lon()),
			retro,
			p.Pos.Speed(),
			fmt.Sprintf("%s %d", truncateStr(p.Nakshatra.String(), 15), p.Pada+1),
			signAbbrev[p.Navamsa],
			ucha, res, bhava,
		)
	}

	if c.Houses != nil {
		fmt.Fprintf(w, "\nHouses (%s): Asc %s  MC %s\n", c.Houses.System, FormatLon(c.Houses.Asc), FormatLon(c.Houses.MC))
		for i, cusp := range c.Houses.Cusps {
			fmt.Fprintf(w, "  %2d %s", i+1, FormatLon(cusp))
			if i%4 == 3 {
				fmt.Fprintln(w)
			}
		}
	}

	fmt.Fprintln(w)
	if len(c.Aspects) == 0 {
		fmt.Fprintln(w, "No aspects in orb")
		return
	}
	fmt.Fprintf(w, "%-10s %-14s %-10s %7s %-11s\n", "Body", "Aspect", "Body", "Orb", "")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	for _, a := range c.Aspects {
		fmt.Fprintf(w, "%-10s %-14s %-10s %6.2f° %-11s\n",
			truncateStr(a.A.String(), 10),
			truncateStr(aspect.Name(a.Aspect), 14),
			truncateStr(a.B.String(), 10),
			a.Diff,
			a.Applic,
		)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
