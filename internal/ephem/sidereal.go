package ephem

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-transits/internal/astro"
)

// Ayanamsa selects the sidereal zodiac used with FlagSidereal.
type Ayanamsa int

const (
	AyanamsaLahiri Ayanamsa = iota
	AyanamsaFaganBradley
	AyanamsaRaman
)

// ayanamsa values at J2000 in degrees
var ayanamsaJ2000 = map[Ayanamsa]float64{
	AyanamsaLahiri:       23.857,
	AyanamsaFaganBradley: 24.740,
	AyanamsaRaman:        22.410,
}

// String returns the ayanamsa name.
func (a Ayanamsa) String() string {
	switch a {
	case AyanamsaLahiri:
		return "lahiri"
	case AyanamsaFaganBradley:
		return "fagan-bradley"
	case AyanamsaRaman:
		return "raman"
	default:
		return "unknown"
	}
}

// ParseAyanamsa parses an ayanamsa name.
func ParseAyanamsa(s string) (Ayanamsa, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lahiri":
		return AyanamsaLahiri, nil
	case "fagan-bradley", "fagan", "faganbradley":
		return AyanamsaFaganBradley, nil
	case "raman":
		return AyanamsaRaman, nil
	default:
		return AyanamsaLahiri, fmt.Errorf("unknown ayanamsa %q", s)
	}
}

// Value returns the ayanamsa at jd, advancing with general precession.
func (a Ayanamsa) Value(jd float64) float64 {
	return ayanamsaJ2000[a] + (jd-astro.J2000)*astro.PrecessionRate
}

// toSidereal shifts a tropical position into the sidereal zodiac.
func toSidereal(p Position, a Ayanamsa, jd float64) Position {
	p[0] = astro.NormalizeDeg(p[0] - a.Value(jd))
	p[3] -= astro.PrecessionRate
	return p
}

// housesToSidereal shifts cusps and angles into the sidereal zodiac.
func housesToSidereal(h astro.Houses, a Ayanamsa, jd float64) astro.Houses {
	ay := a.Value(jd)
	cusps := make([]float64, len(h.Cusps))
	for i, c := range h.Cusps {
		cusps[i] = astro.NormalizeDeg(c - ay)
	}
	h.Cusps = cusps
	h.Asc = astro.NormalizeDeg(h.Asc - ay)
	h.MC = astro.NormalizeDeg(h.MC - ay)
	return h
}

// starPosition returns the catalog position of a fixed star of date.
func starPosition(catalog astro.StarCatalog, name string, jd float64, flags Flags, a Ayanamsa) (Position, error) {
	s, ok := catalog.Find(name)
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrUnknownStar, name)
	}
	lon, lat := s.EclipticOfDate(jd)
	p := Position{lon, lat, starDistanceAU, astro.PrecessionRate, 0, 0}
	if flags.Has(FlagSidereal) {
		p = toSidereal(p, a, jd)
	}
	return p, nil
}

// starDistanceAU is a nominal distance for catalog stars (about 10 pc).
const starDistanceAU = 2062650.0
