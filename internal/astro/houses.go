package astro

import (
	"errors"
	"fmt"
	"math"
)

// HouseSystem identifies a house division method by its conventional letter.
type HouseSystem byte

const (
	HouseEqual     HouseSystem = 'E'
	HouseWholeSign HouseSystem = 'W'
	HousePorphyry  HouseSystem = 'O'
)

// String returns the house system name.
func (h HouseSystem) String() string {
	switch h {
	case HouseEqual:
		return "equal"
	case HouseWholeSign:
		return "whole-sign"
	case HousePorphyry:
		return "porphyry"
	default:
		return "unknown"
	}
}

// ParseHouseSystem accepts either the letter or the name of a house system.
func ParseHouseSystem(s string) (HouseSystem, error) {
	switch s {
	case "E", "e", "equal":
		return HouseEqual, nil
	case "W", "w", "whole-sign", "whole":
		return HouseWholeSign, nil
	case "O", "o", "porphyry":
		return HousePorphyry, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedHouseSystem, s)
	}
}

// ErrUnsupportedHouseSystem is returned for unknown systems and for
// latitudes a system cannot handle.
var ErrUnsupportedHouseSystem = errors.New("unsupported house system")

// Houses holds the twelve cusp longitudes of a chart plus its angles.
type Houses struct {
	System HouseSystem
	Cusps  []float64 // Cusps[0] is the first house cusp
	Asc    float64   // Ascendant longitude
	MC     float64   // Midheaven longitude
	ARMC   float64   // Right ascension of the meridian
}

// Cusp returns the longitude of house cusp n, numbered from 1.
func (h Houses) Cusp(n int) (float64, bool) {
	if n < 1 || n > len(h.Cusps) {
		return 0, false
	}
	return h.Cusps[n-1], true
}

// Angles computes the ascendant and midheaven from ARMC, geographic latitude
// and obliquity (all degrees).
func Angles(armcDeg, latDeg, obliquityDeg float64) (asc, mc float64) {
	ramc := degToRad(armcDeg)
	eps := degToRad(obliquityDeg)
	lat := degToRad(latDeg)

	mc = NormalizeDeg(radToDeg(math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(eps))))
	asc = NormalizeDeg(radToDeg(math.Atan2(
		math.Cos(ramc),
		-(math.Sin(ramc)*math.Cos(eps) + math.Tan(lat)*math.Sin(eps)),
	)))
	return asc, mc
}

// ComputeHouses computes house cusps for a Julian day (UT) and observer.
func ComputeHouses(jd float64, obs Observer, system HouseSystem) (Houses, error) {
	if math.Abs(obs.LatDeg) >= 66.5 && system == HousePorphyry {
		return Houses{}, fmt.Errorf("%w: porphyry at latitude %.2f", ErrUnsupportedHouseSystem, obs.LatDeg)
	}
	armc := LocalSiderealDeg(jd, obs.LonDeg)
	asc, mc := Angles(armc, obs.LatDeg, TrueObliquity(jd))

	h := Houses{System: system, Asc: asc, MC: mc, ARMC: armc, Cusps: make([]float64, 12)}
	switch system {
	case HouseEqual:
		for i := range h.Cusps {
			h.Cusps[i] = NormalizeDeg(asc + float64(i)*30)
		}
	case HouseWholeSign:
		first := math.Floor(asc/30) * 30
		for i := range h.Cusps {
			h.Cusps[i] = NormalizeDeg(first + float64(i)*30)
		}
	case HousePorphyry:
		ic := NormalizeDeg(mc + 180)
		a := DiffDeg(ic, asc) / 3
		b := DiffDeg(NormalizeDeg(asc+180), ic) / 3
		h.Cusps[0] = asc
		h.Cusps[1] = NormalizeDeg(asc + a)
		h.Cusps[2] = NormalizeDeg(asc + 2*a)
		h.Cusps[3] = ic
		h.Cusps[4] = NormalizeDeg(ic + b)
		h.Cusps[5] = NormalizeDeg(ic + 2*b)
		for i := 6; i < 12; i++ {
			h.Cusps[i] = NormalizeDeg(h.Cusps[i-6] + 180)
		}
	default:
		return Houses{}, fmt.Errorf("%w: %q", ErrUnsupportedHouseSystem, string(system))
	}
	return h, nil
}
