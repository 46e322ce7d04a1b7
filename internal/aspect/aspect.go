// Package aspect classifies angular relations between two moving points:
// whether they form an aspect within an orb, how far from exact they are,
// and whether the aspect is applying or separating.
package aspect

import (
	"fmt"
	"math"
	"strings"
)

// Aspect angles, in degrees.
const (
	Conjunction  = 0.0
	Squisextile  = 15.0
	Seminovile   = 20.0
	Squisquare   = 22.5
	Undecile     = 360 / 11.0
	Semisextile  = 30.0
	Semiquintile = 36.0
	Novile       = 40.0
	Semisquare   = 45.0
	Septile      = 360 / 7.0
	Sextile      = 60.0
	Biundecile   = 2 * 360 / 11.0
	Quintile     = 72.0
	Binovile     = 80.0
	Square       = 90.0
	Triundecile  = 3 * 360 / 11.0
	Biseptile    = 2 * 360 / 7.0
	Trine        = 120.0
	Quadundecile = 4 * 360 / 11.0
	Sesquisquare = 135.0
	Biquintile   = 144.0
	Quincunx     = 150.0
	Triseptile   = 3 * 360 / 7.0
	Quatronovile = 160.0
	Quinundecile = 5 * 360 / 11.0
	Opposition   = 180.0
)

type named struct {
	angle float64
	name  string
}

var names = []named{
	{Conjunction, "Conjunction"},
	{Squisextile, "Squisextile"},
	{Seminovile, "Seminovile"},
	{Squisquare, "Squisquare"},
	{Undecile, "Undecile"},
	{Semisextile, "SemiSextile"},
	{Semiquintile, "SemiQuintile"},
	{Novile, "Novile"},
	{Semisquare, "SemiSquare"},
	{Septile, "Septile"},
	{Sextile, "Sextile"},
	{Biundecile, "BiUndecile"},
	{Quintile, "Quintile"},
	{Binovile, "BiNovile"},
	{Square, "Square"},
	{Triundecile, "TriUndecile"},
	{Biseptile, "BiSeptile"},
	{Trine, "Trine"},
	{Quadundecile, "QuadUndecile"},
	{Sesquisquare, "SesquiSquare"},
	{Biquintile, "BiQuintile"},
	{Quincunx, "Quincunx"},
	{Triseptile, "TriSeptile"},
	{Quatronovile, "QuatroNovile"},
	{Quinundecile, "QuinUndecile"},
	{Opposition, "Opposition"},
}

// Major are the aspects scanned by default.
var Major = []float64{
	Conjunction, Semisextile, Semisquare, Sextile, Quintile, Square,
	Trine, Sesquisquare, Biquintile, Quincunx, Opposition,
}

// Name returns the conventional name of an aspect angle, or the angle
// itself when it has none.
func Name(angle float64) string {
	for _, n := range names {
		if math.Abs(n.angle-angle) < 1e-9 {
			return n.name
		}
	}
	return fmt.Sprintf("%g°", angle)
}

// Parse returns the angle for an aspect name, ignoring case, or parses a
// plain number of degrees.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, n := range names {
		if strings.EqualFold(n.name, s) {
			return n.angle, nil
		}
	}
	var deg float64
	if _, err := fmt.Sscanf(strings.TrimSuffix(s, "°"), "%g", &deg); err != nil {
		return 0, fmt.Errorf("unknown aspect %q", s)
	}
	return deg, nil
}
