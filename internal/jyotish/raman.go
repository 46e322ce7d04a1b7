package jyotish

import (
	"math"

	"github.com/litescript/ls-transits/internal/astro"
)

// RamanHouses divides the chart from the ascendant and midheaven the way
// B. V. Raman does: each quadrant is trisected. With sandhi false the
// result holds the bhava madhyas (house middles); with sandhi true, the
// arambha sandhis (house beginnings), half a bhava earlier.
func RamanHouses(asc, mc float64, sandhi bool) [12]float64 {
	var h [12]float64
	if sandhi {
		arc := math.Abs(astro.DiffDeg2(asc, mc)) / 6
		h[0] = astro.NormalizeDeg(asc - arc)
		h[9] = astro.NormalizeDeg(mc - arc)
	} else {
		h[0] = astro.NormalizeDeg(asc)
		h[9] = astro.NormalizeDeg(mc)
	}
	h[6] = astro.NormalizeDeg(h[0] + 180)
	h[3] = astro.NormalizeDeg(h[9] + 180)

	arc := math.Abs(astro.DiffDeg2(h[0], h[9])) / 3
	h[11] = astro.NormalizeDeg(h[0] - arc)
	h[10] = astro.NormalizeDeg(h[9] + arc)
	h[4] = astro.NormalizeDeg(h[10] + 180)
	h[5] = astro.NormalizeDeg(h[11] + 180)

	arc = math.Abs(astro.DiffDeg2(h[0], h[3])) / 3
	h[1] = astro.NormalizeDeg(h[0] + arc)
	h[2] = astro.NormalizeDeg(h[3] - arc)
	h[7] = astro.NormalizeDeg(h[1] + 180)
	h[8] = astro.NormalizeDeg(h[2] + 180)
	return h
}
