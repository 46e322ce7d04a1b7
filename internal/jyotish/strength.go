package jyotish

import (
	"fmt"
	"math"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// ResidentialStrength returns the residential strength of a planet at lon,
// given the twelve bhava madhya (house middle) longitudes: 1 at the middle
// of a bhava between two cusps, falling to 0 on either cusp.
func ResidentialStrength(lon float64, cusps []float64) (float64, error) {
	if len(cusps) < 12 {
		return 0, fmt.Errorf("%w: %d cusps, need 12", ErrInvalidArgument, len(cusps))
	}
	for i := 0; i < 12; i++ {
		c0, c1 := cusps[i], cusps[(i+1)%12]
		if lon == c0 || lon == c1 {
			return 0, nil
		}
		arc0 := astro.DiffDeg2(c0, lon)
		arc1 := astro.DiffDeg2(c1, lon)
		// The cusps must lie on either side of lon, along the short way.
		if (arc0 >= 0) == (arc1 >= 0) || math.Abs(arc0)+math.Abs(arc1) >= 180 {
			continue
		}
		mid := astro.Midpoint(c0, c1)
		if lon == mid {
			return 1, nil
		}
		arc0, arc1 = math.Abs(arc0), math.Abs(arc1)
		if arc0 < arc1 {
			return arc0 / math.Abs(astro.DiffDeg2(mid, c0)), nil
		}
		return arc1 / math.Abs(astro.DiffDeg2(mid, c1)), nil
	}
	return 0, fmt.Errorf("%w: %.4f lies between no pair of cusps", ErrInvalidArgument, lon)
}

// debilitation holds each planet's point of deepest fall; exaltation lies
// opposite.
var debilitation = map[ephem.Body]float64{
	ephem.Sun:     190,
	ephem.Moon:    213,
	ephem.Mercury: 345,
	ephem.Venus:   177,
	ephem.Mars:    118,
	ephem.Jupiter: 275,
	ephem.Saturn:  20,
}

// ExaltationStrength returns the exaltation strength (ochchabala) of planet
// at lon, in shashtiamsas: 0 at its debilitation point, 60 at exaltation.
func ExaltationStrength(planet ephem.Body, lon float64) (float64, error) {
	deb, ok := debilitation[planet]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a classical planet", ErrInvalidArgument, planet)
	}
	return math.Abs(astro.DiffDeg2(lon, deb)) / 3, nil
}
