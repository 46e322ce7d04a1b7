package astro

import (
	"strings"
)

// Star represents a cataloged star with position and brightness.
type Star struct {
	Name   string  // Common name (e.g., "Regulus", "Spica")
	RAdeg  float64 // Right Ascension in degrees (J2000)
	DecDeg float64 // Declination in degrees (J2000)
	Mag    float64 // Apparent visual magnitude (lower = brighter)
}

// PrecessionRate is general precession in longitude, in degrees per day
// (5028.796"/century).
const PrecessionRate = 5028.796 / 3600.0 / 36525.0

// EclipticJ2000 returns the star's ecliptic longitude and latitude for the
// J2000 equinox.
func (s Star) EclipticJ2000() (lonDeg, latDeg float64) {
	return EquatorialToEclipticDeg(s.RAdeg, s.DecDeg, MeanObliquity(J2000))
}

// EclipticOfDate returns the ecliptic longitude and latitude referred to the
// mean equinox of date. Latitude is held at its J2000 value and longitude
// advances by general precession; proper motion is ignored.
func (s Star) EclipticOfDate(jd float64) (lonDeg, latDeg float64) {
	lon, lat := s.EclipticJ2000()
	return NormalizeDeg(lon + (jd-J2000)*PrecessionRate), lat
}

// StarCatalog holds a collection of named stars.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns a catalog of bright and zodiacal stars.
// Coordinates are J2000 epoch, sourced from the Yale Bright Star Catalog and
// IAU star names.
func DefaultStarCatalog() StarCatalog {
	return StarCatalog{
		Stars: defaultStars,
	}
}

// Find returns the star with the given name, ignoring case and surrounding
// whitespace.
func (c StarCatalog) Find(name string) (Star, bool) {
	name = strings.TrimSpace(name)
	for _, s := range c.Stars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// Royal stars used by the Saturn four-stars index, in zodiacal order.
const (
	StarAldebaran = "Aldebaran"
	StarRegulus   = "Regulus"
	StarAntares   = "Antares"
	StarFomalhaut = "Fomalhaut"
)

// defaultStars contains bright stars, with emphasis on those near the
// ecliptic. Ordered roughly by magnitude (brightest first).
var defaultStars = []Star{
	// Magnitude < 0.5
	{"Sirius", 101.287, -16.716, -1.46},
	{"Canopus", 95.988, -52.696, -0.74},
	{"Arcturus", 213.915, 19.182, -0.05},
	{"Vega", 279.235, 38.784, 0.03},
	{"Capella", 79.172, 45.998, 0.08},
	{"Rigel", 78.634, -8.202, 0.13},
	{"Procyon", 114.826, 5.225, 0.34},
	{"Achernar", 24.429, -57.237, 0.46},

	// Magnitude 0.5-1.5
	{"Betelgeuse", 88.793, 7.407, 0.50},
	{"Altair", 297.696, 8.868, 0.76},
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Deneb", 310.358, 45.280, 1.25},
	{"Regulus", 152.093, 11.967, 1.35},

	// Magnitude 1.5-2.5
	{"Castor", 113.650, 31.889, 1.58},
	{"Shaula", 263.402, -37.104, 1.63},
	{"Bellatrix", 81.283, 6.350, 1.64},
	{"Elnath", 81.573, 28.608, 1.65},
	{"Alnilam", 84.053, -1.202, 1.69},
	{"Kaus Australis", 276.043, -34.384, 1.85},
	{"Alhena", 99.428, 16.399, 1.93},
	{"Polaris", 37.954, 89.264, 2.02},
	{"Alphard", 141.897, -8.659, 2.00},
	{"Hamal", 31.793, 23.463, 2.00},
	{"Algieba", 146.463, 19.842, 2.08},
	{"Nunki", 283.816, -26.297, 2.02},
	{"Alpheratz", 2.097, 29.091, 2.06},
	{"Algol", 47.042, 40.957, 2.12},
	{"Denebola", 177.265, 14.572, 2.13},
	{"Dschubba", 240.083, -22.622, 2.32},
	{"Markab", 346.190, 15.205, 2.49},

	// Magnitude 2.5 and fainter, zodiacal
	{"Zosma", 168.527, 20.524, 2.56},
	{"Zubeneschamali", 229.252, -9.383, 2.61},
	{"Sheratan", 28.660, 20.808, 2.64},
	{"Zubenelgenubi", 222.720, -16.042, 2.75},
	{"Porrima", 190.415, -1.449, 2.74},
	{"Vindemiatrix", 195.544, 10.959, 2.83},
	{"Alcyone", 56.871, 24.105, 2.87},
	{"Sadalmelik", 331.446, -0.320, 2.96},
	{"Sadalsuud", 322.890, -5.571, 2.91},
	{"Asellus Australis", 131.171, 18.154, 3.94},
	{"Acubens", 134.622, 11.858, 4.25},
	{"Zavijava", 177.674, 1.765, 3.61},
}
