// Package astro provides angular arithmetic, time scales and low-precision
// ecliptic geometry shared by the ephemeris and search layers.
package astro

import "math"

// Circle sizes for the supported angle units.
const (
	FullCircleDeg = 360.0
	FullCircleRad = 2 * math.Pi
	// FullCircleCs is a full circle in centiseconds of arc (360 * 3600 * 100).
	FullCircleCs = 360 * 360000
)

// Normalize maps x into [0, modulus).
func Normalize(x, modulus float64) float64 {
	y := math.Mod(x, modulus)
	if y < 0 {
		y += modulus
	}
	// math.Mod of a tiny negative value can round back up to the modulus.
	if y >= modulus {
		y = 0
	}
	return y
}

// NormalizeDeg maps an angle in degrees into [0, 360).
func NormalizeDeg(deg float64) float64 {
	return Normalize(deg, FullCircleDeg)
}

// NormalizeRad maps an angle in radians into [0, 2π).
func NormalizeRad(rad float64) float64 {
	return Normalize(rad, FullCircleRad)
}

// NormalizeCs maps an angle in centiseconds of arc into [0, 360*360000).
func NormalizeCs(cs int64) int64 {
	y := cs % FullCircleCs
	if y < 0 {
		y += FullCircleCs
	}
	return y
}

// DiffDeg returns the unsigned difference a - b, normalized to [0, 360).
func DiffDeg(a, b float64) float64 {
	return NormalizeDeg(a - b)
}

// DiffDeg2 returns the shortest signed rotation from b to a, in (-180, 180].
func DiffDeg2(a, b float64) float64 {
	return fold(DiffDeg(a, b), FullCircleDeg)
}

// DiffRad returns the unsigned difference a - b, normalized to [0, 2π).
func DiffRad(a, b float64) float64 {
	return NormalizeRad(a - b)
}

// DiffRad2 returns the shortest signed rotation from b to a, in (-π, π].
func DiffRad2(a, b float64) float64 {
	return fold(DiffRad(a, b), FullCircleRad)
}

// DiffCs returns the unsigned difference a - b in centiseconds of arc.
func DiffCs(a, b int64) int64 {
	return NormalizeCs(a - b)
}

// DiffCs2 returns the shortest signed rotation from b to a in centiseconds
// of arc, in (-180°, 180°].
func DiffCs2(a, b int64) int64 {
	d := DiffCs(a, b)
	if d > FullCircleCs/2 {
		d -= FullCircleCs
	}
	return d
}

// fold maps an unsigned difference in [0, circle) onto (-circle/2, circle/2].
func fold(d, circle float64) float64 {
	if d > circle/2 {
		return d - circle
	}
	return d
}

// Midpoint returns the angle equidistant from a and b on the short arc.
// For antipodal points the result lies a quarter turn behind b, so
// Midpoint(0, 180) == 90 and Midpoint(180, 0) == 270.
func Midpoint(a, b float64) float64 {
	return NormalizeDeg(b - DiffDeg2(b, a)/2)
}

// MidpointRad is Midpoint for radians.
func MidpointRad(a, b float64) float64 {
	return NormalizeRad(b - DiffRad2(b, a)/2)
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
