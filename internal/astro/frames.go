package astro

import (
	"math"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(v.Z / r))
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector.
func EclipticLongitude(v Vec3) float64 {
	return NormalizeDeg(radToDeg(math.Atan2(v.Y, v.X)))
}

// LongitudeRate returns dλ/dt in degrees per unit time for a position and
// velocity expressed in the same ecliptic frame.
func LongitudeRate(pos, vel Vec3) float64 {
	rho2 := pos.X*pos.X + pos.Y*pos.Y
	if rho2 == 0 {
		return 0
	}
	return radToDeg((pos.X*vel.Y - pos.Y*vel.X) / rho2)
}

// EquatorialToEcliptic converts equatorial XYZ to ecliptic XYZ for the
// given obliquity in degrees.
func EquatorialToEcliptic(eq Vec3, obliquityDeg float64) Vec3 {
	cosE := math.Cos(degToRad(obliquityDeg))
	sinE := math.Sin(degToRad(obliquityDeg))

	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// EquatorialToEclipticDeg converts right ascension and declination to
// ecliptic longitude and latitude, all in degrees.
func EquatorialToEclipticDeg(raDeg, decDeg, obliquityDeg float64) (lonDeg, latDeg float64) {
	ra, dec := degToRad(raDeg), degToRad(decDeg)
	eq := Vec3{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Cos(dec) * math.Sin(ra),
		Z: math.Sin(dec),
	}
	ecl := EquatorialToEcliptic(eq, obliquityDeg)
	return EclipticLongitude(ecl), EclipticLatitude(ecl)
}
