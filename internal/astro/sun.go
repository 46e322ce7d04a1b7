package astro

import "math"

// julianCenturies returns Julian centuries elapsed since J2000.0.
func julianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// SunLongitude returns the apparent geocentric ecliptic longitude of the Sun
// in degrees. Uses a simplified solar ephemeris based on the Astronomical
// Almanac, accurate to about 0.01°.
func SunLongitude(jd float64) float64 {
	T := julianCenturies(jd)

	// Mean longitude of the Sun (degrees)
	L0 := NormalizeDeg(280.46646 + 36000.76983*T + 0.0003032*T*T)

	// Mean anomaly of the Sun (degrees)
	M := NormalizeDeg(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	// Aberration and nutation in longitude
	omega := 125.04 - 1934.136*T
	return NormalizeDeg(L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega)))
}

// SunSpeed returns the Sun's longitude speed in degrees per day, derived
// from the equation of center.
func SunSpeed(jd float64) float64 {
	T := julianCenturies(jd)
	Mrad := degToRad(NormalizeDeg(357.52911 + 35999.05029*T))

	// d(L0)/dt and d(M)/dt in degrees/day
	const dL0 = 36000.76983 / 36525.0
	const dM = 35999.05029 / 36525.0

	dC := 1.914602*math.Cos(Mrad) + 2*0.019993*math.Cos(2*Mrad) + 3*0.000289*math.Cos(3*Mrad)
	return dL0 + dC*degToRad(dM)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd float64) float64 {
	T := julianCenturies(jd)
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// TrueObliquity returns the obliquity corrected for the main nutation term.
func TrueObliquity(jd float64) float64 {
	omega := 125.04 - 1934.136*julianCenturies(jd)
	return MeanObliquity(jd) + 0.00256*math.Cos(degToRad(omega))
}
