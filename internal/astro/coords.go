package astro

import (
	"math"
	"time"
)

// J2000 is the Julian day of 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// julianUnixEpoch is the Julian day of 1970-01-01 00:00 UTC.
const julianUnixEpoch = 2440587.5

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	AltM   float64 // Altitude above sea level in meters
	Name   string  // Optional name for the site
}

// Valid reports whether the observer coordinates are within range.
func (o Observer) Valid() bool {
	return o.LatDeg >= -90 && o.LatDeg <= 90 &&
		o.LonDeg >= -180 && o.LonDeg <= 180 &&
		o.AltM >= 0
}

// JulianDate calculates the Julian Date for a given time.
func JulianDate(t time.Time) float64 {
	// Convert to UTC
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Time of day as fraction
	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// Adjust for January/February (treat as months 13/14 of previous year)
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// TimeFromJulian converts a Julian day to a UTC time, rounded to the
// nearest millisecond.
func TimeFromJulian(jd float64) time.Time {
	ms := math.Round((jd - julianUnixEpoch) * 86400e3)
	return time.UnixMilli(int64(ms)).UTC()
}

// JulianNow returns the Julian day for the current instant.
func JulianNow() float64 {
	return JulianDate(time.Now())
}

// GreenwichSiderealDeg returns Greenwich Mean Sidereal Time in degrees for
// a Julian day (IAU 1982).
func GreenwichSiderealDeg(jd float64) float64 {
	T := (jd - J2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDeg(gmst)
}

// LocalSiderealDeg returns the Local Sidereal Time in degrees, which is also
// the right ascension of the meridian (ARMC).
func LocalSiderealDeg(jd, lonDeg float64) float64 {
	return NormalizeDeg(GreenwichSiderealDeg(jd) + lonDeg)
}
