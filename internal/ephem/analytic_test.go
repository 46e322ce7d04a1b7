package ephem

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-transits/internal/astro"
)

func jdOf(y int, m time.Month, d, h, min int) float64 {
	return astro.JulianDate(time.Date(y, m, d, h, min, 0, 0, time.UTC))
}

func TestAnalytic_GreatConjunction2020(t *testing.T) {
	a := NewAnalytic(DefaultConfig())
	jd := jdOf(2020, 12, 21, 18, 20)

	jup, err := a.Compute(jd, Jupiter, FlagSpeed)
	require.NoError(t, err)
	sat, err := a.Compute(jd, Saturn, FlagSpeed)
	require.NoError(t, err)

	assert.InDelta(t, 300.5, jup.Lon(), 0.5)
	assert.InDelta(t, 0, astro.DiffDeg2(jup.Lon(), sat.Lon()), 0.5)
	assert.Greater(t, jup.Speed(), sat.Speed())
}

func TestAnalytic_Stations(t *testing.T) {
	a := NewAnalytic(DefaultConfig())

	tests := []struct {
		name   string
		body   Body
		before float64
		after  float64
	}{
		// Mercury stationed retrograde 2024-Apr-01.
		{"Mercury", Mercury, jdOf(2024, 3, 25, 0, 0), jdOf(2024, 4, 8, 0, 0)},
		// Venus stationed retrograde 2023-Jul-22.
		{"Venus", Venus, jdOf(2023, 7, 10, 0, 0), jdOf(2023, 8, 5, 0, 0)},
		// Mars stationed retrograde 2022-Oct-30.
		{"Mars", Mars, jdOf(2022, 10, 15, 0, 0), jdOf(2022, 11, 15, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := a.Compute(tc.before, tc.body, FlagSpeed)
			require.NoError(t, err)
			assert.True(t, p.Direct(), "speed before station %v", p.Speed())

			p, err = a.Compute(tc.after, tc.body, FlagSpeed)
			require.NoError(t, err)
			assert.False(t, p.Direct(), "speed after station %v", p.Speed())
		})
	}
}

func TestAnalytic_MoonPhases(t *testing.T) {
	a := NewAnalytic(DefaultConfig())

	tests := []struct {
		name string
		jd   float64
		want float64
	}{
		{"full moon 2024-Jan-25", jdOf(2024, 1, 25, 17, 54), 180},
		{"new moon 2024-Apr-08", jdOf(2024, 4, 8, 18, 21), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			moon, err := a.Compute(tc.jd, Moon, FlagSpeed)
			require.NoError(t, err)
			sun, err := a.Compute(tc.jd, Sun, FlagSpeed)
			require.NoError(t, err)

			assert.InDelta(t, 0, astro.DiffDeg2(astro.DiffDeg(moon.Lon(), sun.Lon()), tc.want), 1.0)
			assert.InDelta(t, 13.2, moon.Speed(), 2.5)
		})
	}
}

func TestAnalytic_Nodes(t *testing.T) {
	a := NewAnalytic(DefaultConfig())

	p, err := a.Compute(astro.J2000, MeanNode, FlagSpeed)
	require.NoError(t, err)
	assert.InDelta(t, 125.0445, p.Lon(), 1e-3)
	assert.InDelta(t, -0.05295, p.Speed(), 1e-4)

	p, err = a.Compute(astro.J2000, TrueNode, FlagSpeed)
	require.NoError(t, err)
	assert.InDelta(t, 0, astro.DiffDeg2(p.Lon(), 125.0445), 2.1)

	p, err = a.Compute(astro.J2000, MeanApogee, FlagSpeed)
	require.NoError(t, err)
	assert.True(t, p.Direct())
}

func TestAnalytic_Heliocentric(t *testing.T) {
	a := NewAnalytic(DefaultConfig())

	earth, err := a.Compute(astro.J2000, Earth, FlagSpeed|FlagHeliocentric)
	require.NoError(t, err)
	sun, err := a.Compute(astro.J2000, Sun, FlagSpeed)
	require.NoError(t, err)
	assert.InDelta(t, 180, astro.DiffDeg(earth.Lon(), sun.Lon()), 0.05)
	assert.InDelta(t, 0.983, earth.Dist(), 0.01)

	// Heliocentric planets never retrograde.
	for _, b := range []Body{Mercury, Venus, Mars, Jupiter} {
		p, err := a.Compute(jdOf(2024, 4, 8, 0, 0), b, FlagSpeed|FlagHeliocentric)
		require.NoError(t, err)
		assert.True(t, p.Direct(), b.String())
	}

	_, err = a.Compute(astro.J2000, Moon, FlagHeliocentric)
	assert.ErrorIs(t, err, ErrUnknownBody)
}

func TestAnalytic_FlagsAndErrors(t *testing.T) {
	a := NewAnalytic(DefaultConfig())

	p, err := a.Compute(astro.J2000, Mars, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Speed())

	trop, err := a.Compute(astro.J2000, Sun, FlagSpeed)
	require.NoError(t, err)
	sid, err := a.Compute(astro.J2000, Sun, FlagSpeed|FlagSidereal)
	require.NoError(t, err)
	assert.InDelta(t, AyanamsaLahiri.Value(astro.J2000), astro.DiffDeg(trop.Lon(), sid.Lon()), 1e-9)

	_, err = a.Compute(astro.J2000, Chiron, FlagSpeed)
	assert.ErrorIs(t, err, ErrUnknownBody)
	_, err = a.Compute(astro.J2000, Body(99), FlagSpeed)
	assert.ErrorIs(t, err, ErrUnknownBody)
}

func TestAnalytic_ComputeStar(t *testing.T) {
	a := NewAnalytic(DefaultConfig())

	p, err := a.ComputeStar("regulus", astro.J2000, FlagSpeed)
	require.NoError(t, err)
	assert.InDelta(t, 149.83, p.Lon(), 0.1)
	assert.InDelta(t, astro.PrecessionRate, p.Speed(), 1e-12)

	_, err = a.ComputeStar("Vulcan", astro.J2000, FlagSpeed)
	assert.ErrorIs(t, err, ErrUnknownStar)
}

func TestAnalytic_ComputeHouses(t *testing.T) {
	a := NewAnalytic(DefaultConfig())
	obs := astro.Observer{LatDeg: 51.48, LonDeg: 0}

	h, err := a.ComputeHouses(astro.J2000, FlagSpeed, obs, astro.HouseEqual)
	require.NoError(t, err)
	assert.Len(t, h.Cusps, 12)

	sid, err := a.ComputeHouses(astro.J2000, FlagSidereal, obs, astro.HouseEqual)
	require.NoError(t, err)
	assert.InDelta(t, AyanamsaLahiri.Value(astro.J2000), astro.DiffDeg(h.Asc, sid.Asc), 1e-9)

	_, err = a.ComputeHouses(astro.J2000, 0, obs, astro.HouseSystem('X'))
	assert.ErrorIs(t, err, ErrUnsupportedHouseSystem)

	_, err = a.ComputeHouses(astro.J2000, 0, astro.Observer{LatDeg: 120}, astro.HouseEqual)
	assert.Error(t, err)
}

func TestSolveKepler(t *testing.T) {
	for _, e := range []float64{0, 0.0167, 0.2056, 0.9} {
		for _, M := range []float64{0, 0.5, 2, 3.1} {
			E := solveKepler(M, e)
			assert.InDelta(t, M, E-e*math.Sin(E), 1e-10, "e=%v M=%v", e, M)
		}
	}
}
