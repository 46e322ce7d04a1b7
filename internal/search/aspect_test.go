package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

const eventTolerance = 1e-4

func TestGoPast(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mars] = linear(10, 1)
	s := New(f, ephem.DefaultFlags)

	res, err := s.GoPast(ephem.Mars, 45, 0, Options{Step: 10})
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, 40.0, res.JD)
	assert.InDelta(t, 50, res.Pos.Lon(), 1e-9)

	res, err = s.GoPast(ephem.Mars, 45, 100, Options{Step: 10, Backward: true})
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.JD)
}

func TestGoPast_NodeMovesBackward(t *testing.T) {
	f := newFake()
	f.bodies[ephem.MeanNode] = linear(200, -0.05)
	s := New(f, ephem.DefaultFlags)

	res, err := s.GoPast(ephem.MeanNode, 198.75, 0, Options{Step: 10})
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.JD)
}

func TestGoPast_WrapIsNotCrossing(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mars] = linear(0, 1)
	s := New(f, ephem.DefaultFlags)

	// The opposite point 200 is passed first; only the sample past 20 counts.
	res, err := s.GoPast(ephem.Mars, 20, 150, Options{Step: 10})
	require.NoError(t, err)
	assert.Equal(t, 380.0, res.JD)
}

func TestNextAspect_Linear(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mars] = linear(10, 1)
	s := New(f, ephem.DefaultFlags)

	res, err := s.NextAspect(ephem.Mars, 90, 50, 0, Options{Step: 10})
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.InDelta(t, 130, res.JD, eventTolerance)
	assert.InDelta(t, 0, astro.DiffDeg2(res.Pos.Lon(), 140), eventTolerance)

	res, err = s.NextAspect(ephem.Mars, 90, 50, 200, Options{Step: 10, Backward: true})
	require.NoError(t, err)
	assert.InDelta(t, 130, res.JD, eventTolerance)
}

func TestNextAspect_LimitReached(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mars] = linear(10, 1)
	s := New(f, ephem.DefaultFlags)

	res, err := s.NextAspect(ephem.Mars, 90, 50, 0, Options{Step: 10, DaySpan: 100})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLimitReached, res.Outcome)
	assert.InDelta(t, 125, res.JD, 1e-9)
}

func TestNextAspect_RetrogradeLoop(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mercury] = loop
	s := New(f, ephem.DefaultFlags)

	tests := []struct {
		fixed float64
		want  float64
	}{
		{10, 26.58332},
		{30, 61.73732},
	}
	for _, tt := range tests {
		res, err := s.NextAspect(ephem.Mercury, 0, tt.fixed, 0, Options{Step: 3})
		require.NoError(t, err)
		assert.InDelta(t, tt.want, res.JD, eventTolerance, "fixed %v", tt.fixed)
		assert.InDelta(t, 0, astro.DiffDeg2(res.Pos.Lon(), tt.fixed), eventTolerance)
	}
}

func TestNextAspect_NeverRetrogradeBody(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Sun] = linear(0, 360/365.25)
	s := New(f, ephem.DefaultFlags)

	res, err := s.NextAspect(ephem.Sun, 0, 90, 0, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 91.3125, res.JD, eventTolerance)
}

func TestNextAspect180(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mars] = linear(10, 1)
	s := New(f, ephem.DefaultFlags)

	// Targets are 140 and 320; 270 folds to 90.
	for _, aspect := range []float64{90, 270, -90} {
		res, err := s.NextAspect180(ephem.Mars, aspect, 50, 0, Options{Step: 10})
		require.NoError(t, err)
		assert.InDelta(t, 130, res.JD, eventTolerance, "aspect %v", aspect)
	}

	res, err := s.NextAspect180(ephem.Mars, 90, 50, 200, Options{Step: 10, Backward: true})
	require.NoError(t, err)
	assert.InDelta(t, 130, res.JD, eventTolerance)

	res, err = s.NextAspect180(ephem.Mars, 90, 50, 135, Options{Step: 10})
	require.NoError(t, err)
	assert.InDelta(t, 310, res.JD, eventTolerance)
}
