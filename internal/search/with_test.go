package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

func pairFake() *fakeOracle {
	f := newFake()
	f.bodies[ephem.Mars] = linear(0, 1)
	f.bodies[ephem.Jupiter] = linear(100, 0.5)
	f.stars[astro.StarRegulus] = 150
	return f
}

func TestNextAspectWith(t *testing.T) {
	s := New(pairFake(), ephem.DefaultFlags)
	jupiter := BodyTarget(ephem.Jupiter)

	tests := []struct {
		name   string
		aspect float64
		jd     float64
		opts   Options
		want   float64
	}{
		{"conjunction", 0, 0, Options{}, 200},
		{"square", 90, 0, Options{}, 380},
		{"negative square", -90, 0, Options{}, 20},
		{"conjunction backward", 0, 400, Options{Backward: true}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.NextAspectWith(ephem.Mars, tt.aspect, jupiter, tt.jd, tt.opts)
			require.NoError(t, err)
			require.True(t, res.Found())
			assert.InDelta(t, tt.want, res.JD, eventTolerance)
			assert.InDelta(t, 0, astro.DiffDeg2(res.Pos.Lon(), res.Other.Lon()+tt.aspect), 2*eventTolerance)
		})
	}
}

func TestNextAspectWith_LimitReached(t *testing.T) {
	s := New(pairFake(), ephem.DefaultFlags)

	res, err := s.NextAspectWith(ephem.Mars, 0, BodyTarget(ephem.Jupiter), 0, Options{DaySpan: 150})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLimitReached, res.Outcome)
	assert.InDelta(t, 160, res.JD, 1e-9)
}

func TestNextAspectWith_Star(t *testing.T) {
	s := New(pairFake(), ephem.DefaultFlags)

	res, err := s.NextAspectWith(ephem.Mars, 0, StarTarget(astro.StarRegulus), 0, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 150, res.JD, eventTolerance)
	assert.Equal(t, 150.0, res.Other.Lon())
}

func TestNextAspectWith180(t *testing.T) {
	s := New(pairFake(), ephem.DefaultFlags)
	jupiter := BodyTarget(ephem.Jupiter)

	res, err := s.NextAspectWith180(ephem.Mars, 90, jupiter, 0, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 20, res.JD, eventTolerance)

	res, err = s.NextAspectWith180(ephem.Mars, 270, jupiter, 0, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 20, res.JD, eventTolerance)

	res, err = s.NextAspectWith180(ephem.Mars, 0, jupiter, 0, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 200, res.JD, eventTolerance)
}

func TestNextAspectWith_InvalidStep(t *testing.T) {
	f := pairFake()
	s := New(f, ephem.DefaultFlags)

	_, err := s.NextAspectWith(ephem.Mars, 0, BodyTarget(ephem.Jupiter), 0, Options{Step: 1e-9})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, f.Calls())
}
