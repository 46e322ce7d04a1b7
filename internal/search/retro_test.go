package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-transits/internal/ephem"
)

// sine turns retrograde at pi and direct again at 2pi.
func sine(t float64) (float64, float64) {
	return 100 - math.Cos(t), math.Sin(t)
}

// loop is direct most of the time with a retrograde loop of about nine days
// every 31.4 days, starting at 5*acos(-0.625).
func loop(t float64) (float64, float64) {
	lon := 0.5*t + 4*math.Sin(t/5)
	return math.Mod(lon+360, 360), 0.5 + 0.8*math.Cos(t/5)
}

func TestNextRetro_Converges(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mercury] = sine
	s := New(f, ephem.DefaultFlags)

	tests := []struct {
		name string
		jd   float64
		opts Options
	}{
		{"forward", 0.5, Options{Step: 1}},
		{"backward", 6.0, Options{Step: 1, Backward: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.NextRetro(ephem.Mercury, tt.jd, tt.opts)
			require.NoError(t, err)
			require.True(t, res.Found())
			assert.InDelta(t, math.Pi, res.JD, Precision)
		})
	}
}

func TestNextRetro_Loop(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mercury] = loop
	s := New(f, ephem.DefaultFlags)

	res, err := s.NextRetro(ephem.Mercury, 0, Options{Step: 3})
	require.NoError(t, err)
	assert.InDelta(t, 5*math.Acos(-0.625), res.JD, Precision)
	assert.InDelta(t, 0, res.Pos.Speed(), 1e-4)
}

func TestNextRetro_DefaultStep(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mercury] = loop
	s := New(f, ephem.DefaultFlags)

	// The default step of 16 days does not skip the first station.
	res, err := s.NextRetro(ephem.Mercury, 0, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 5*math.Acos(-0.625), res.JD, Precision)
}

func TestNextRetro_NeverRetrograde(t *testing.T) {
	f := newFake()
	s := New(f, ephem.DefaultFlags)

	for _, b := range []ephem.Body{ephem.Sun, ephem.Moon, ephem.MeanNode, ephem.TrueNode} {
		_, err := s.NextRetro(b, 0, Options{Step: 1})
		assert.ErrorIs(t, err, ErrInvalidBody, b.String())
	}
	assert.Zero(t, f.Calls())
}

func TestNextRetro_InvalidStep(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mercury] = sine
	s := New(f, ephem.DefaultFlags)

	_, err := s.NextRetro(ephem.Mercury, 0.5, Options{Step: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.NextRetro(ephem.Mercury, 0.5, Options{Step: Precision})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, f.Calls())
}

func TestNextRetro_LimitReached(t *testing.T) {
	f := newFake()
	f.bodies[ephem.Mercury] = sine
	s := New(f, ephem.DefaultFlags)

	res, err := s.NextRetro(ephem.Mercury, 0.5, Options{Step: 1, DaySpan: 1})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLimitReached, res.Outcome)
	assert.InDelta(t, 2.5, res.JD, 1e-9)

	// A limit past the event does not interfere.
	res, err = s.NextRetro(ephem.Mercury, 0.5, Options{Step: 1, DaySpan: 3})
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.InDelta(t, math.Pi, res.JD, Precision)
}

func TestRetroTimes(t *testing.T) {
	lo, err := MinRetroTime(ephem.Mars)
	require.NoError(t, err)
	hi, err := MaxRetroTime(ephem.Mars)
	require.NoError(t, err)
	assert.Equal(t, 56.0, lo)
	assert.Equal(t, 84.0, hi)

	_, err = MinRetroTime(ephem.Sun)
	assert.ErrorIs(t, err, ErrInvalidBody)
	_, err = MaxRetroTime(ephem.MeanNode)
	assert.ErrorIs(t, err, ErrInvalidBody)

	// Bodies outside the table get the defaults.
	lo, err = MinRetroTime(ephem.Body(9999))
	require.NoError(t, err)
	assert.Equal(t, float64(ephem.DefaultMinRetroDays), lo)
}
