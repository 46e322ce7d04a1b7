package aspectarian

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/jyotish"
	"github.com/litescript/ls-transits/internal/search"
)

type motion func(t float64) (lon, speed float64)

func linear(lon0, speed float64) motion {
	return func(t float64) (float64, float64) {
		return astro.NormalizeDeg(lon0 + speed*t), speed
	}
}

// slowLoop retrogrades for about 36 days every 126, turning retrograde at
// 20*acos(-0.625) and direct at 20*(2pi - acos(-0.625)).
func slowLoop(t float64) (float64, float64) {
	return astro.NormalizeDeg(0.5*t + 16*math.Sin(t/20)), 0.5 + 0.8*math.Cos(t/20)
}

// fakeOracle is safe for concurrent use: its maps are only read.
type fakeOracle struct {
	bodies map[ephem.Body]motion
	fail   ephem.Body
	err    error
}

func (f *fakeOracle) Name() string { return "fake" }

func (f *fakeOracle) Compute(jd float64, body ephem.Body, flags ephem.Flags) (ephem.Position, error) {
	if f.err != nil && body == f.fail {
		return ephem.Position{}, f.err
	}
	m, ok := f.bodies[body]
	if !ok {
		return ephem.Position{}, ephem.ErrUnknownBody
	}
	lon, speed := m(jd)
	return ephem.Position{lon, 0, 1, speed}, nil
}

func (f *fakeOracle) ComputeStar(name string, jd float64, flags ephem.Flags) (ephem.Position, error) {
	return ephem.Position{}, ephem.ErrUnknownStar
}

func (f *fakeOracle) ComputeHouses(jd float64, flags ephem.Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	return astro.Houses{}, ephem.ErrUnsupportedHouseSystem
}

func newScanner(f *fakeOracle, opts Options) *Scanner {
	return New(search.New(f, ephem.DefaultFlags), f, opts, nil)
}

func TestScan_SunMars(t *testing.T) {
	f := &fakeOracle{bodies: map[ephem.Body]motion{
		ephem.Sun:  linear(0, 1),
		ephem.Mars: linear(100, 0.5),
	}}
	sc := newScanner(f, Options{
		Bodies:  []ephem.Body{ephem.Sun, ephem.Mars},
		Aspects: []float64{0, 90},
		Workers: 3,
	})

	events, err := sc.Scan(context.Background(), 0, 395)
	require.NoError(t, err)
	require.True(t, sort.SliceIsSorted(events, func(i, j int) bool { return events[i].JD < events[j].JD }))

	var aspects, ingresses []Event
	for _, e := range events {
		switch e.Kind {
		case KindAspect:
			aspects = append(aspects, e)
		case KindIngress:
			ingresses = append(ingresses, e)
		default:
			t.Fatalf("unexpected event %s", e.Title())
		}
	}

	// Mars trails the Sun by 0.5t - 100 degrees.
	require.Len(t, aspects, 3)
	for i, want := range []struct {
		jd     float64
		aspect float64
	}{{20, 90}, {200, 0}, {380, 90}} {
		assert.InDelta(t, want.jd, aspects[i].JD, 1e-4)
		assert.Equal(t, want.aspect, aspects[i].Aspect)
		assert.Equal(t, ephem.Sun, aspects[i].Body)
		assert.Equal(t, ephem.Mars, aspects[i].Other)
	}

	var sun, mars []Event
	for _, e := range ingresses {
		if e.Body == ephem.Sun {
			sun = append(sun, e)
		} else {
			mars = append(mars, e)
		}
	}
	require.Len(t, sun, 13)
	for i, e := range sun {
		assert.InDelta(t, 30*float64(i+1), e.JD, 1e-4)
		assert.Equal(t, jyotish.SignNorm(i+1), e.Sign)
	}
	require.Len(t, mars, 6)
	assert.InDelta(t, 40, mars[0].JD, 1e-4)
	assert.Equal(t, jyotish.Leo, mars[0].Sign)
	assert.InDelta(t, 340, mars[5].JD, 1e-4)
	assert.Equal(t, jyotish.Capricorn, mars[5].Sign)
}

func TestScan_Stations(t *testing.T) {
	f := &fakeOracle{bodies: map[ephem.Body]motion{ephem.Mercury: slowLoop}}
	sc := newScanner(f, Options{
		Bodies: []ephem.Body{ephem.Mercury},
		Kinds:  []Kind{KindStation},
	})

	events, err := sc.Scan(context.Background(), 0, 200)
	require.NoError(t, err)
	require.Len(t, events, 3)

	turn := math.Acos(-0.625)
	want := []struct {
		jd    float64
		retro bool
	}{
		{20 * turn, true},
		{20 * (2*math.Pi - turn), false},
		{20 * (2*math.Pi + turn), true},
	}
	for i, w := range want {
		assert.Equal(t, KindStation, events[i].Kind)
		assert.InDelta(t, w.jd, events[i].JD, search.Precision)
		assert.Equal(t, w.retro, events[i].Retro)
	}
	assert.Equal(t, "Mercury Retro", events[0].Title())
	assert.Equal(t, "Mercury Direct", events[1].Title())
}

func TestScan_IngressAfterRetrogradeExit(t *testing.T) {
	// slowLoop enters Taurus, backs into Aries between its stations near
	// 35 and 28 degrees, then enters Taurus again before Gemini and Cancer.
	f := &fakeOracle{bodies: map[ephem.Body]motion{ephem.Mercury: slowLoop}}
	sc := newScanner(f, Options{
		Bodies: []ephem.Body{ephem.Mercury},
		Kinds:  []Kind{KindIngress},
	})

	events, err := sc.Scan(context.Background(), 0, 200)
	require.NoError(t, err)
	require.Len(t, events, 4)

	turn := math.Acos(-0.625)
	want := []jyotish.Sign{jyotish.Taurus, jyotish.Taurus, jyotish.Gemini, jyotish.Cancer}
	for i, sign := range want {
		e := events[i]
		assert.Equal(t, KindIngress, e.Kind)
		assert.Equal(t, sign, e.Sign, "event %d", i)
		lon, speed := slowLoop(e.JD)
		assert.InDelta(t, float64(sign)*30, lon, 1e-3, "event %d", i)
		assert.Positive(t, speed, "event %d", i)
	}
	assert.Less(t, events[0].JD, 20*turn)
	assert.Greater(t, events[1].JD, 20*(2*math.Pi-turn))
}

func TestScan_IngressStartingRetrograde(t *testing.T) {
	// Starting mid-loop in Taurus, the body backs into Aries and its direct
	// return into Taurus is the first ingress.
	f := &fakeOracle{bodies: map[ephem.Body]motion{ephem.Mercury: slowLoop}}
	sc := newScanner(f, Options{
		Bodies: []ephem.Body{ephem.Mercury},
		Kinds:  []Kind{KindIngress},
	})

	events, err := sc.Scan(context.Background(), 50, 110)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, jyotish.Taurus, events[0].Sign)
	lon, _ := slowLoop(events[0].JD)
	assert.InDelta(t, 30, lon, 1e-3)
}

func TestScan_NodeIngress(t *testing.T) {
	f := &fakeOracle{bodies: map[ephem.Body]motion{ephem.MeanNode: linear(200, -0.05)}}
	sc := newScanner(f, Options{Bodies: []ephem.Body{ephem.MeanNode}})

	events, err := sc.Scan(context.Background(), 0, 500)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, KindIngress, events[0].Kind)
	assert.InDelta(t, 400, events[0].JD, 1e-3)
	assert.Equal(t, jyotish.Virgo, events[0].Sign)
}

func TestScan_Errors(t *testing.T) {
	cause := errors.New("ephemeris file missing")
	f := &fakeOracle{
		bodies: map[ephem.Body]motion{ephem.Sun: linear(0, 1), ephem.Mars: linear(100, 0.5)},
		fail:   ephem.Mars,
		err:    cause,
	}
	sc := newScanner(f, DefaultOptions())
	sc.opts.Bodies = []ephem.Body{ephem.Sun, ephem.Mars}

	_, err := sc.Scan(context.Background(), 0, 100)
	assert.ErrorIs(t, err, cause)

	_, err = sc.Scan(context.Background(), 100, 100)
	assert.ErrorIs(t, err, search.ErrInvalidArgument)
}

func TestScan_Cancelled(t *testing.T) {
	f := &fakeOracle{bodies: map[ephem.Body]motion{ephem.Sun: linear(0, 1)}}
	sc := newScanner(f, Options{Bodies: []ephem.Body{ephem.Sun}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sc.Scan(ctx, 0, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSkip(t *testing.T) {
	assert.False(t, Skip(ephem.Sun, ephem.Mercury, 0))
	assert.True(t, Skip(ephem.Mercury, ephem.Sun, 30))
	assert.False(t, Skip(ephem.Sun, ephem.Venus, 45))
	assert.True(t, Skip(ephem.Venus, ephem.Sun, 90))
	assert.False(t, Skip(ephem.Mercury, ephem.Venus, 60))
	assert.True(t, Skip(ephem.Mercury, ephem.Venus, 120))
	assert.False(t, Skip(ephem.Mars, ephem.Venus, 180))
}

func TestEvent_Title(t *testing.T) {
	assert.Equal(t, "Sun Square Mars", Event{Kind: KindAspect, Body: ephem.Sun, Other: ephem.Mars, Aspect: 90}.Title())
	assert.Equal(t, "Venus Ingress Gemini", Event{Kind: KindIngress, Body: ephem.Venus, Sign: jyotish.Gemini}.Title())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Len(t, opts.Bodies, 10)
	assert.Contains(t, opts.Aspects, 144.0)
	assert.Equal(t, "aspect", KindAspect.String())
}
