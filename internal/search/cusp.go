package search

import (
	"fmt"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// defaultCuspStep is the default step for cusp searches, in days. Cusps
// sweep the whole zodiac once a day, so the step must stay small.
const defaultCuspStep = 0.2

// CuspQuery describes the chart whose cusp is aspected.
type CuspQuery struct {
	Cusp     int // house number, from 1
	Observer astro.Observer
	System   astro.HouseSystem
}

// NextAspectCusp finds the next time t makes aspect (degrees, [0, 360)) to
// a house cusp, recomputing the cusps at every sample. The result carries
// the houses at the event time. For risings and meridian transits of the
// angles this is a coarse method; prefer a dedicated rise/set solver.
func (s *Searcher) NextAspectCusp(t Target, aspect float64, q CuspQuery, jd float64, opts Options) (Result, error) {
	r := s.start("aspect_cusp")
	return r.finish(s.nextAspectCusp(r, t, aspect, q, jd, opts))
}

// NextAspectCusp180 is NextAspectCusp with aspect folded onto [0, 180].
func (s *Searcher) NextAspectCusp180(t Target, aspect float64, q CuspQuery, jd float64, opts Options) (Result, error) {
	r := s.start("aspect_cusp")
	aspect = foldAspect(aspect)
	if aspect == 0 || aspect == 180 {
		return r.finish(s.nextAspectCusp(r, t, aspect, q, jd, opts))
	}
	a, err := s.nextAspectCusp(r, t, aspect, q, jd, opts)
	if err != nil {
		return r.finish(Result{}, err)
	}
	b, err := s.nextAspectCusp(r, t, -aspect, q, jd, opts)
	if err != nil {
		return r.finish(Result{}, err)
	}
	return r.finish(nearer(a, b, opts.Backward), nil)
}

func (s *Searcher) nextAspectCusp(r *run, t Target, aspect float64, q CuspQuery, jd float64, opts Options) (Result, error) {
	if q.Cusp < 1 || q.Cusp > 12 {
		return Result{}, fmt.Errorf("%w: cusp %d", ErrInvalidArgument, q.Cusp)
	}
	step, err := resolveStep(opts.Step, defaultCuspStep)
	if err != nil {
		return Result{}, err
	}
	aspect = astro.NormalizeDeg(aspect)
	lim := newLimit(jd, opts.DaySpan, opts.Backward)
	backward := opts.Backward

	sample := func(at float64) (p ephem.Position, h astro.Houses, cusp float64, err error) {
		if p, err = r.target(at, t); err != nil {
			return
		}
		if h, err = r.houses(at, q.Observer, q.System); err != nil {
			return
		}
		c, ok := h.Cusp(q.Cusp)
		if !ok {
			err = fmt.Errorf("%w: cusp %d of %d", ErrInvalidArgument, q.Cusp, len(h.Cusps))
		}
		return p, h, c, err
	}

	pos, houses, cusp, err := sample(jd)
	if err != nil {
		return Result{}, err
	}
	prevS := astro.DiffDeg2(pos.Lon(), cusp+aspect)
	prevU := astro.DiffDeg(pos.Lon(), cusp+aspect)

	at := jd
	for step > Precision {
		at = advance(at, step, backward)
		if pos, houses, cusp, err = sample(at); err != nil {
			return Result{}, err
		}
		sg := astro.DiffDeg2(pos.Lon(), cusp+aspect)
		u := astro.DiffDeg(pos.Lon(), cusp+aspect)
		if crossed(prevS, prevU, sg, u) {
			if lim.passed(at, backward, false) {
				return Result{Outcome: OutcomeLimitReached, JD: at, Pos: pos, Houses: houses}, nil
			}
			backward = !backward
			step /= 2
		} else if lim.passed(at, backward, true) {
			return Result{Outcome: OutcomeLimitReached, JD: at, Pos: pos, Houses: houses}, nil
		}
		prevS, prevU = sg, u
	}

	at = advance(at, step, backward)
	if pos, houses, _, err = sample(at); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeFound, JD: at, Pos: pos, Houses: houses}, nil
}
