package search

import (
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// NextAspect finds the next time body makes aspect (degrees, [0, 360)) to
// the fixed longitude fixed. The default step is the body's minimum
// retrograde period, or ten days for bodies that never retrograde.
func (s *Searcher) NextAspect(body ephem.Body, aspect, fixed, jd float64, opts Options) (Result, error) {
	r := s.start("aspect")
	return r.finish(s.nextAspect(r, body, aspect, fixed, jd, opts))
}

// NextAspect180 is NextAspect with aspect folded onto [0, 180]: both the
// aspect and its negation are searched and the nearer hit wins.
func (s *Searcher) NextAspect180(body ephem.Body, aspect, fixed, jd float64, opts Options) (Result, error) {
	r := s.start("aspect")
	aspect = foldAspect(aspect)
	if aspect == 0 || aspect == 180 {
		return r.finish(s.nextAspect(r, body, aspect, fixed, jd, opts))
	}
	a, err := s.nextAspect(r, body, aspect, fixed, jd, opts)
	if err != nil {
		return r.finish(Result{}, err)
	}
	b, err := s.nextAspect(r, body, -aspect, fixed, jd, opts)
	if err != nil {
		return r.finish(Result{}, err)
	}
	return r.finish(nearer(a, b, opts.Backward), nil)
}

func (s *Searcher) nextAspect(r *run, body ephem.Body, aspect, fixed, jd float64, opts Options) (Result, error) {
	step, err := resolveStep(opts.Step, defaultStep(body))
	if err != nil {
		return Result{}, err
	}
	lim := newLimit(jd, opts.DaySpan, opts.Backward)
	backward := opts.Backward
	target := astro.NormalizeDeg(fixed + aspect)

	res := Result{Outcome: OutcomeFound, JD: jd}
	for step > Precision {
		res, err = s.goPast(r, body, target, res.JD, Options{Step: step, Backward: backward})
		if err != nil {
			return Result{}, err
		}
		if lim.passed(res.JD, backward, false) {
			res.Outcome = OutcomeLimitReached
			return res, nil
		}
		backward = !backward
		step /= 2
	}
	return res, nil
}
