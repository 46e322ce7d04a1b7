package search

import (
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// defaultPairStep is the default step for two-body searches, in days.
const defaultPairStep = 10

// NextAspectWith finds the next time body makes aspect (degrees, [0, 360))
// to other, a moving body or a fixed star. Both sides move, so the step is
// not derived from either; use a large step for aspects expected far off.
func (s *Searcher) NextAspectWith(body ephem.Body, aspect float64, other Target, jd float64, opts Options) (Result, error) {
	r := s.start("aspect_with")
	return r.finish(s.nextAspectWith(r, body, aspect, other, jd, opts))
}

// NextAspectWith180 is NextAspectWith with aspect folded onto [0, 180].
func (s *Searcher) NextAspectWith180(body ephem.Body, aspect float64, other Target, jd float64, opts Options) (Result, error) {
	r := s.start("aspect_with")
	aspect = foldAspect(aspect)
	if aspect == 0 || aspect == 180 {
		return r.finish(s.nextAspectWith(r, body, aspect, other, jd, opts))
	}
	a, err := s.nextAspectWith(r, body, aspect, other, jd, opts)
	if err != nil {
		return r.finish(Result{}, err)
	}
	b, err := s.nextAspectWith(r, body, -aspect, other, jd, opts)
	if err != nil {
		return r.finish(Result{}, err)
	}
	return r.finish(nearer(a, b, opts.Backward), nil)
}

func (s *Searcher) nextAspectWith(r *run, body ephem.Body, aspect float64, other Target, jd float64, opts Options) (Result, error) {
	step, err := resolveStep(opts.Step, defaultPairStep)
	if err != nil {
		return Result{}, err
	}
	aspect = astro.NormalizeDeg(aspect)
	lim := newLimit(jd, opts.DaySpan, opts.Backward)
	backward := opts.Backward

	sample := func(t float64) (p0, p1 ephem.Position, err error) {
		if p0, err = r.body(t, body); err != nil {
			return
		}
		p1, err = r.target(t, other)
		return
	}

	p0, p1, err := sample(jd)
	if err != nil {
		return Result{}, err
	}
	prevS := astro.DiffDeg2(p0.Lon(), p1.Lon()+aspect)
	prevU := astro.DiffDeg(p0.Lon(), p1.Lon()+aspect)

	t := jd
	for step > Precision {
		t = advance(t, step, backward)
		if p0, p1, err = sample(t); err != nil {
			return Result{}, err
		}
		sg := astro.DiffDeg2(p0.Lon(), p1.Lon()+aspect)
		u := astro.DiffDeg(p0.Lon(), p1.Lon()+aspect)
		if crossed(prevS, prevU, sg, u) {
			if lim.passed(t, backward, false) {
				return Result{Outcome: OutcomeLimitReached, JD: t, Pos: p0, Other: p1}, nil
			}
			backward = !backward
			step /= 2
		} else if lim.passed(t, backward, true) {
			return Result{Outcome: OutcomeLimitReached, JD: t, Pos: p0, Other: p1}, nil
		}
		prevS, prevU = sg, u
	}

	t = advance(t, step, backward)
	if p0, p1, err = sample(t); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeFound, JD: t, Pos: p0, Other: p1}, nil
}
