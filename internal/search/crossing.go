package search

import (
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// GoPast estimates when body passes the longitude fixed, stepping from jd.
// The result is the first sample beyond the crossing, so it is only as
// precise as the step; NextAspect refines it. While the body is retrograde
// its position is taken at the station preceding the sample, so a crossing
// made and undone inside one retrograde loop is still seen. The station is
// located with the body's default step whatever the crossing step is.
func (s *Searcher) GoPast(body ephem.Body, fixed, jd float64, opts Options) (Result, error) {
	r := s.start("gopast")
	return r.finish(s.goPast(r, body, fixed, jd, opts))
}

func defaultStep(body ephem.Body) float64 {
	if r := body.Retrogradation(); !r.Never {
		return r.MinDays
	}
	return ephem.DefaultMinRetroDays
}

func (s *Searcher) goPast(r *run, body ephem.Body, fixed, jd float64, opts Options) (Result, error) {
	step, err := resolveStep(opts.Step, defaultStep(body))
	if err != nil {
		return Result{}, err
	}
	canRetro := !body.Retrogradation().Never

	pos, err := r.body(jd, body)
	if err != nil {
		return Result{}, err
	}
	prevU := astro.DiffDeg(pos.Lon(), fixed)
	prevS := astro.DiffDeg2(pos.Lon(), fixed)

	t := jd
	for {
		t = advance(t, step, opts.Backward)
		if pos, err = r.body(t, body); err != nil {
			return Result{}, err
		}
		at := t
		if canRetro && pos.Speed() < 0 {
			station, err := s.nextRetro(r, body, t, Options{Backward: !opts.Backward})
			if err != nil {
				return Result{}, err
			}
			at, pos = station.JD, station.Pos
		}

		u := astro.DiffDeg(pos.Lon(), fixed)
		sg := astro.DiffDeg2(pos.Lon(), fixed)
		if crossed(prevS, prevU, sg, u) {
			return Result{Outcome: OutcomeFound, JD: at, Pos: pos}, nil
		}
		prevU, prevS = u, sg
	}
}
