package search

import (
	"fmt"

	"github.com/litescript/ls-transits/internal/ephem"
)

// MinRetroTime returns a lower bound, in days, on the retrograde period of
// body. It is the default step of the direction-change search.
func MinRetroTime(body ephem.Body) (float64, error) {
	r := body.Retrogradation()
	if r.Never {
		return 0, fmt.Errorf("%w: %s", ErrInvalidBody, body)
	}
	return r.MinDays, nil
}

// MaxRetroTime returns an upper bound, in days, on the retrograde period of
// body.
func MaxRetroTime(body ephem.Body) (float64, error) {
	r := body.Retrogradation()
	if r.Never {
		return 0, fmt.Errorf("%w: %s", ErrInvalidBody, body)
	}
	return r.MaxDays, nil
}

// NextRetro finds the next time body changes direction, from direct to
// retrograde or the reverse, starting at jd. The default step is the
// body's minimum retrograde period, so no retrograde loop is stepped over.
func (s *Searcher) NextRetro(body ephem.Body, jd float64, opts Options) (Result, error) {
	r := s.start("retro")
	return r.finish(s.nextRetro(r, body, jd, opts))
}

func (s *Searcher) nextRetro(r *run, body ephem.Body, jd float64, opts Options) (Result, error) {
	minDays, err := MinRetroTime(body)
	if err != nil {
		return Result{}, err
	}
	step, err := resolveStep(opts.Step, minDays)
	if err != nil {
		return Result{}, err
	}
	lim := newLimit(jd, opts.DaySpan, opts.Backward)
	backward := opts.Backward

	pos, err := r.body(jd, body)
	if err != nil {
		return Result{}, err
	}
	prev := pos.Direct()

	t := jd
	for step > Precision {
		t = advance(t, step, backward)
		if pos, err = r.body(t, body); err != nil {
			return Result{}, err
		}
		if cur := pos.Direct(); cur != prev {
			if lim.passed(t, backward, false) {
				return Result{Outcome: OutcomeLimitReached, JD: t, Pos: pos}, nil
			}
			step /= 2
			backward = !backward
			prev = cur
		} else if lim.passed(t, backward, true) {
			return Result{Outcome: OutcomeLimitReached, JD: t, Pos: pos}, nil
		}
	}

	// The change lies within one step either side; settle on the middle.
	t = advance(t, step, backward)
	if pos, err = r.body(t, body); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeFound, JD: t, Pos: pos}, nil
}
