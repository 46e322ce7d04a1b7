package search

import (
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// yearsStep is the step of the solar return search, in days.
const yearsStep = 120

// YearsDiff counts the years from jd1 to jd2, one year being one return of
// the Sun to its longitude at jd1 (a solar return, so the length depends on
// the zodiac selected by the flags). The result is negative when jd2 is
// before jd1.
func (s *Searcher) YearsDiff(jd1, jd2 float64) (float64, error) {
	r := s.start("years")
	years, err := s.yearsDiff(r, jd1, jd2)
	res := Result{Outcome: OutcomeFound, JD: jd2}
	if _, err := r.finish(res, err); err != nil {
		return 0, err
	}
	return years, nil
}

func (s *Searcher) yearsDiff(r *run, jd1, jd2 float64) (float64, error) {
	const corr = 2 * Precision

	pos1, err := r.body(jd1, ephem.Sun)
	if err != nil {
		return 0, err
	}
	pos2, err := r.body(jd2, ephem.Sun)
	if err != nil {
		return 0, err
	}

	var years float64
	switch {
	case jd1 < jd2:
		frac := astro.DiffDeg(pos2.Lon(), pos1.Lon()) / 360
		at := jd1
		for {
			res, err := s.nextAspect(r, ephem.Sun, 0, pos1.Lon(), at+corr, Options{Step: yearsStep})
			if err != nil {
				return 0, err
			}
			at = res.JD
			if at+corr >= jd2 {
				break
			}
			years++
		}
		years += frac
	case jd1 > jd2:
		frac := astro.DiffDeg(pos1.Lon(), pos2.Lon()) / 360
		at := jd1
		for {
			res, err := s.nextAspect(r, ephem.Sun, 0, pos1.Lon(), at-corr, Options{Step: yearsStep, Backward: true})
			if err != nil {
				return 0, err
			}
			at = res.JD
			if at-corr <= jd2 {
				break
			}
			years--
		}
		years -= frac
	}
	return years, nil
}
