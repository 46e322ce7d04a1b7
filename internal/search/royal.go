package search

import (
	"math"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// RoyalStars is the Saturn four-stars index: the longitudes of Saturn and
// the four royal stars, and Saturn's distance from the midpoint of the two
// royal stars around it, as a percentage of half their separation. The
// index is 0 at the midpoint and 100 on a star.
type RoyalStars struct {
	Saturn    float64
	Aldebaran float64
	Regulus   float64
	Antares   float64
	Fomalhaut float64
	Index     float64
}

// SaturnRoyalStars computes the Saturn four-stars index at jd.
func (s *Searcher) SaturnRoyalStars(jd float64) (RoyalStars, error) {
	r := s.start("royal_stars")
	rs, err := s.saturnRoyalStars(r, jd)
	if _, err := r.finish(Result{Outcome: OutcomeFound, JD: jd}, err); err != nil {
		return RoyalStars{}, err
	}
	return rs, nil
}

func (s *Searcher) saturnRoyalStars(r *run, jd float64) (RoyalStars, error) {
	var rs RoyalStars

	sat, err := r.body(jd, ephem.Saturn)
	if err != nil {
		return rs, err
	}
	rs.Saturn = sat.Lon()

	for _, st := range []struct {
		name string
		dst  *float64
	}{
		{astro.StarAldebaran, &rs.Aldebaran},
		{astro.StarRegulus, &rs.Regulus},
		{astro.StarAntares, &rs.Antares},
		{astro.StarFomalhaut, &rs.Fomalhaut},
	} {
		p, err := r.target(jd, StarTarget(st.name))
		if err != nil {
			return RoyalStars{}, err
		}
		*st.dst = p.Lon()
	}

	// Stars bracketing Saturn, in zodiacal order.
	var a, b float64
	switch {
	case rs.Saturn <= rs.Aldebaran || rs.Saturn > rs.Fomalhaut:
		a, b = rs.Fomalhaut, rs.Aldebaran
	case rs.Saturn <= rs.Regulus:
		a, b = rs.Aldebaran, rs.Regulus
	case rs.Saturn <= rs.Antares:
		a, b = rs.Regulus, rs.Antares
	default:
		a, b = rs.Antares, rs.Fomalhaut
	}

	mid := astro.Midpoint(a, b)
	dist := math.Abs(astro.DiffDeg2(rs.Saturn, mid))
	near := a
	if math.Abs(astro.DiffDeg2(rs.Saturn, a)) > math.Abs(astro.DiffDeg2(rs.Saturn, b)) {
		near = b
	}
	rs.Index = dist / (math.Abs(astro.DiffDeg2(mid, near)) / 100)

	r.s.log.Debug("royal stars at jd %.4f: saturn %.4f index %.2f", jd, rs.Saturn, rs.Index)
	return rs, nil
}
