// Package chart assembles the sky at one instant: body positions with their
// sign and nakshatra, the aspects between them, and optionally the house
// frame with the planets' strengths.
package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/jyotish"
)

// Planet is one body in a chart.
type Planet struct {
	Body      ephem.Body
	Pos       ephem.Position
	Sign      jyotish.Sign
	Degree    float64 // longitude within the sign
	Nakshatra jyotish.Nakshatra
	Pada      int // 0..3
	Navamsa   jyotish.Sign

	// Set for the seven classical planets.
	Classical   bool
	Exaltation  float64 // shashtiamsas, 0..60
	Residential float64 // 0..1, only when the chart has houses
	Bhava       int     // Raman bhava, from 1; 0 without houses
}

// Retro reports whether the planet moves backward.
func (p Planet) Retro() bool { return p.Pos.Speed() < 0 }

// Aspect is an aspect in orb between two planets of the chart.
type Aspect struct {
	A, B   ephem.Body
	Aspect float64
	aspect.Result
}

// Options control what a chart holds.
type Options struct {
	Bodies []ephem.Body
	Flags  ephem.Flags
	Orbs   *aspect.Table // nil uses aspect.DefaultTable

	Houses   bool
	Observer astro.Observer
	System   astro.HouseSystem
}

// Chart is the sky at JD.
type Chart struct {
	JD      float64
	Flags   ephem.Flags
	Planets []Planet
	Aspects []Aspect // tightest first

	Houses  *astro.Houses
	Bhavas  [12]float64 // Raman bhava madhyas
	Sandhis [12]float64 // Raman arambha sandhis
}

// Compute builds the chart for jd.
func Compute(o ephem.Oracle, jd float64, opts Options) (*Chart, error) {
	orbs := opts.Orbs
	if orbs == nil {
		orbs = aspect.DefaultTable()
	}
	flags := opts.Flags | ephem.FlagSpeed
	c := &Chart{JD: jd, Flags: flags}

	if opts.Houses {
		h, err := o.ComputeHouses(jd, flags, opts.Observer, opts.System)
		if err != nil {
			return nil, fmt.Errorf("houses: %w", err)
		}
		c.Houses = &h
		c.Bhavas = jyotish.RamanHouses(h.Asc, h.MC, false)
		c.Sandhis = jyotish.RamanHouses(h.Asc, h.MC, true)
	}

	for _, b := range opts.Bodies {
		pos, err := o.Compute(jd, b, flags)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b, err)
		}
		p, err := c.planet(b, pos)
		if err != nil {
			return nil, err
		}
		c.Planets = append(c.Planets, p)
	}

	c.Aspects = findAspects(c.Planets, orbs)
	return c, nil
}

func (c *Chart) planet(b ephem.Body, pos ephem.Position) (Planet, error) {
	lon := pos.Lon()
	p := Planet{
		Body:    b,
		Pos:     pos,
		Sign:    jyotish.SignOf(lon),
		Degree:  math.Mod(lon, 30),
		Navamsa: jyotish.Navamsa(lon),
	}
	p.Nakshatra, p.Pada = jyotish.NakshatraOf(lon)

	if b < ephem.Sun || b > ephem.Saturn {
		return p, nil
	}
	p.Classical = true
	ex, err := jyotish.ExaltationStrength(b, lon)
	if err != nil {
		return p, err
	}
	p.Exaltation = ex

	if c.Houses != nil {
		res, err := jyotish.ResidentialStrength(lon, c.Sandhis[:])
		if err != nil {
			return p, fmt.Errorf("%s: %w", b, err)
		}
		p.Residential = res
		p.Bhava = bhavaOf(lon, c.Sandhis)
	}
	return p, nil
}

// bhavaOf returns the bhava, from 1, whose arc of sandhis contains lon.
func bhavaOf(lon float64, sandhis [12]float64) int {
	for i := range sandhis {
		start, end := sandhis[i], sandhis[(i+1)%12]
		if astro.DiffDeg(lon, start) < astro.DiffDeg(end, start) {
			return i + 1
		}
	}
	return 12
}

// findAspects keeps, for each pair, the aspect with the smallest orb factor.
func findAspects(planets []Planet, orbs *aspect.Table) []Aspect {
	var out []Aspect
	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			p0 := aspect.Point{Lon: planets[i].Pos.Lon(), Speed: planets[i].Pos.Speed()}
			p1 := aspect.Point{Lon: planets[j].Pos.Lon(), Speed: planets[j].Pos.Speed()}

			var best *Aspect
			for _, asp := range orbs.Aspects {
				r := aspect.MatchOrbs180(p0, p1, asp, orbs.For(asp))
				if !r.Matched {
					continue
				}
				if best == nil || r.Factor < best.Factor {
					best = &Aspect{A: planets[i].Body, B: planets[j].Body, Aspect: asp, Result: r}
				}
			}
			if best != nil {
				out = append(out, *best)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Factor < out[j].Factor })
	return out
}

// Planet returns the chart entry for b.
func (c *Chart) Planet(b ephem.Body) (Planet, bool) {
	for _, p := range c.Planets {
		if p.Body == b {
			return p, true
		}
	}
	return Planet{}, false
}

// Relation returns the compound relation of a toward b in this chart, from
// -2 to 2. Both must be classical planets present in the chart.
func (c *Chart) Relation(a, b ephem.Body) (int, error) {
	pa, ok := c.Planet(a)
	if !ok {
		return 0, fmt.Errorf("%w: %s not in chart", jyotish.ErrInvalidArgument, a)
	}
	pb, ok := c.Planet(b)
	if !ok {
		return 0, fmt.Errorf("%w: %s not in chart", jyotish.ErrInvalidArgument, b)
	}
	return jyotish.CompoundRelation(a, b, pa.Sign, pb.Sign)
}
