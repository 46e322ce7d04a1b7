package aspect

import (
	"math"

	"github.com/litescript/ls-transits/internal/astro"
)

// Applic tells how the distance between two points evolves with respect to
// the aspect.
type Applic int

const (
	Applying   Applic = -1
	Stable     Applic = 0
	Separating Applic = 1
)

func (a Applic) String() string {
	switch a {
	case Applying:
		return "applying"
	case Separating:
		return "separating"
	default:
		return "stable"
	}
}

// Point is a longitude and its speed, in degrees and degrees per day.
type Point struct {
	Lon   float64
	Speed float64
}

// Result is the classification of two points against an aspect.
type Result struct {
	Matched bool
	Diff    float64 // distance from the exact aspect, degrees, >= 0
	Applic  Applic
	Factor  float64 // Diff relative to the orb in use; 0 when exact
}

// Orbs are the orbs allowed while an aspect applies, while it separates,
// and when both points move at the same speed.
type Orbs struct {
	Applying   float64 `toml:"applying"`
	Separating float64 `toml:"separating"`
	Stable     float64 `toml:"stable"`
}

// Symmetric returns orbs equal in every state.
func Symmetric(orb float64) Orbs {
	return Orbs{Applying: orb, Separating: orb, Stable: orb}
}

// Match checks whether p0 and p1 form aspect (degrees, [0, 360), counted
// from p1 to p0) within orb. A negative aspect counts the other way.
func Match(p0, p1 Point, aspect, orb float64) Result {
	aspect = astro.NormalizeDeg(aspect)
	dev := astro.DiffDeg2(astro.DiffDeg(p0.Lon, p1.Lon), aspect)
	return classify(dev, p0.Speed, p1.Speed, orb, false)
}

// Match180 is Match with aspect on [0, 180], on either side of p1.
func Match180(p0, p1 Point, aspect, orb float64) Result {
	aspect = Fold(aspect)
	signed := astro.DiffDeg2(p0.Lon, p1.Lon)
	dev := math.Abs(signed) - aspect
	return classify(dev, p0.Speed, p1.Speed, orb, signed <= 0)
}

// MatchOrbs is Match with orbs depending on whether the aspect applies or
// separates.
func MatchOrbs(p0, p1 Point, aspect float64, orbs Orbs) Result {
	return matchOrbs(p0, p1, aspect, orbs, Match)
}

// MatchOrbs180 is Match180 with orbs depending on whether the aspect
// applies or separates.
func MatchOrbs180(p0, p1 Point, aspect float64, orbs Orbs) Result {
	return matchOrbs(p0, p1, aspect, orbs, Match180)
}

func matchOrbs(p0, p1 Point, aspect float64, orbs Orbs, match func(p0, p1 Point, aspect, orb float64) Result) Result {
	app := math.Abs(orbs.Applying)
	sep := math.Abs(orbs.Separating)
	switch {
	case p0.Speed == p1.Speed:
		return match(p0, p1, aspect, math.Abs(orbs.Stable))
	case app == sep:
		return match(p0, p1, aspect, app)
	}

	// Match against the wider band, then narrow down if the state calls
	// for the other one.
	wide, narrow, wideState := app, sep, Applying
	if sep > app {
		wide, narrow, wideState = sep, app, Separating
	}
	res := match(p0, p1, aspect, wide)
	if !res.Matched || res.Applic == wideState {
		return res
	}
	if res.Diff <= narrow {
		res.Factor = factor(res.Diff, narrow)
		return res
	}
	res.Matched = false
	return res
}

// classify turns a signed deviation from the aspect into a result. Above
// the aspect the points are applying when p1 is faster; below it, when p0
// is faster. flip swaps the two for the far side of p1.
func classify(dev, speed0, speed1, orb float64, flip bool) Result {
	orb = math.Abs(orb)
	if dev == 0 {
		res := Result{Matched: true, Applic: Stable}
		if speed0 != speed1 {
			res.Applic = Separating
		}
		return res
	}

	var applic Applic
	switch {
	case speed1 > speed0:
		applic = Applying
	case speed1 < speed0:
		applic = Separating
	}
	if (dev < 0) != flip {
		applic = -applic
	}

	diff := math.Abs(dev)
	return Result{
		Matched: diff <= orb,
		Diff:    diff,
		Applic:  applic,
		Factor:  factor(diff, orb),
	}
}

func factor(diff, orb float64) float64 {
	if diff == 0 {
		return 0
	}
	if orb == 0 {
		return math.Inf(1)
	}
	return diff / orb
}

// Fold maps an aspect onto [0, 180], the smaller of the two arcs.
func Fold(aspect float64) float64 {
	return math.Abs(astro.DiffDeg2(0, aspect))
}
