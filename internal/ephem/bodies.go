package ephem

import (
	"fmt"
	"strconv"
	"strings"
)

// Body identifies a solar system body. Values follow Swiss Ephemeris body
// numbering.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	MeanNode
	TrueNode
	MeanApogee
	OscuApogee
	Earth
	Chiron
	Pholus
	Ceres
	Pallas
	Juno
	Vesta
)

// Retrogradation describes whether and how long a body retrogrades, as seen
// from the Earth.
type Retrogradation struct {
	Never   bool    // the body never changes direction
	MinDays float64 // shortest known retrograde period
	MaxDays float64 // longest known retrograde period
}

// Default bounds for bodies without a measured retrograde period.
const (
	DefaultMinRetroDays = 10
	DefaultMaxRetroDays = 150
)

var neverRetro = Retrogradation{Never: true}

func canRetro(minDays, maxDays float64) Retrogradation {
	return Retrogradation{MinDays: minDays, MaxDays: maxDays}
}

// BodyInfo contains naming and lookup data for a body.
type BodyInfo struct {
	Body     Body
	Name     string
	HorizCmd string // Horizons COMMAND value, empty if Horizons has no such body
	Retro    Retrogradation
}

// Bodies is the canonical body table, indexed by Body.
var Bodies = []BodyInfo{
	{Sun, "Sun", "10", neverRetro},
	{Moon, "Moon", "301", neverRetro},
	{Mercury, "Mercury", "199", canRetro(16, 27)},
	{Venus, "Venus", "299", canRetro(37, 46)},
	{Mars, "Mars", "499", canRetro(56, 84)},
	{Jupiter, "Jupiter", "599", canRetro(114, 126)},
	{Saturn, "Saturn", "699", canRetro(129, 145)},
	{Uranus, "Uranus", "799", canRetro(145, 157)},
	{Neptune, "Neptune", "899", canRetro(153, 163)},
	{Pluto, "Pluto", "999", canRetro(153, 168)},
	{MeanNode, "Mean Node", "", neverRetro},
	{TrueNode, "True Node", "", neverRetro},
	{MeanApogee, "Mean Apogee", "", neverRetro},
	{OscuApogee, "Osculating Apogee", "", neverRetro},
	{Earth, "Earth", "399", neverRetro},
	{Chiron, "Chiron", "2060;", canRetro(125, 160)},
	{Pholus, "Pholus", "5145;", canRetro(125, 172)},
	{Ceres, "Ceres", "1;", canRetro(85, 109)},
	{Pallas, "Pallas", "2;", canRetro(46, 123)},
	{Juno, "Juno", "3;", canRetro(68, 116)},
	{Vesta, "Vesta", "4;", canRetro(81, 100)},
}

// Info returns the table entry for b.
func (b Body) Info() (BodyInfo, bool) {
	if b < 0 || int(b) >= len(Bodies) {
		return BodyInfo{}, false
	}
	return Bodies[b], true
}

// String returns the body name.
func (b Body) String() string {
	if info, ok := b.Info(); ok {
		return info.Name
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// Retrogradation returns the retrograde capability of b. Bodies outside the
// table get the default bounds.
func (b Body) Retrogradation() Retrogradation {
	if info, ok := b.Info(); ok {
		return info.Retro
	}
	return canRetro(DefaultMinRetroDays, DefaultMaxRetroDays)
}

// bodiesByName maps lowercase names, without spaces, to bodies.
var bodiesByName = func() map[string]Body {
	m := make(map[string]Body, len(Bodies)+4)
	for _, info := range Bodies {
		m[normalizeName(info.Name)] = info.Body
	}
	m["node"] = MeanNode
	m["rahu"] = MeanNode
	m["lilith"] = MeanApogee
	m["blackmoon"] = MeanApogee
	return m
}()

func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
}

// ParseBody resolves a body name (case-insensitive) or number.
func ParseBody(s string) (Body, error) {
	if b, ok := bodiesByName[normalizeName(s)]; ok {
		return b, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if _, ok := Body(n).Info(); ok {
			return Body(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, s)
}
