// Package ephem provides planetary positions and house cusps to the event
// searches.
package ephem

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/metrics"
)

var (
	ErrUnknownBody            = errors.New("unknown body")
	ErrUnknownStar            = errors.New("unknown fixed star")
	ErrUnsupportedHouseSystem = astro.ErrUnsupportedHouseSystem
)

// Position is an ecliptic state: longitude, latitude, distance (AU) and
// their speeds per day. Angles are in degrees.
type Position [6]float64

// Lon returns the ecliptic longitude.
func (p Position) Lon() float64 { return p[0] }

// Lat returns the ecliptic latitude.
func (p Position) Lat() float64 { return p[1] }

// Dist returns the distance in AU.
func (p Position) Dist() float64 { return p[2] }

// Speed returns the longitude speed in degrees per day.
func (p Position) Speed() float64 { return p[3] }

// Direct reports whether the body moves forward in longitude. A stationary
// body counts as not direct.
func (p Position) Direct() bool { return p[3] > 0 }

// Flags select the reference frame. They are passed through the searches to
// the oracle unchanged.
type Flags uint32

// Flag values follow Swiss Ephemeris numbering so flag words can be shared
// with other tools.
const (
	FlagHeliocentric Flags = 8
	FlagTruePos      Flags = 16
	FlagSpeed        Flags = 256
	FlagTopocentric  Flags = 32 * 1024
	FlagSidereal     Flags = 64 * 1024
)

// DefaultFlags requests speeds in the tropical geocentric frame.
const DefaultFlags = FlagSpeed

// Has reports whether all bits of g are set.
func (f Flags) Has(g Flags) bool { return f&g == g }

// Oracle computes positions and house cusps. Implementations must be safe
// for concurrent use, serializing internally where the backend needs it.
type Oracle interface {
	// Name returns the backend name for display/logging.
	Name() string

	// Compute returns the position of body at jd (UT).
	Compute(jd float64, body Body, flags Flags) (Position, error)

	// ComputeStar returns the position of a named fixed star at jd.
	ComputeStar(name string, jd float64, flags Flags) (Position, error)

	// ComputeHouses returns the house cusps for an observer at jd.
	ComputeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error)
}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeAnalytic Mode = iota // Offline mean-element theory (default)
	ModeHorizons             // JPL Horizons state vectors
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAnalytic:
		return "analytic"
	case ModeHorizons:
		return "horizons"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "analytic":
		return ModeAnalytic, nil
	case "horizons":
		return ModeHorizons, nil
	default:
		return ModeAnalytic, fmt.Errorf("unknown ephemeris backend %q", s)
	}
}

// Config is the ephemeris configuration. It is fixed when the oracle is
// built and never changes afterwards.
type Config struct {
	Mode           Mode
	HorizonsURL    string
	RequestTimeout time.Duration
	CacheSize      int // entries; 0 disables caching
	Ayanamsa       Ayanamsa
	Observer       astro.Observer // topocentric position, used with FlagTopocentric
}

// DefaultConfig returns the offline configuration.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeAnalytic,
		HorizonsURL:    HorizonsAPIURL,
		RequestTimeout: RequestTimeout,
		CacheSize:      4096,
		Ayanamsa:       AyanamsaLahiri,
	}
}

// Open builds the oracle chain for cfg: backend, then LRU cache, then
// metrics. The Horizons backend is additionally serialized.
func Open(cfg Config, m *metrics.Metrics) (Oracle, error) {
	var o Oracle
	switch cfg.Mode {
	case ModeAnalytic:
		o = NewAnalytic(cfg)
	case ModeHorizons:
		o = NewSerialized(NewHorizons(cfg))
	default:
		return nil, fmt.Errorf("unsupported ephemeris mode %v", cfg.Mode)
	}
	if cfg.CacheSize > 0 {
		c, err := NewCached(o, cfg.CacheSize, m)
		if err != nil {
			return nil, err
		}
		o = c
	}
	return NewInstrumented(o, m), nil
}
