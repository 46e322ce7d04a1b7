// Package aspectarian lists the events of a time window: exact aspects
// between pairs of bodies, stations and sign ingresses, sorted by time.
package aspectarian

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/jyotish"
	"github.com/litescript/ls-transits/internal/logging"
	"github.com/litescript/ls-transits/internal/search"
)

// resume is the offset past a found event before searching again.
const resume = 2 * search.Precision

// lunarStep is the step for pairs involving the Moon, which would cross
// more than half the zodiac relative to a slow body in the default step.
const lunarStep = 2

// Kind is the type of an event.
type Kind int

const (
	KindAspect Kind = iota
	KindStation
	KindIngress
)

func (k Kind) String() string {
	switch k {
	case KindAspect:
		return "aspect"
	case KindStation:
		return "station"
	case KindIngress:
		return "ingress"
	default:
		return "unknown"
	}
}

// ParseKind parses an event kind name; plurals are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aspect", "aspects":
		return KindAspect, nil
	case "station", "stations":
		return KindStation, nil
	case "ingress", "ingresses":
		return KindIngress, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
}

// Event is one entry of the aspectarian.
type Event struct {
	JD     float64
	Kind   Kind
	Body   ephem.Body
	Other  ephem.Body   // aspects only
	Aspect float64      // aspects only, on [0, 180]
	Retro  bool         // stations: true when turning retrograde
	Sign   jyotish.Sign // ingresses: sign entered
	Lon    float64      // longitude of Body at the event
}

// Title describes the event without its time.
func (e Event) Title() string {
	switch e.Kind {
	case KindAspect:
		return fmt.Sprintf("%s %s %s", e.Body, aspect.Name(e.Aspect), e.Other)
	case KindStation:
		if e.Retro {
			return fmt.Sprintf("%s Retro", e.Body)
		}
		return fmt.Sprintf("%s Direct", e.Body)
	case KindIngress:
		return fmt.Sprintf("%s Ingress %s", e.Body, e.Sign)
	default:
		return e.Body.String()
	}
}

// Options select what to scan.
type Options struct {
	Bodies  []ephem.Body
	Aspects []float64
	Kinds   []Kind // empty scans every kind
	Workers int    // concurrent searches; 0 uses GOMAXPROCS
}

// DefaultBodies are the Sun, the Moon and the planets.
var DefaultBodies = []ephem.Body{
	ephem.Sun, ephem.Moon, ephem.Mercury, ephem.Venus, ephem.Mars,
	ephem.Jupiter, ephem.Saturn, ephem.Uranus, ephem.Neptune, ephem.Pluto,
}

// DefaultOptions scans the major aspects between the default bodies.
func DefaultOptions() Options {
	return Options{
		Bodies:  append([]ephem.Body(nil), DefaultBodies...),
		Aspects: append([]float64(nil), aspect.Major...),
	}
}

// Scanner builds aspectarians. The oracle behind the searcher must be safe
// for concurrent use.
type Scanner struct {
	search *search.Searcher
	oracle ephem.Oracle
	opts   Options
	log    *logging.Logger
}

// New creates a Scanner. oracle is the one behind s, used to read the
// starting positions.
func New(s *search.Searcher, oracle ephem.Oracle, opts Options, log *logging.Logger) *Scanner {
	if log == nil {
		log = logging.Discard()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{search: s, oracle: oracle, opts: opts, log: log.With("aspectarian")}
}

// Skip reports pairs and aspects that cannot occur as seen from the Earth.
// Mercury keeps within 28° of the Sun. Venus stays within a sextile of the
// Sun and within a square of Mercury.
func Skip(a, b ephem.Body, asp float64) bool {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == ephem.Sun && b == ephem.Mercury:
		return asp > 28
	case a == ephem.Sun && b == ephem.Venus:
		return asp > 60
	case a == ephem.Mercury && b == ephem.Venus:
		return asp > 90
	}
	return false
}

func (sc *Scanner) wants(k Kind) bool {
	if len(sc.opts.Kinds) == 0 {
		return true
	}
	for _, w := range sc.opts.Kinds {
		if w == k {
			return true
		}
	}
	return false
}

// Scan lists the events from start to stop (Julian days, UT), sorted by
// time. The first search error cancels the scan.
func (sc *Scanner) Scan(ctx context.Context, start, stop float64) ([]Event, error) {
	if stop <= start {
		return nil, fmt.Errorf("%w: empty window %.4f to %.4f", search.ErrInvalidArgument, start, stop)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sc.opts.Workers)

	var (
		mu     sync.Mutex
		events []Event
	)
	collect := func(found []Event) {
		mu.Lock()
		events = append(events, found...)
		mu.Unlock()
	}

	tasks := 0
	bodies := sc.opts.Bodies
	if sc.wants(KindAspect) {
		for i, a := range bodies {
			for _, b := range bodies[i+1:] {
				for _, asp := range sc.opts.Aspects {
					if Skip(a, b, asp) {
						continue
					}
					tasks++
					g.Go(func() error {
						found, err := sc.aspects(ctx, a, b, asp, start, stop)
						collect(found)
						return err
					})
				}
			}
		}
	}
	for _, b := range bodies {
		if sc.wants(KindStation) && !b.Retrogradation().Never {
			tasks++
			g.Go(func() error {
				found, err := sc.stations(ctx, b, start, stop)
				collect(found)
				return err
			})
		}
		if sc.wants(KindIngress) {
			tasks++
			g.Go(func() error {
				found, err := sc.ingresses(ctx, b, start, stop)
				collect(found)
				return err
			})
		}
	}

	sc.log.Debug("scanning %.4f to %.4f with %d searches", start, stop, tasks)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].JD != events[j].JD {
			return events[i].JD < events[j].JD
		}
		if events[i].Body != events[j].Body {
			return events[i].Body < events[j].Body
		}
		return events[i].Kind < events[j].Kind
	})
	sc.log.Debug("found %d events", len(events))
	return events, nil
}

func (sc *Scanner) aspects(ctx context.Context, a, b ephem.Body, asp float64, start, stop float64) ([]Event, error) {
	var step float64
	if a == ephem.Moon || b == ephem.Moon {
		step = lunarStep
	}
	var found []Event
	for from := start; from < stop; {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		res, err := sc.search.NextAspectWith180(a, asp, search.BodyTarget(b), from, search.Options{Step: step, DaySpan: stop - from})
		if err != nil {
			return found, fmt.Errorf("%s %s %s: %w", a, aspect.Name(asp), b, err)
		}
		if !res.Found() || res.JD > stop {
			return found, nil
		}
		if res.JD < from {
			// Refound the event just left behind.
			from += resume
			continue
		}
		found = append(found, Event{JD: res.JD, Kind: KindAspect, Body: a, Other: b, Aspect: asp, Lon: res.Pos.Lon()})
		from = res.JD + resume
	}
	return found, nil
}

func (sc *Scanner) stations(ctx context.Context, b ephem.Body, start, stop float64) ([]Event, error) {
	var found []Event
	for from := start; from < stop; {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		before, err := sc.oracle.Compute(from, b, sc.search.Flags())
		if err != nil {
			return found, fmt.Errorf("%s at %.4f: %w", b, from, err)
		}
		res, err := sc.search.NextRetro(b, from, search.Options{DaySpan: stop - from})
		if err != nil {
			return found, fmt.Errorf("%s station: %w", b, err)
		}
		if !res.Found() || res.JD > stop {
			return found, nil
		}
		if res.JD < from {
			// Refound the event just left behind.
			from += resume
			continue
		}
		found = append(found, Event{JD: res.JD, Kind: KindStation, Body: b, Retro: before.Direct(), Lon: res.Pos.Lon()})
		from = res.JD + resume
	}
	return found, nil
}

// ingressTolerance is how close to the sign edge a body must be for a
// crossing to count as an ingress.
const ingressTolerance = 0.01

// ingresses follows each body from sign to sign. Bodies that can station
// are followed one direct run at a time, from a direct station to the next
// retrograde one: inside a run the body only moves forward, so every edge
// ahead of it is an ingress, and a sign left while retrograde is entered
// again in a later run. Retrograde crossings are not reported.
func (sc *Scanner) ingresses(ctx context.Context, b ephem.Body, start, stop float64) ([]Event, error) {
	if b.Retrogradation().Never {
		return sc.crossings(ctx, b, start, stop)
	}
	var found []Event
	for from := start; from < stop; {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		pos, err := sc.oracle.Compute(from, b, sc.search.Flags())
		if err != nil {
			return found, fmt.Errorf("%s at %.4f: %w", b, from, err)
		}
		st, err := sc.search.NextRetro(b, from, search.Options{DaySpan: stop - from})
		if err != nil {
			return found, fmt.Errorf("%s ingress: %w", b, err)
		}
		until := stop
		if st.Found() && st.JD < stop {
			until = st.JD
		}
		if pos.Speed() >= 0 {
			events, err := sc.crossings(ctx, b, from, until)
			found = append(found, events...)
			if err != nil {
				return found, err
			}
		}
		if until >= stop {
			break
		}
		from = until + resume
	}
	return found, nil
}

// crossings finds the sign edges b crosses between start and stop, where b
// keeps one direction throughout: the forward edge while direct, the rear
// edge while moving backward, like the mean node.
func (sc *Scanner) crossings(ctx context.Context, b ephem.Body, start, stop float64) ([]Event, error) {
	var found []Event
	for from := start; from < stop; {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		pos, err := sc.oracle.Compute(from, b, sc.search.Flags())
		if err != nil {
			return found, fmt.Errorf("%s at %.4f: %w", b, from, err)
		}
		sign := jyotish.SignOf(pos.Lon())
		edge, entered := int(sign)+1, jyotish.SignNorm(int(sign)+1)
		if pos.Speed() < 0 {
			edge, entered = int(sign), jyotish.SignNorm(int(sign)-1)
		}
		edgeLon := astro.NormalizeDeg(float64(edge) * 30)

		res, err := sc.search.NextAspect(b, 0, edgeLon, from, search.Options{DaySpan: stop - from})
		if err != nil {
			return found, fmt.Errorf("%s ingress: %w", b, err)
		}
		if !res.Found() || res.JD > stop {
			return found, nil
		}
		if res.JD < from {
			// Refound the event just left behind.
			from += resume
			continue
		}
		from = res.JD + resume

		at, err := sc.oracle.Compute(res.JD, b, sc.search.Flags())
		if err != nil {
			return found, fmt.Errorf("%s at %.4f: %w", b, res.JD, err)
		}
		if math.Abs(astro.DiffDeg2(at.Lon(), edgeLon)) > ingressTolerance {
			// A station hid the crossing; the body is not on the edge.
			sc.log.Debug("%s: skipping crossing of %.0f at jd %.4f, body at %.4f", b, edgeLon, res.JD, at.Lon())
			continue
		}
		found = append(found, Event{JD: res.JD, Kind: KindIngress, Body: b, Sign: entered, Lon: at.Lon()})
	}
	return found, nil
}
