// Package search finds astronomical events over continuous time: direction
// changes (stations), crossings of fixed longitudes, and exact aspects to
// fixed points, other bodies, stars and house cusps.
//
// Every search steps through time with the oracle and, once the tracked
// sign changes, halves the step and reverses until the step is below
// Precision. Searches bounded by Options.DaySpan report OutcomeLimitReached
// instead of running on.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/logging"
	"github.com/litescript/ls-transits/internal/metrics"
)

// Precision is half a second of time, in days.
const Precision = (1.0 / 86400) / 2

var (
	// ErrInvalidBody is returned when a direction change is requested for a
	// body that never retrogrades.
	ErrInvalidBody = errors.New("body never changes direction")

	// ErrInvalidArgument is returned for out-of-range inputs.
	ErrInvalidArgument = errors.New("invalid argument")
)

// OracleError wraps a failure of the ephemeris oracle during a search.
type OracleError struct {
	Target string
	JD     float64
	Err    error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle failed for %s at jd %.6f: %v", e.Target, e.JD, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// Outcome tells whether a search found its event or ran into its time limit.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeLimitReached
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeLimitReached:
		return "limit"
	default:
		return "unknown"
	}
}

// Options control a search.
type Options struct {
	Step     float64 // initial step in days; 0 picks the default for the search
	Backward bool    // search before the start time
	DaySpan  float64 // time limit in days; 0 means unlimited
}

// Result is the outcome of a search. On OutcomeLimitReached, JD and the
// positions describe the sample that crossed the limit.
type Result struct {
	Outcome Outcome
	JD      float64
	Pos     ephem.Position // searched body or star
	Other   ephem.Position // second body or star, for two-body searches
	Houses  astro.Houses   // cusps and angles, for cusp searches
}

// Found reports whether the event was found.
func (r Result) Found() bool {
	return r.Outcome == OutcomeFound
}

// Target is a moving body or a fixed star.
type Target struct {
	Body ephem.Body
	Star string // when set, Body is ignored
}

// BodyTarget targets a body.
func BodyTarget(b ephem.Body) Target {
	return Target{Body: b}
}

// StarTarget targets a fixed star by name.
func StarTarget(name string) Target {
	return Target{Star: name}
}

// IsStar reports whether t is a fixed star.
func (t Target) IsStar() bool {
	return t.Star != ""
}

func (t Target) String() string {
	if t.IsStar() {
		return t.Star
	}
	return t.Body.String()
}

// Searcher runs event searches against an oracle. It holds no mutable state
// and is safe for concurrent use when the oracle is.
type Searcher struct {
	oracle  ephem.Oracle
	flags   ephem.Flags
	log     *logging.Logger
	metrics *metrics.Metrics
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger for convergence traces.
func WithLogger(l *logging.Logger) Option {
	return func(s *Searcher) { s.log = l.With("search") }
}

// WithMetrics sets the metric set for search outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Searcher) { s.metrics = m }
}

// New creates a Searcher. flags are passed to every oracle call; FlagSpeed
// is always added since searches need speeds.
func New(oracle ephem.Oracle, flags ephem.Flags, opts ...Option) *Searcher {
	s := &Searcher{
		oracle: oracle,
		flags:  flags | ephem.FlagSpeed,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Flags returns the flags passed to the oracle.
func (s *Searcher) Flags() ephem.Flags {
	return s.flags
}

// run tracks one search invocation: oracle access and sample count.
type run struct {
	s       *Searcher
	kind    string
	samples int
}

func (s *Searcher) start(kind string) *run {
	return &run{s: s, kind: kind}
}

func (r *run) body(jd float64, b ephem.Body) (ephem.Position, error) {
	r.samples++
	p, err := r.s.oracle.Compute(jd, b, r.s.flags)
	if err != nil {
		return ephem.Position{}, &OracleError{Target: b.String(), JD: jd, Err: err}
	}
	return p, nil
}

func (r *run) target(jd float64, t Target) (ephem.Position, error) {
	if !t.IsStar() {
		return r.body(jd, t.Body)
	}
	r.samples++
	p, err := r.s.oracle.ComputeStar(t.Star, jd, r.s.flags)
	if err != nil {
		return ephem.Position{}, &OracleError{Target: t.Star, JD: jd, Err: err}
	}
	return p, nil
}

func (r *run) houses(jd float64, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	r.samples++
	h, err := r.s.oracle.ComputeHouses(jd, r.s.flags, obs, system)
	if err != nil {
		return astro.Houses{}, &OracleError{Target: "houses " + system.String(), JD: jd, Err: err}
	}
	return h, nil
}

// finish logs and records a completed search.
func (r *run) finish(res Result, err error) (Result, error) {
	outcome := res.Outcome.String()
	if err != nil {
		outcome = "error"
	}
	r.s.metrics.ObserveSearch(r.kind, outcome, r.samples)
	if err != nil {
		r.s.log.Debug("%s failed after %d samples: %v", r.kind, r.samples, err)
		return Result{}, err
	}
	r.s.log.Debug("%s %s at jd %.6f after %d samples", r.kind, outcome, res.JD, r.samples)
	return res, nil
}

// advance moves jd by one step in the given direction.
func advance(jd, step float64, backward bool) float64 {
	if backward {
		return jd - step
	}
	return jd + step
}

// resolveStep validates a caller step, falling back to def when zero.
func resolveStep(step, def float64) (float64, error) {
	if step == 0 {
		return def, nil
	}
	step = math.Abs(step)
	if step <= Precision || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0, fmt.Errorf("%w: step %v", ErrInvalidArgument, step)
	}
	return step, nil
}

// limit is the time bound of a search.
type limit struct {
	active  bool
	forward bool
	stop    float64
}

func newLimit(jd, span float64, backward bool) limit {
	span = math.Abs(span)
	if span == 0 {
		return limit{}
	}
	return limit{active: true, forward: !backward, stop: advance(jd, span, backward)}
}

// passed reports whether jd lies beyond the stop time. The check only
// applies while stepping in the direction given by along: true for samples
// taken along the search direction, false for samples taken against it.
func (l limit) passed(jd float64, backward, along bool) bool {
	if !l.active || (backward != l.forward) != along {
		return false
	}
	if l.forward {
		return jd > l.stop
	}
	return jd < l.stop
}

// crossed reports a pass through zero of the signed difference, as opposed
// to a wrap through the opposite point: the sign flips and the unsigned
// difference jumps by more than half a circle. A sample exactly on zero
// counts as positive, so an exact hit is a crossing.
func crossed(prevSigned, prevUnsigned, signed, unsigned float64) bool {
	return (prevSigned >= 0) != (signed >= 0) && math.Abs(prevUnsigned-unsigned) > 180
}

// nearer merges the results of searching an aspect and its negation: a
// found result beats a limit, and between two found results the one closer
// to the start wins.
func nearer(a, b Result, backward bool) Result {
	switch {
	case a.Outcome != b.Outcome:
		if b.Found() {
			return b
		}
		return a
	case !a.Found():
		return a
	case backward && b.JD > a.JD:
		return b
	case !backward && b.JD < a.JD:
		return b
	}
	return a
}

// foldAspect maps an aspect onto [0, 180].
func foldAspect(aspect float64) float64 {
	return math.Abs(astro.DiffDeg2(0, aspect))
}
