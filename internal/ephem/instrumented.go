package ephem

import (
	"time"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/metrics"
)

// Instrumented records call counts and latency for the wrapped oracle.
type Instrumented struct {
	next    Oracle
	metrics *metrics.Metrics
}

// NewInstrumented wraps next. A nil m records nothing.
func NewInstrumented(next Oracle, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

// Name implements Oracle.
func (i *Instrumented) Name() string {
	return i.next.Name()
}

// Compute implements Oracle.
func (i *Instrumented) Compute(jd float64, body Body, flags Flags) (Position, error) {
	start := time.Now()
	p, err := i.next.Compute(jd, body, flags)
	i.metrics.ObserveOracleCall(i.next.Name(), "body", time.Since(start), err)
	return p, err
}

// ComputeStar implements Oracle.
func (i *Instrumented) ComputeStar(name string, jd float64, flags Flags) (Position, error) {
	start := time.Now()
	p, err := i.next.ComputeStar(name, jd, flags)
	i.metrics.ObserveOracleCall(i.next.Name(), "star", time.Since(start), err)
	return p, err
}

// ComputeHouses implements Oracle.
func (i *Instrumented) ComputeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	start := time.Now()
	h, err := i.next.ComputeHouses(jd, flags, obs, system)
	i.metrics.ObserveOracleCall(i.next.Name(), "houses", time.Since(start), err)
	return h, err
}
