package ephem

import (
	"sync"

	"github.com/litescript/ls-transits/internal/astro"
)

// Serialized allows one call at a time into the wrapped oracle. Use it for
// backends that are not safe for concurrent use or should not see parallel
// traffic.
type Serialized struct {
	mu   sync.Mutex
	next Oracle
}

// NewSerialized wraps next.
func NewSerialized(next Oracle) *Serialized {
	return &Serialized{next: next}
}

// Name implements Oracle.
func (s *Serialized) Name() string {
	return s.next.Name()
}

// Compute implements Oracle.
func (s *Serialized) Compute(jd float64, body Body, flags Flags) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Compute(jd, body, flags)
}

// ComputeStar implements Oracle.
func (s *Serialized) ComputeStar(name string, jd float64, flags Flags) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.ComputeStar(name, jd, flags)
}

// ComputeHouses implements Oracle.
func (s *Serialized) ComputeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.ComputeHouses(jd, flags, obs, system)
}
