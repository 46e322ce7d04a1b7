package ephem

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/metrics"
)

// positionKey identifies one body or star sample. Bisection revisits the
// same epochs when it reverses, so exact keys are enough.
type positionKey struct {
	body  Body
	star  string
	jd    float64
	flags Flags
}

type housesKey struct {
	jd     float64
	flags  Flags
	obs    astro.Observer
	system astro.HouseSystem
}

// Cached is a read-through LRU cache in front of another oracle. Errors are
// not cached.
type Cached struct {
	next    Oracle
	pos     *lru.Cache[positionKey, Position]
	houses  *lru.Cache[housesKey, astro.Houses]
	metrics *metrics.Metrics
}

// NewCached wraps next with caches of size entries each.
func NewCached(next Oracle, size int, m *metrics.Metrics) (*Cached, error) {
	pos, err := lru.New[positionKey, Position](size)
	if err != nil {
		return nil, fmt.Errorf("position cache: %w", err)
	}
	houses, err := lru.New[housesKey, astro.Houses](size)
	if err != nil {
		return nil, fmt.Errorf("houses cache: %w", err)
	}
	return &Cached{next: next, pos: pos, houses: houses, metrics: m}, nil
}

// Name implements Oracle.
func (c *Cached) Name() string {
	return c.next.Name()
}

// Len returns the number of cached positions.
func (c *Cached) Len() int {
	return c.pos.Len()
}

// Purge drops all cached entries.
func (c *Cached) Purge() {
	c.pos.Purge()
	c.houses.Purge()
}

// Compute implements Oracle.
func (c *Cached) Compute(jd float64, body Body, flags Flags) (Position, error) {
	return c.lookup(positionKey{body: body, jd: jd, flags: flags}, func() (Position, error) {
		return c.next.Compute(jd, body, flags)
	})
}

// ComputeStar implements Oracle.
func (c *Cached) ComputeStar(name string, jd float64, flags Flags) (Position, error) {
	return c.lookup(positionKey{body: -1, star: normalizeName(name), jd: jd, flags: flags}, func() (Position, error) {
		return c.next.ComputeStar(name, jd, flags)
	})
}

func (c *Cached) lookup(key positionKey, fetch func() (Position, error)) (Position, error) {
	if p, ok := c.pos.Get(key); ok {
		c.metrics.CacheHit()
		return p, nil
	}
	c.metrics.CacheMiss()
	p, err := fetch()
	if err != nil {
		return Position{}, err
	}
	c.pos.Add(key, p)
	return p, nil
}

// ComputeHouses implements Oracle.
func (c *Cached) ComputeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	key := housesKey{jd: jd, flags: flags, obs: obs, system: system}
	if h, ok := c.houses.Get(key); ok {
		c.metrics.CacheHit()
		return h, nil
	}
	c.metrics.CacheMiss()
	h, err := c.next.ComputeHouses(jd, flags, obs, system)
	if err != nil {
		return astro.Houses{}, err
	}
	c.houses.Add(key, h)
	return h, nil
}
