package jyotish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litescript/ls-transits/internal/astro"
)

func TestRamanHouses_Madhya(t *testing.T) {
	h := RamanHouses(100, 10, false)
	want := [12]float64{100, 130, 160, 190, 220, 250, 280, 310, 340, 10, 40, 70}
	for i := range want {
		assert.InDelta(t, 0, astro.DiffDeg2(h[i], want[i]), 1e-9, "house %d", i+1)
	}
}

func TestRamanHouses_UnequalQuadrants(t *testing.T) {
	h := RamanHouses(120, 0, false)
	assert.InDelta(t, 120, h[0], 1e-9)
	assert.InDelta(t, 0, h[9], 1e-9)
	assert.InDelta(t, 180, h[3], 1e-9)
	assert.InDelta(t, 300, h[6], 1e-9)
	// Tenth to first spans 120°: 40° houses. First to fourth spans 60°.
	assert.InDelta(t, 80, h[11], 1e-9)
	assert.InDelta(t, 40, h[10], 1e-9)
	assert.InDelta(t, 140, h[1], 1e-9)
	assert.InDelta(t, 160, h[2], 1e-9)
	for i := range h {
		opposite := h[(i+6)%12]
		assert.InDelta(t, 180, astro.DiffDeg(opposite, h[i]), 1e-9, "house %d", i+1)
	}
}

func TestRamanHouses_Sandhi(t *testing.T) {
	madhya := RamanHouses(100, 10, false)
	sandhi := RamanHouses(100, 10, true)
	for i := range madhya {
		assert.InDelta(t, 15, astro.DiffDeg(madhya[i], sandhi[i]), 1e-9, "house %d", i+1)
	}
}
