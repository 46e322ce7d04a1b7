package aspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch180_Regression(t *testing.T) {
	// Body at 10 moving 1°/day, other at 95 moving 0.5°/day: 85° apart and
	// closing, so moving away from the square.
	res := Match180(Point{10, 1}, Point{95, 0.5}, Square, 5)
	assert.True(t, res.Matched)
	assert.InDelta(t, 5, res.Diff, 1e-12)
	assert.Equal(t, Separating, res.Applic)
	assert.InDelta(t, 1, res.Factor, 1e-12)
}

func TestMatch_Applic(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 Point
		aspect float64
		want   Applic
	}{
		{"above aspect, other faster", Point{95, 0.5}, Point{0, 1}, 90, Applying},
		{"above aspect, first faster", Point{95, 1}, Point{0, 0.5}, 90, Separating},
		{"below aspect, first faster", Point{85, 1}, Point{0, 0.5}, 90, Applying},
		{"below aspect, other faster", Point{85, 0.5}, Point{0, 1}, 90, Separating},
		{"equal speeds", Point{85, 1}, Point{0, 1}, 90, Stable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Match(tt.p0, tt.p1, tt.aspect, 6)
			assert.True(t, res.Matched)
			assert.InDelta(t, 5, res.Diff, 1e-12)
			assert.Equal(t, tt.want, res.Applic)
		})
	}
}

func TestMatch_Exact(t *testing.T) {
	res := Match(Point{120, 1}, Point{0, 0.1}, Trine, 8)
	assert.True(t, res.Matched)
	assert.Equal(t, 0.0, res.Diff)
	assert.Equal(t, 0.0, res.Factor)
	assert.Equal(t, Separating, res.Applic)

	res = Match(Point{120, 1}, Point{0, 1}, Trine, 8)
	assert.Equal(t, Stable, res.Applic)
}

func TestMatch_BoundaryInclusive(t *testing.T) {
	p1 := Point{Lon: 40, Speed: 0.2}
	for _, orb := range []float64{0.5, 2, 8} {
		assert.True(t, Match(Point{130 + orb, 1}, p1, Square, orb).Matched, "orb %v above", orb)
		assert.True(t, Match(Point{130 - orb, 1}, p1, Square, orb).Matched, "orb %v below", orb)
		assert.False(t, Match(Point{130 + orb + 1e-6, 1}, p1, Square, orb).Matched, "orb %v past above", orb)
		assert.False(t, Match(Point{130 - orb - 1e-6, 1}, p1, Square, orb).Matched, "orb %v past below", orb)
	}
}

func TestMatch_ConjunctionAcrossZero(t *testing.T) {
	res := Match(Point{359, 1}, Point{1, 0.5}, Conjunction, 3)
	assert.True(t, res.Matched)
	assert.InDelta(t, 2, res.Diff, 1e-12)
	assert.Equal(t, Applying, res.Applic)

	res = Match(Point{1, 1}, Point{359, 0.5}, Conjunction, 3)
	assert.True(t, res.Matched)
	assert.Equal(t, Separating, res.Applic)
}

func TestMatch_SwapSymmetry(t *testing.T) {
	points := []Point{{10, 1}, {95, 0.5}, {200, -0.3}, {359, 13}, {271, 0.05}}
	aspects := []float64{0, 60, 90, 120, 150, 180, 270}
	for _, a := range points {
		for _, b := range points {
			for _, asp := range aspects {
				fwd := Match(a, b, asp, 6)
				rev := Match(b, a, -asp, 6)
				assert.Equal(t, fwd.Matched, rev.Matched, "%v %v %v", a, b, asp)
				assert.Equal(t, fwd.Applic, rev.Applic, "%v %v %v", a, b, asp)

				fwd = Match180(a, b, asp, 6)
				rev = Match180(b, a, -asp, 6)
				assert.Equal(t, fwd.Matched, rev.Matched, "180 %v %v %v", a, b, asp)
			}
		}
	}
}

func TestMatch180_BothSides(t *testing.T) {
	p1 := Point{Lon: 100, Speed: 0}
	assert.True(t, Match180(Point{190, 1}, p1, Square, 1).Matched)
	assert.True(t, Match180(Point{10, 1}, p1, Square, 1).Matched)
	assert.False(t, Match(Point{10, 1}, p1, Square, 1).Matched)
	assert.True(t, Match(Point{10, 1}, p1, 270, 1).Matched)

	// Behind its partner and gaining, a body separates inside the square
	// and applies from outside it.
	res := Match180(Point{12, 1}, p1, Square, 3)
	assert.True(t, res.Matched)
	assert.Equal(t, Separating, res.Applic)
	res = Match180(Point{8, 1}, p1, Square, 3)
	assert.Equal(t, Applying, res.Applic)
}

func TestMatch180_Opposition(t *testing.T) {
	res := Match180(Point{180, 1}, Point{0, 0}, Opposition, 5)
	assert.True(t, res.Matched)
	assert.Equal(t, 0.0, res.Diff)

	// Exactly opposite is not a square.
	res = Match180(Point{180, 1}, Point{0, 0}, Square, 5)
	assert.False(t, res.Matched)
	assert.InDelta(t, 90, res.Diff, 1e-12)
}

func TestMatchOrbs(t *testing.T) {
	orbs := Orbs{Applying: 8, Separating: 2, Stable: 4}
	p1 := Point{Lon: 0, Speed: 0.5}

	// 6° short of the square, first body faster: applying, wide band.
	res := MatchOrbs(Point{84, 1}, p1, Square, orbs)
	assert.True(t, res.Matched)
	assert.Equal(t, Applying, res.Applic)
	assert.InDelta(t, 6.0/8, res.Factor, 1e-12)

	// 6° past: separating, outside the narrow band.
	res = MatchOrbs(Point{96, 1}, p1, Square, orbs)
	assert.False(t, res.Matched)
	assert.Equal(t, Separating, res.Applic)

	// 1.5° past: separating, inside the narrow band.
	res = MatchOrbs(Point{91.5, 1}, p1, Square, orbs)
	assert.True(t, res.Matched)
	assert.InDelta(t, 1.5/2, res.Factor, 1e-12)

	// Same speeds use the stable orb.
	res = MatchOrbs(Point{86.5, 0.5}, p1, Square, orbs)
	assert.True(t, res.Matched)
	assert.Equal(t, Stable, res.Applic)
	assert.InDelta(t, 3.5/4, res.Factor, 1e-12)
	assert.False(t, MatchOrbs(Point{85, 0.5}, p1, Square, orbs).Matched)
}

func TestMatchOrbs_SeparatingWider(t *testing.T) {
	orbs := Orbs{Applying: 2, Separating: 8, Stable: 4}
	p1 := Point{Lon: 0, Speed: 0.5}

	res := MatchOrbs(Point{96, 1}, p1, Square, orbs)
	assert.True(t, res.Matched)
	assert.Equal(t, Separating, res.Applic)
	assert.InDelta(t, 6.0/8, res.Factor, 1e-12)

	assert.False(t, MatchOrbs(Point{84, 1}, p1, Square, orbs).Matched)

	res = MatchOrbs(Point{89, 1}, p1, Square, orbs)
	assert.True(t, res.Matched)
	assert.InDelta(t, 0.5, res.Factor, 1e-12)
}

func TestMatchOrbs_EqualBands(t *testing.T) {
	res := MatchOrbs(Point{96, 1}, Point{0, 0.5}, Square, Orbs{Applying: 6, Separating: 6, Stable: 1})
	assert.True(t, res.Matched)
	assert.InDelta(t, 1, res.Factor, 1e-12)
}

func TestMatchOrbs180(t *testing.T) {
	orbs := Orbs{Applying: 8, Separating: 2, Stable: 4}
	res := MatchOrbs180(Point{10, 1}, Point{95, 0.5}, Square, orbs)
	assert.False(t, res.Matched)
	assert.Equal(t, Separating, res.Applic)

	res = MatchOrbs180(Point{10, 0.5}, Point{95, 1}, Square, orbs)
	assert.True(t, res.Matched)
	assert.Equal(t, Applying, res.Applic)
	assert.InDelta(t, 5.0/8, res.Factor, 1e-12)
}

func TestApplic_String(t *testing.T) {
	assert.Equal(t, "applying", Applying.String())
	assert.Equal(t, "separating", Separating.String())
	assert.Equal(t, "stable", Stable.String())
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{270, 90},
		{300, 60},
		{-120, 120},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Fold(tt.in), 1e-9, "Fold(%v)", tt.in)
	}
}
