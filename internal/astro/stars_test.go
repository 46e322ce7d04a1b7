package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStarCatalog_UniqueNames(t *testing.T) {
	cat := DefaultStarCatalog()
	require.NotEmpty(t, cat.Stars)

	seen := make(map[string]bool)
	for _, s := range cat.Stars {
		assert.False(t, seen[s.Name], "duplicate star %s", s.Name)
		seen[s.Name] = true
	}
}

func TestStarCatalog_Find(t *testing.T) {
	cat := DefaultStarCatalog()

	s, ok := cat.Find("  regulus ")
	require.True(t, ok)
	assert.Equal(t, StarRegulus, s.Name)

	_, ok = cat.Find("Nibiru")
	assert.False(t, ok)
}

func TestStar_EclipticJ2000(t *testing.T) {
	// Reference J2000 ecliptic longitudes of the royal stars.
	tests := []struct {
		name string
		lon  float64
		lat  float64
	}{
		{StarAldebaran, 69.79, -5.47},
		{StarRegulus, 149.83, 0.47},
		{StarAntares, 249.76, -4.57},
		{StarFomalhaut, 333.87, -21.13},
	}

	cat := DefaultStarCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := cat.Find(tt.name)
			require.True(t, ok)
			lon, lat := s.EclipticJ2000()
			assert.InDelta(t, tt.lon, lon, 0.1)
			assert.InDelta(t, tt.lat, lat, 0.1)
		})
	}
}

func TestStar_EclipticOfDate_Precesses(t *testing.T) {
	s, _ := DefaultStarCatalog().Find("Spica")
	lon0, _ := s.EclipticOfDate(J2000)
	lon100, _ := s.EclipticOfDate(J2000 + 36525)

	assert.InDelta(t, 5028.796/3600, DiffDeg2(lon100, lon0), 1e-9)
	assert.InDelta(t, PrecessionRate*36525, DiffDeg2(lon100, lon0), 1e-9)
}
