package aspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Conjunction", Name(0))
	assert.Equal(t, "Square", Name(90))
	assert.Equal(t, "Septile", Name(360/7.0))
	assert.Equal(t, "BiUndecile", Name(720/11.0))
	assert.Equal(t, "17°", Name(17))
}

func TestParse(t *testing.T) {
	for in, want := range map[string]float64{
		"square":      90,
		" Quincunx ":  150,
		"semisextile": 30,
		"17":          17,
		"22.5°":       22.5,
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := Parse("grand cross")
	assert.Error(t, err)
}

func TestMajor_AreNamed(t *testing.T) {
	for _, a := range Major {
		assert.NotContains(t, Name(a), "°")
	}
}
