package ephem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodies_IndexedByBody(t *testing.T) {
	for i, info := range Bodies {
		assert.Equal(t, Body(i), info.Body, info.Name)
	}
	assert.Equal(t, Vesta, Body(20))
}

func TestBody_Retrogradation(t *testing.T) {
	for _, b := range []Body{Sun, Moon, MeanNode, TrueNode, MeanApogee, OscuApogee, Earth} {
		assert.True(t, b.Retrogradation().Never, b.String())
	}

	r := Mercury.Retrogradation()
	assert.False(t, r.Never)
	assert.Equal(t, 16.0, r.MinDays)
	assert.Equal(t, 27.0, r.MaxDays)

	for _, info := range Bodies {
		if !info.Retro.Never {
			assert.Less(t, info.Retro.MinDays, info.Retro.MaxDays, info.Name)
		}
	}

	unknown := Body(42).Retrogradation()
	assert.Equal(t, Retrogradation{MinDays: DefaultMinRetroDays, MaxDays: DefaultMaxRetroDays}, unknown)
}

func TestParseBody(t *testing.T) {
	tests := map[string]Body{
		"Mars":              Mars,
		" mercury ":         Mercury,
		"mean node":         MeanNode,
		"MeanNode":          MeanNode,
		"rahu":              MeanNode,
		"lilith":            MeanApogee,
		"5":                 Jupiter,
		"true node":         TrueNode,
		"Osculating Apogee": OscuApogee,
	}
	for in, want := range tests {
		got, err := ParseBody(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"Vulcan", "99", ""} {
		_, err := ParseBody(in)
		assert.ErrorIs(t, err, ErrUnknownBody, in)
	}
}

func TestBody_String(t *testing.T) {
	assert.Equal(t, "Saturn", Saturn.String())
	assert.Equal(t, "Body(77)", Body(77).String())
}
