package jyotish

import (
	"fmt"

	"github.com/litescript/ls-transits/internal/ephem"
)

// Relation is the disposition of one planet toward another.
type Relation int

const (
	Enemy   Relation = -1
	Neutral Relation = 0
	Friend  Relation = 1
)

func (r Relation) String() string {
	switch r {
	case Enemy:
		return "enemy"
	case Friend:
		return "friend"
	default:
		return "neutral"
	}
}

// natural holds the permanent relations, by regarding planet then regarded
// planet. Rows are not mirror images: the Sun is neutral to Mercury while
// Mercury is a friend of the Sun.
var natural = map[ephem.Body]map[ephem.Body]Relation{
	ephem.Sun: {
		ephem.Moon: Friend, ephem.Mars: Friend, ephem.Jupiter: Friend,
		ephem.Mercury: Neutral,
		ephem.Venus:   Enemy, ephem.Saturn: Enemy,
	},
	ephem.Moon: {
		ephem.Sun: Friend, ephem.Mercury: Friend,
		ephem.Mars: Neutral, ephem.Jupiter: Neutral, ephem.Venus: Neutral, ephem.Saturn: Neutral,
	},
	ephem.Mercury: {
		ephem.Sun: Friend, ephem.Venus: Friend,
		ephem.Mars: Neutral, ephem.Jupiter: Neutral, ephem.Saturn: Neutral,
		ephem.Moon: Enemy,
	},
	ephem.Venus: {
		ephem.Mercury: Friend, ephem.Saturn: Friend,
		ephem.Mars: Neutral, ephem.Jupiter: Neutral,
		ephem.Sun: Enemy, ephem.Moon: Enemy,
	},
	ephem.Mars: {
		ephem.Sun: Friend, ephem.Moon: Friend, ephem.Jupiter: Friend,
		ephem.Venus: Neutral, ephem.Saturn: Neutral,
		ephem.Mercury: Enemy,
	},
	ephem.Jupiter: {
		ephem.Sun: Friend, ephem.Moon: Friend, ephem.Mars: Friend,
		ephem.Saturn:  Neutral,
		ephem.Mercury: Enemy, ephem.Venus: Enemy,
	},
	ephem.Saturn: {
		ephem.Mercury: Friend, ephem.Venus: Friend,
		ephem.Jupiter: Neutral,
		ephem.Sun:     Enemy, ephem.Moon: Enemy, ephem.Mars: Enemy,
	},
}

// NaturalRelation returns the permanent (naisargika) relation of a toward b.
// Both must be distinct classical planets.
func NaturalRelation(a, b ephem.Body) (Relation, error) {
	row, ok := natural[a]
	if !ok {
		return Neutral, fmt.Errorf("%w: %s is not a classical planet", ErrInvalidArgument, a)
	}
	r, ok := row[b]
	if !ok {
		return Neutral, fmt.Errorf("%w: no relation of %s toward %s", ErrInvalidArgument, a, b)
	}
	return r, nil
}

// TemporalRelation returns the temporary (tatkalika) relation between
// planets in signs a and b: friends when within three signs either way.
func TemporalRelation(a, b Sign) Relation {
	d := SignDiff2(int(a), int(b))
	if d >= -3 && d <= 3 {
		return Friend
	}
	return Enemy
}

// CompoundRelation combines the natural and temporal relations of a toward
// b into the five-fold scale, from -2 (bitter enemy) to 2 (great friend).
func CompoundRelation(a, b ephem.Body, signA, signB Sign) (int, error) {
	n, err := NaturalRelation(a, b)
	if err != nil {
		return 0, err
	}
	return int(n) + int(TemporalRelation(signA, signB)), nil
}
