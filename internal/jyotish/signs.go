// Package jyotish holds the sidereal sign and lunar-mansion algebra used in
// Indian astrology: sign lords, nakshatras and padas, navamsas, sign
// distances, planetary relations and Raman's strengths and houses.
//
// Every function is a pure lookup. Inputs are longitudes in degrees, sign
// numbers from 0 (Aries) and ephem bodies for the seven classical planets.
package jyotish

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
)

// ErrInvalidArgument is returned for sign, nakshatra or planet numbers out of
// range and for malformed cusp lists.
var ErrInvalidArgument = errors.New("invalid argument")

// Sign is a zodiac sign, 0 for Aries through 11 for Pisces.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Sanskrit names, same order.
var rasiNames = [12]string{
	"Mesha", "Vrishaba", "Mithuna", "Kataka", "Simha", "Kanya",
	"Thula", "Vrishika", "Dhanus", "Makara", "Kumbha", "Meena",
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Rasi returns the Sanskrit name of the sign.
func (s Sign) Rasi() string {
	if !s.Valid() {
		return fmt.Sprintf("Rasi(%d)", int(s))
	}
	return rasiNames[s]
}

// SignOf returns the sign holding longitude lon.
func SignOf(lon float64) Sign {
	return Sign(int(astro.NormalizeDeg(lon) / 30))
}

// SignNorm maps any integer onto a sign, counting backwards from Aries for
// negative values.
func SignNorm(n int) Sign {
	n %= 12
	if n < 0 {
		n += 12
	}
	return Sign(n)
}

// SignDiff counts the signs from b forward to a, in [0, 11]. Both arguments
// are normalized first.
func SignDiff(a, b int) int {
	return int(SignNorm(int(SignNorm(a)) - int(SignNorm(b))))
}

// SignDiff2 is SignDiff mapped onto [-5, 6]: the opposite sign is always +6.
func SignDiff2(a, b int) int {
	d := SignDiff(a, b)
	if d > 6 {
		return d - 12
	}
	return d
}

// Navamsa returns the navamsa sign of lon: each sign is split in nine parts
// of 3°20', counted on from Aries around the zodiac.
func Navamsa(lon float64) Sign {
	return SignNorm(int(astro.NormalizeDeg(lon) / (10.0 / 3)))
}

// lords by sign.
var lords = [12]ephem.Body{
	ephem.Mars, ephem.Venus, ephem.Mercury, ephem.Moon, ephem.Sun, ephem.Mercury,
	ephem.Venus, ephem.Mars, ephem.Jupiter, ephem.Saturn, ephem.Saturn, ephem.Jupiter,
}

// Lord returns the planet ruling sign s.
func Lord(s Sign) (ephem.Body, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("%w: sign %d", ErrInvalidArgument, int(s))
	}
	return lords[s], nil
}
