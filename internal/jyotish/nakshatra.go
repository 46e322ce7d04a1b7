package jyotish

import (
	"fmt"

	"github.com/litescript/ls-transits/internal/astro"
)

// Nakshatra is a lunar mansion, 0 for Aswini through 26 for Revathi.
type Nakshatra int

const (
	nakshatraSpan = 40.0 / 3 // 13°20'
	padaSpan      = 10.0 / 3 // 3°20'
)

var nakshatraNames = [27]string{
	"Aswini", "Bharani", "Krithika", "Rohini", "Mrigasira", "Aridra",
	"Punarvasu", "Pushyami", "Aslesha", "Makha", "Pubba", "Uttara",
	"Hasta", "Chitta", "Swathi", "Vishaka", "Anuradha", "Jyesta",
	"Moola", "Poorvashada", "Uttarashada", "Sravana", "Dhanishta",
	"Satabhisha", "Poorvabhadra", "Uttarabhadra", "Revathi",
}

// Valid reports whether n is one of the 27 nakshatras.
func (n Nakshatra) Valid() bool {
	return n >= 0 && int(n) < len(nakshatraNames)
}

func (n Nakshatra) String() string {
	name, err := NakshatraName(n)
	if err != nil {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return name
}

// NakshatraName returns the name of nakshatra n.
func NakshatraName(n Nakshatra) (string, error) {
	if !n.Valid() {
		return "", fmt.Errorf("%w: nakshatra %d", ErrInvalidArgument, int(n))
	}
	return nakshatraNames[n], nil
}

// Start returns the longitude where the nakshatra begins.
func (n Nakshatra) Start() float64 {
	return float64(n) * nakshatraSpan
}

// NakshatraOf returns the nakshatra holding lon and the pada (quarter) within
// it, from 0 to 3.
func NakshatraOf(lon float64) (Nakshatra, int) {
	lon = astro.NormalizeDeg(lon)
	n := int(lon / nakshatraSpan)
	if n > 26 {
		n = 26
	}
	pada := int((lon - float64(n)*nakshatraSpan) / padaSpan)
	if pada > 3 {
		pada = 3
	}
	if pada < 0 {
		pada = 0
	}
	return Nakshatra(n), pada
}
