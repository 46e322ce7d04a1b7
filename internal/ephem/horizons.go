package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-transits/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// Horizons queries JPL Horizons for geocentric ecliptic state vectors.
// Longitude speed is derived from the velocity vector. The client is not
// rate limited; wrap it in Serialized and Cached before searching.
type Horizons struct {
	client  *http.Client
	baseURL string
	cfg     Config
	stars   astro.StarCatalog
}

// NewHorizons creates a new Horizons API client.
func NewHorizons(cfg Config) *Horizons {
	base := cfg.HorizonsURL
	if base == "" {
		base = HorizonsAPIURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	return &Horizons{
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
		cfg:     cfg,
		stars:   astro.DefaultStarCatalog(),
	}
}

// Name implements Oracle.
func (h *Horizons) Name() string {
	return "horizons"
}

// Compute implements Oracle.
func (h *Horizons) Compute(jd float64, body Body, flags Flags) (Position, error) {
	info, ok := body.Info()
	if !ok || info.HorizCmd == "" {
		return Position{}, fmt.Errorf("%w: %s not available from Horizons", ErrUnknownBody, body)
	}
	if body == Earth && !flags.Has(FlagHeliocentric) {
		return Position{}, fmt.Errorf("%w: geocentric Earth", ErrUnknownBody)
	}

	pos, vel, err := h.queryVectors(info.HorizCmd, jd, flags)
	if err != nil {
		return Position{}, err
	}

	p := positionFromState(pos, vel, jd)
	if flags.Has(FlagSidereal) {
		p = toSidereal(p, h.cfg.Ayanamsa, jd)
	}
	if !flags.Has(FlagSpeed) {
		p[3], p[4], p[5] = 0, 0, 0
	}
	return p, nil
}

// ComputeStar implements Oracle. Stars come from the local catalog.
func (h *Horizons) ComputeStar(name string, jd float64, flags Flags) (Position, error) {
	return starPosition(h.stars, name, jd, flags, h.cfg.Ayanamsa)
}

// ComputeHouses implements Oracle. Horizons has no house service, so cusps
// are computed locally.
func (h *Horizons) ComputeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	return computeHouses(jd, flags, obs, system, h.cfg.Ayanamsa)
}

// center returns the CENTER parameter for the requested frame.
func (h *Horizons) center(flags Flags) (center string, topo bool) {
	switch {
	case flags.Has(FlagHeliocentric):
		return "'@10'", false
	case flags.Has(FlagTopocentric) && h.cfg.Observer.Valid():
		return "'coord@399'", true
	default:
		return "'500@399'", false
	}
}

// queryVectors makes a request to the Horizons API for one epoch.
func (h *Horizons) queryVectors(command string, jd float64, flags Flags) (astro.Vec3, astro.Vec3, error) {
	// Build request parameters - values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%s'", command))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	center, topo := h.center(flags)
	params.Set("CENTER", center)
	if topo {
		obs := h.cfg.Observer
		params.Set("COORD_TYPE", "GEODETIC")
		params.Set("SITE_COORD", fmt.Sprintf("'%.4f,%.4f,%.4f'", obs.LonDeg, obs.LatDeg, obs.AltM/1000))
	}
	params.Set("REF_PLANE", "ECLIPTIC")
	params.Set("REF_SYSTEM", "ICRF")
	params.Set("VEC_TABLE", "'2'") // Position and velocity
	params.Set("VEC_LABELS", "NO")
	params.Set("VEC_CORR", "'LT'")
	params.Set("OUT_UNITS", "'AU-D'") // AU and days
	params.Set("TIME_TYPE", "UT")
	params.Set("TLIST_TYPE", "JD")
	params.Set("TLIST", fmt.Sprintf("'%.9f'", jd))

	reqURL := h.baseURL + "?" + params.Encode()

	resp, err := h.client.Get(reqURL)
	if err != nil {
		return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("failed to read response: %w", err)
	}

	return parseVectorResponse(body)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseVectorResponse parses the Horizons JSON response for one state vector.
func parseVectorResponse(body []byte) (pos, vel astro.Vec3, err error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return pos, vel, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return pos, vel, fmt.Errorf("horizons: %s", strings.TrimSpace(resp.Error))
	}

	// Find the data section between $$SOE and $$EOE markers
	soeIdx := strings.Index(resp.Result, "$$SOE")
	eoeIdx := strings.Index(resp.Result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return pos, vel, fmt.Errorf("could not find vector data markers")
	}

	// Vector format (VEC_TABLE='2', no labels):
	// 2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 UT
	//  1.234567890123456E+00  2.345678901234567E+00  3.456789012345678E-01
	// -1.234567890123456E-02  2.345678901234567E-03  3.456789012345678E-04
	var vals []float64
	for _, line := range strings.Split(resp.Result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "A.D.") {
			continue
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return pos, vel, fmt.Errorf("invalid vector field %q: %w", f, err)
			}
			vals = append(vals, v)
		}
		if len(vals) >= 6 {
			break
		}
	}
	if len(vals) < 6 {
		return pos, vel, fmt.Errorf("could not parse vector data: %d values", len(vals))
	}

	pos = astro.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	vel = astro.Vec3{X: vals[3], Y: vals[4], Z: vals[5]}
	return pos, vel, nil
}

// positionFromState converts a J2000 ecliptic state vector (AU, AU/day) to
// a Position referred to the equinox of date.
func positionFromState(pos, vel astro.Vec3, jd float64) Position {
	lon, lat, r := ofDate(pos, jd)
	if r == 0 {
		return Position{lon, lat, 0, 0, 0, 0}
	}
	rdot := (pos.X*vel.X + pos.Y*vel.Y + pos.Z*vel.Z) / r

	var latSpeed float64
	u := pos.Z / r
	if c := math.Sqrt(1 - u*u); c > 0 {
		latSpeed = (vel.Z*r - pos.Z*rdot) / (r * r) / c * 180 / math.Pi
	}

	return Position{
		lon, lat, r,
		astro.LongitudeRate(pos, vel) + astro.PrecessionRate,
		latSpeed,
		rdot,
	}
}
