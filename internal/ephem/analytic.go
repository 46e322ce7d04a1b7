package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/ls-transits/internal/astro"
)

// Analytic is an offline oracle. Planets come from the JPL mean Keplerian
// elements (valid 1800-2050, arcminute level), the Moon from the principal
// terms of its longitude series, the Sun from the low-precision solar theory.
// FlagTopocentric is ignored. Chiron and the asteroids are not available.
type Analytic struct {
	cfg   Config
	stars astro.StarCatalog
}

// NewAnalytic creates an analytic oracle.
func NewAnalytic(cfg Config) *Analytic {
	return &Analytic{cfg: cfg, stars: astro.DefaultStarCatalog()}
}

// Name implements Oracle.
func (a *Analytic) Name() string {
	return "analytic"
}

// speedStep is the half-width in days of the central difference used for
// speeds.
const speedStep = 0.005

// sampler returns longitude, latitude (degrees) and distance (AU) at jd.
type sampler func(jd float64) (lon, lat, dist float64)

// Compute implements Oracle.
func (a *Analytic) Compute(jd float64, body Body, flags Flags) (Position, error) {
	if body == Sun && !flags.Has(FlagHeliocentric) {
		p := Position{
			astro.SunLongitude(jd), 0, earthHelio(julianCenturies(jd)).Norm(),
			astro.SunSpeed(jd), 0, 0,
		}
		return a.frame(p, jd, flags), nil
	}

	f, err := a.sampler(body, flags)
	if err != nil {
		return Position{}, err
	}
	lon, lat, dist := f(jd)
	lon1, lat1, dist1 := f(jd + speedStep)
	lon0, lat0, dist0 := f(jd - speedStep)
	p := Position{
		lon, lat, dist,
		astro.DiffDeg2(lon1, lon0) / (2 * speedStep),
		(lat1 - lat0) / (2 * speedStep),
		(dist1 - dist0) / (2 * speedStep),
	}
	return a.frame(p, jd, flags), nil
}

func (a *Analytic) frame(p Position, jd float64, flags Flags) Position {
	if flags.Has(FlagSidereal) {
		p = toSidereal(p, a.cfg.Ayanamsa, jd)
	}
	if !flags.Has(FlagSpeed) {
		p[3], p[4], p[5] = 0, 0, 0
	}
	return p
}

func (a *Analytic) sampler(body Body, flags Flags) (sampler, error) {
	if flags.Has(FlagHeliocentric) {
		switch body {
		case Earth:
			return func(jd float64) (float64, float64, float64) {
				return ofDate(earthHelio(julianCenturies(jd)), jd)
			}, nil
		case Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto:
			el := planetElements[body]
			return func(jd float64) (float64, float64, float64) {
				return ofDate(el.helio(julianCenturies(jd)), jd)
			}, nil
		}
		return nil, fmt.Errorf("%w: no heliocentric %s in analytic theory", ErrUnknownBody, body)
	}

	switch body {
	case Moon:
		return moonPosition, nil
	case MeanNode:
		return func(jd float64) (float64, float64, float64) {
			return meanNode(julianCenturies(jd)), 0, moonMeanDistAU
		}, nil
	case TrueNode:
		return func(jd float64) (float64, float64, float64) {
			return trueNode(julianCenturies(jd)), 0, moonMeanDistAU
		}, nil
	case MeanApogee:
		return func(jd float64) (float64, float64, float64) {
			return meanApogee(julianCenturies(jd)), 0, moonMeanDistAU
		}, nil
	case Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto:
		el := planetElements[body]
		return func(jd float64) (float64, float64, float64) {
			T := julianCenturies(jd)
			return ofDate(el.helio(T).Sub(earthHelio(T)), jd)
		}, nil
	}
	return nil, fmt.Errorf("%w: %s not in analytic theory", ErrUnknownBody, body)
}

// ComputeStar implements Oracle.
func (a *Analytic) ComputeStar(name string, jd float64, flags Flags) (Position, error) {
	return starPosition(a.stars, name, jd, flags, a.cfg.Ayanamsa)
}

// ComputeHouses implements Oracle.
func (a *Analytic) ComputeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem) (astro.Houses, error) {
	return computeHouses(jd, flags, obs, system, a.cfg.Ayanamsa)
}

func computeHouses(jd float64, flags Flags, obs astro.Observer, system astro.HouseSystem, ay Ayanamsa) (astro.Houses, error) {
	if !obs.Valid() {
		return astro.Houses{}, fmt.Errorf("invalid observer lat=%.4f lon=%.4f", obs.LatDeg, obs.LonDeg)
	}
	h, err := astro.ComputeHouses(jd, obs, system)
	if err != nil {
		return astro.Houses{}, err
	}
	if flags.Has(FlagSidereal) {
		h = housesToSidereal(h, ay, jd)
	}
	return h, nil
}

func julianCenturies(jd float64) float64 {
	return (jd - astro.J2000) / 36525.0
}

// ofDate converts a J2000 ecliptic vector to longitude and latitude referred
// to the equinox of date, and distance.
func ofDate(v astro.Vec3, jd float64) (lon, lat, dist float64) {
	lon = astro.NormalizeDeg(astro.EclipticLongitude(v) + (jd-astro.J2000)*astro.PrecessionRate)
	return lon, astro.EclipticLatitude(v), v.Norm()
}

// elements are mean Keplerian elements at J2000 and their rates per Julian
// century: semi-major axis (AU), eccentricity, inclination, mean longitude,
// longitude of perihelion and longitude of ascending node (degrees).
type elements struct {
	a, e, i, l, peri, node       float64
	da, de, di, dl, dperi, dnode float64
}

var planetElements = map[Body]elements{
	Mercury: {0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081},
	Venus: {0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418},
	Mars: {1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343},
	Jupiter: {5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106},
	Saturn: {9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794},
	Uranus: {19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589},
	Neptune: {30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664},
	Pluto: {39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482},
}

// Earth-Moon barycenter
var emBary = elements{1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
	0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0}

func earthHelio(T float64) astro.Vec3 {
	return emBary.helio(T)
}

// helio returns the heliocentric J2000 ecliptic position in AU.
func (el elements) helio(T float64) astro.Vec3 {
	a := el.a + el.da*T
	e := el.e + el.de*T
	inc := degToRad(el.i + el.di*T)
	L := el.l + el.dl*T
	peri := el.peri + el.dperi*T
	node := el.node + el.dnode*T

	M := degToRad(astro.NormalizeDeg(L - peri))
	w := degToRad(peri - node)
	om := degToRad(node)

	E := solveKepler(M, e)
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(w), math.Sin(w)
	co, so := math.Cos(om), math.Sin(om)
	ci, si := math.Cos(inc), math.Sin(inc)

	return astro.Vec3{
		X: (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp,
		Y: (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}

// solveKepler returns the eccentric anomaly for mean anomaly M (radians).
func solveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)
	for i := 0; i < 30; i++ {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}

// moonMeanDistAU is the mean Earth-Moon distance.
const moonMeanDistAU = 385000.56 / kmPerAU

const kmPerAU = 149597870.7

// lunarArgs returns the Moon's mean longitude and the fundamental arguments
// D, M, M', F in degrees.
func lunarArgs(T float64) (Lp, D, M, Mp, F float64) {
	Lp = 218.3164477 + 481267.88123421*T
	D = 297.8501921 + 445267.1114034*T
	M = 357.5291092 + 35999.0502909*T
	Mp = 134.9633964 + 477198.8675055*T
	F = 93.2720950 + 483202.0175233*T
	return
}

// moonPosition evaluates the largest periodic terms of the lunar theory,
// good to a few tenths of a degree.
func moonPosition(jd float64) (lon, lat, dist float64) {
	T := julianCenturies(jd)
	Lp, D, M, Mp, F := lunarArgs(T)
	sin := func(x float64) float64 { return math.Sin(degToRad(x)) }
	cos := func(x float64) float64 { return math.Cos(degToRad(x)) }

	lon = Lp +
		6.288774*sin(Mp) +
		1.274027*sin(2*D-Mp) +
		0.658314*sin(2*D) +
		0.213618*sin(2*Mp) -
		0.185116*sin(M) -
		0.114332*sin(2*F) +
		0.058793*sin(2*D-2*Mp) +
		0.057066*sin(2*D-M-Mp) +
		0.053322*sin(2*D+Mp) +
		0.045758*sin(2*D-M)

	lat = 5.128122*sin(F) +
		0.280602*sin(Mp+F) +
		0.277693*sin(Mp-F) +
		0.173237*sin(2*D-F)

	km := 385000.56 -
		20905.355*cos(Mp) -
		3699.111*cos(2*D-Mp) -
		2955.968*cos(2*D) -
		569.925*cos(2*Mp)

	return astro.NormalizeDeg(lon), lat, km / kmPerAU
}

func meanNode(T float64) float64 {
	return astro.NormalizeDeg(125.0445479 - 1934.1362891*T + 0.0020754*T*T)
}

func trueNode(T float64) float64 {
	_, D, M, Mp, F := lunarArgs(T)
	sin := func(x float64) float64 { return math.Sin(degToRad(x)) }
	return astro.NormalizeDeg(meanNode(T) -
		1.4979*sin(2*(D-F)) -
		0.1500*sin(M) -
		0.1226*sin(2*D) +
		0.1176*sin(2*F) -
		0.0801*sin(2*(Mp-F)))
}

// meanApogee is the mean lunar apogee (Black Moon Lilith).
func meanApogee(T float64) float64 {
	perigee := 83.3532465 + 4069.0137287*T - 0.0103200*T*T
	return astro.NormalizeDeg(perigee + 180)
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
