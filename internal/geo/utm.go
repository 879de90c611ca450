package geo

import "math"

// WGS84 ellipsoid and transverse Mercator series terms.
const (
	k0 = 0.9996
	e  = 0.00669438
	e2 = e * e
	e3 = e2 * e
	ep = e / (1 - e)

	m1 = 1 - e/4 - 3*e2/64 - 5*e3/256
	m2 = 3*e/8 + 3*e2/32 + 45*e3/1024
	m3 = 15*e2/256 + 45*e3/1024
	m4 = 35 * e3 / 3072

	radius = 6378137.0
)

// UTM is a projected position in metres.
type UTM struct {
	Easting  float64
	Northing float64
	Zone     int
}

// ZoneNumber returns the UTM zone for a position, including the Norway and
// Svalbard exceptions.
func ZoneNumber(lat, lon float64) int {
	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}

	if lat >= 72 && lat <= 84 && lon >= 0 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		case lon < 42:
			return 37
		}
	}

	if lon >= 180 {
		lon -= 360
	}
	return int((lon+180)/6) + 1
}

// FromLatLon projects a WGS84 position into its own UTM zone.
func FromLatLon(lat, lon float64) UTM {
	return FromLatLonZone(lat, lon, ZoneNumber(lat, lon))
}

// FromLatLonZone projects into a fixed zone, so that points near a zone
// boundary share one coordinate system.
func FromLatLonZone(lat, lon float64, zone int) UTM {
	latRad := lat * math.Pi / 180
	latSin, latCos := math.Sincos(latRad)
	latTan := latSin / latCos
	latTan2 := latTan * latTan
	latTan4 := latTan2 * latTan2

	lonRad := lon * math.Pi / 180
	centralLonRad := float64((zone-1)*6-180+3) * math.Pi / 180

	n := radius / math.Sqrt(1-e*latSin*latSin)
	c := ep * latCos * latCos

	a := latCos * modAngle(lonRad-centralLonRad)
	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	m := radius * (m1*latRad -
		m2*math.Sin(2*latRad) +
		m3*math.Sin(4*latRad) -
		m4*math.Sin(6*latRad))

	easting := k0*n*(a+
		a3/6*(1-latTan2+c)+
		a5/120*(5-18*latTan2+latTan4+72*c-58*ep)) + 500000

	northing := k0 * (m + n*latTan*(a2/2+
		a4/24*(5-latTan2+9*c+4*c*c)+
		a6/720*(61-58*latTan2+latTan4+600*c-330*ep)))

	if lat < 0 {
		northing += 10000000
	}

	return UTM{Easting: easting, Northing: northing, Zone: zone}
}

// modAngle wraps an angle into [-pi, pi).
func modAngle(v float64) float64 {
	return math.Mod(math.Mod(v+math.Pi, 2*math.Pi)+2*math.Pi, 2*math.Pi) - math.Pi
}
