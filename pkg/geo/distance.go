package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// metersPerDegree is the length of one degree of latitude.
const metersPerDegree = math.Pi / 180 * earthRadiusMeters

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(radians(lat1))*math.Cos(radians(lat2))*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// lonDelta returns lon2-lon1 normalised to [-180, 180].
func lonDelta(lon1, lon2 float64) float64 {
	d := math.Mod(lon2-lon1, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// EquirectangularDist returns an approximate distance in meters. Good for
// short-range candidate filtering, not for final distances.
func EquirectangularDist(lat1, lon1, lat2, lon2 float64) float64 {
	x := lonDelta(lon1, lon2) * math.Cos(radians((lat1+lat2)/2))
	y := lat2 - lat1
	return math.Sqrt(x*x+y*y) * metersPerDegree
}

// MetersToDegrees returns the latitude and longitude spans covering the
// given distance around lat. Near the poles the longitude span is clamped
// to the whole circle.
func MetersToDegrees(lat, meters float64) (dLat, dLon float64) {
	dLat = meters / metersPerDegree
	cos := math.Cos(radians(lat))
	if cos < 1e-9 {
		return dLat, 360
	}
	dLon = dLat / cos
	if dLon > 360 {
		dLon = 360
	}
	return dLat, dLon
}
