package domain

import (
	"fmt"
	"math"
	"strings"
)

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
// Immutable once obtained from a provider.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the coordinate with six decimal places, the precision used
// in rendered results and route URLs.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon)
}

const earthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two coordinates
// using the Haversine formula, rounded to two decimal places. Pure function:
// no validation, no side effects, deterministic for all finite inputs.
func DistanceKm(a, b Coordinate) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	deltaLat := degToRad(b.Lat - a.Lat)
	deltaLon := degToRad(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	d := 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return math.Round(d*100) / 100
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RouteURL builds a directions link on an external map service from the
// origin to the destination. The base is the map host, e.g.
// "https://www.google.com". Coordinates are embedded with six decimal
// places, identical to the values shown in rendered results.
func RouteURL(base string, from, to Coordinate) string {
	return fmt.Sprintf("%s/maps/dir/%.6f,%.6f/%.6f,%.6f",
		strings.TrimRight(base, "/"), from.Lat, from.Lon, to.Lat, to.Lon)
}
