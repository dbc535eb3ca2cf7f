package geo

import (
	"math"

	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// MetersPerMile converts meters to statute miles.
const MetersPerMile = 1609.344

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint returns the point if both coordinates are in range.
func NewPoint(lat, lng float64) (Point, bool) {
	if !ValidateCoordinates(lat, lng) {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceMiles returns the great-circle distance between a and b in miles.
func DistanceMiles(a, b Point) float64 {
	if a == b {
		return 0
	}
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng) / MetersPerMile
}

// DistanceBetween returns the distance in miles, or empty if either side is unknown.
func DistanceBetween(a, b optional.Value[Point]) optional.Value[float64] {
	pa, ok := a.Get()
	if !ok {
		return optional.Empty[float64]()
	}
	pb, ok := b.Get()
	if !ok {
		return optional.Empty[float64]()
	}
	return optional.Of(DistanceMiles(pa, pb))
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
