package domain

import "math"

// EarthRadiusKm mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// DefaultSearchRadiusKm applied when a lot search carries coordinates
// without a usable radius
const DefaultSearchRadiusKm = 5.0

// HaversineKm computes the great-circle distance between two coordinates
// using the haversine formula.
func HaversineKm(from, to Location) float64 {
	dLat := toRadians(to.Latitude - from.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(from.Latitude))*math.Cos(toRadians(to.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// WithinRadiusKm reports whether l lies within radiusKm of center.
// The boundary is inclusive: a lot at exactly radiusKm is included.
func (l Location) WithinRadiusKm(center Location, radiusKm float64) bool {
	return HaversineKm(center, l) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
