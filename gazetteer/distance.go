package gazetteer

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance computes the great-circle distance in whole kilometers between
// two places identified by key. ok is false when either key is not in the
// table; missing places are never an error.
func (g *Gazetteer) Distance(a, b string) (int, bool) {
	pa, okA := g.byKey[a]
	pb, okB := g.byKey[b]
	if !okA || !okB {
		return 0, false
	}
	return int(math.Round(haversineKm(pa.Lat, pa.Lng, pb.Lat, pb.Lng))), true
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLng := toRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
