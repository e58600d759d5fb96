package domain

import "math"

// EarthRadiusKm rayon terrestre moyen utilisé par la formule de haversine
const EarthRadiusKm = 6371.0

// Coordinates représente un point (latitude, longitude) en degrés
// DESIGN PATTERN: Value Object, immutable
type Coordinates struct {
	lat float64
	lng float64
}

// NewCoordinates crée un point à partir d'une latitude et d'une longitude
func NewCoordinates(lat, lng float64) Coordinates {
	return Coordinates{lat: lat, lng: lng}
}

// Lat retourne la latitude
func (c Coordinates) Lat() float64 {
	return c.lat
}

// Lng retourne la longitude
func (c Coordinates) Lng() float64 {
	return c.lng
}

// IsValid vérifie que les deux composantes sont des nombres finis
func (c Coordinates) IsValid() bool {
	return !math.IsNaN(c.lat) && !math.IsNaN(c.lng) &&
		!math.IsInf(c.lat, 0) && !math.IsInf(c.lng, 0)
}

// DistanceTo retourne la distance orthodromique en km
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return HaversineDistance(c.lng, c.lat, other.lng, other.lat)
}

// HaversineDistance calcule la distance orthodromique (km) entre deux points
// donnés en degrés (lon1, lat1, lon2, lat2).
// Référence: https://en.wikipedia.org/wiki/Haversine_formula
func HaversineDistance(lon1, lat1, lon2, lat2 float64) float64 {
	lon1, lat1 = radians(lon1), radians(lat1)
	lon2, lat2 = radians(lon2), radians(lat2)

	dlon := lon2 - lon1
	dlat := lat2 - lat1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
