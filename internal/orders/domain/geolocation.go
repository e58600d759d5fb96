package domain

import (
	"olist/internal/shared/domain"
)

// GeoPoint représente une ligne de la table geolocation
type GeoPoint struct {
	ZipCodePrefix ZipCodePrefix
	Coordinates   domain.Coordinates
}

// GeoIndex associe un seul point à chaque préfixe de code postal.
// Pour un préfixe présent plusieurs fois, la première ligne complète (ordre du fichier) gagne.
type GeoIndex struct {
	points map[ZipCodePrefix]domain.Coordinates
}

// NewGeoIndex construit l'index à partir des lignes dans l'ordre source
func NewGeoIndex(points []GeoPoint) *GeoIndex {
	index := &GeoIndex{
		points: make(map[ZipCodePrefix]domain.Coordinates, len(points)),
	}
	for _, p := range points {
		if !p.Coordinates.IsValid() {
			continue
		}
		if _, exists := index.points[p.ZipCodePrefix]; exists {
			continue
		}
		index.points[p.ZipCodePrefix] = p.Coordinates
	}
	return index
}

// Lookup retourne les coordonnées d'un préfixe (left join: false si absent ou incomplet)
func (g *GeoIndex) Lookup(zip ZipCodePrefix) (domain.Coordinates, bool) {
	c, ok := g.points[zip]
	return c, ok
}

// Len retourne le nombre de préfixes distincts
func (g *GeoIndex) Len() int {
	return len(g.points)
}
