package domain

import (
	"math"
	"time"
)

// Day durée d'une journée
const Day = 24 * time.Hour

// AverageMonthDays durée moyenne d'un mois grégorien (365.2425 / 12)
const AverageMonthDays = 30.436875

// WholeDays retourne le nombre de jours entiers d'une durée, arrondi vers le bas.
// -1h donne -1: c'est la composante "jours" d'un intervalle, pas une troncature vers zéro.
func WholeDays(d time.Duration) int {
	days := d / Day
	if d%Day < 0 {
		days--
	}
	return int(days)
}

// FractionalDays convertit une durée en jours décimaux
func FractionalDays(d time.Duration) float64 {
	return d.Hours() / 24
}

// ClampPositive ramène les valeurs négatives à 0 (NaN est conservé)
func ClampPositive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Mean moyenne en ignorant les NaN, NaN si aucune valeur
func Mean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Sum somme en ignorant les NaN
func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}
