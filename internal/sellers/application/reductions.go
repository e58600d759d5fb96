package application

import (
	"math"

	shareddomain "olist/internal/shared/domain"
)

// meanPositiveDelta moyenne des écarts, ramenée à 0 si elle n'est pas strictement positive.
// Une moyenne indéfinie (aucun écart connu) vaut aussi 0.
func meanPositiveDelta(deltas []float64) float64 {
	mean := shareddomain.Mean(deltas)
	if math.IsNaN(mean) || mean <= 0 {
		return 0
	}
	return mean
}

// meanDelta moyenne des écarts sans borne, NaN si aucun écart connu
func meanDelta(deltas []float64) float64 {
	return shareddomain.Mean(deltas)
}

// mean moyenne d'entiers
func mean(values []int) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
