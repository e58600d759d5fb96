package domain

import (
	"errors"
	"math"
	"time"
)

// DateRange représente une période [start, end]
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable: pas de setters, valeurs fixées à la création
//   - Validation dans le constructeur
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée une période, end ne peut pas précéder start
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, errors.New("end cannot be before start")
	}
	return DateRange{
		start: start,
		end:   end,
	}, nil
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// Duration retourne la durée de la période
func (dr DateRange) Duration() time.Duration {
	return dr.end.Sub(dr.start)
}

// Months retourne la durée en mois moyens (décimal)
func (dr DateRange) Months() float64 {
	return FractionalDays(dr.Duration()) / AverageMonthDays
}

// RoundedMonths arrondit Months au mois le plus proche (demi au pair)
func (dr DateRange) RoundedMonths() int {
	return int(math.RoundToEven(dr.Months()))
}

// Extend retourne une période élargie pour contenir t
func (dr DateRange) Extend(t time.Time) DateRange {
	extended := dr
	if t.Before(extended.start) {
		extended.start = t
	}
	if t.After(extended.end) {
		extended.end = t
	}
	return extended
}
