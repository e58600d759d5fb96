package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout format des dates dans les CSV Olist et dans les exports
const TimestampLayout = "2006-01-02 15:04:05"

var timestampLayouts = []string{
	TimestampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NullTime représente un horodatage pouvant être absent (cellule vide)
type NullTime struct {
	Time  time.Time
	Valid bool
}

// NewNullTime crée un NullTime valide
func NewNullTime(t time.Time) NullTime {
	return NullTime{Time: t, Valid: true}
}

// Sub retourne t - u, et false si l'une des deux valeurs est absente
func (t NullTime) Sub(u NullTime) (time.Duration, bool) {
	if !t.Valid || !u.Valid {
		return 0, false
	}
	return t.Time.Sub(u.Time), true
}

// String formate la date, chaîne vide si absente
func (t NullTime) String() string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(TimestampLayout)
}

// ParseTimestamp interprète une cellule de date.
// Une cellule vide donne un NullTime invalide, une valeur illisible une erreur.
func ParseTimestamp(value string) (NullTime, error) {
	value = strings.TrimSpace(value)
	if IsNull(value) {
		return NullTime{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NewNullTime(t), nil
		}
	}
	return NullTime{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// IsNull indique si une cellule brute représente une valeur manquante
func IsNull(value string) bool {
	switch value {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}
