package domain

import "errors"

// Erreurs sentinelles du chargement et de la lecture des tables.
// Elles sont toujours enveloppées avec le contexte (table, colonne, ligne) via %w.
var (
	ErrTableNotFound    = errors.New("table not found")
	ErrColumnNotFound   = errors.New("column not found")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidNumber    = errors.New("invalid number")
)
