package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Columns vue typée, en lecture seule, sur quelques colonnes d'une table.
// Les valeurs restent brutes (string) et sont converties à la lecture.
type Columns struct {
	table TableName
	data  map[string][]string
	nrow  int
}

// NewColumns extrait les colonnes d'un DataFrame.
// Une colonne absente produit ErrColumnNotFound.
func NewColumns(table TableName, df dataframe.DataFrame, columns ...string) (*Columns, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("table %s: %w", table, df.Err)
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	data := make(map[string][]string, len(columns))
	for _, col := range columns {
		if !present[col] {
			return nil, fmt.Errorf("%w: %s.%s", ErrColumnNotFound, table, col)
		}
		data[col] = df.Col(col).Records()
	}

	return &Columns{
		table: table,
		data:  data,
		nrow:  df.Nrow(),
	}, nil
}

// Len retourne le nombre de lignes
func (c *Columns) Len() int {
	return c.nrow
}

// String retourne la valeur brute, chaîne vide si manquante
func (c *Columns) String(col string, row int) string {
	v := strings.TrimSpace(c.data[col][row])
	if IsNull(v) {
		return ""
	}
	return v
}

// Float lit une valeur décimale, NaN si manquante
func (c *Columns) Float(col string, row int) (float64, error) {
	v := c.String(col, row)
	if v == "" {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s.%s row %d: %q", ErrInvalidNumber, c.table, col, row, v)
	}
	return f, nil
}

// Int lit une valeur entière obligatoire (les valeurs "4.0" sont acceptées)
func (c *Columns) Int(col string, row int) (int, error) {
	v := c.String(col, row)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s.%s row %d: %q", ErrInvalidNumber, c.table, col, row, v)
	}
	return int(f), nil
}

// NullInt lit une valeur entière optionnelle; valid vaut false si la cellule est vide
func (c *Columns) NullInt(col string, row int) (value int, valid bool, err error) {
	if c.String(col, row) == "" {
		return 0, false, nil
	}
	n, err := c.Int(col, row)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Time lit un horodatage, invalide si la cellule est vide
func (c *Columns) Time(col string, row int) (NullTime, error) {
	t, err := ParseTimestamp(c.data[col][row])
	if err != nil {
		return NullTime{}, fmt.Errorf("%s.%s row %d: %w", c.table, col, row, err)
	}
	return t, nil
}
