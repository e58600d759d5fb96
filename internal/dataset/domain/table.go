package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Loader charge l'ensemble des tables sous forme de snapshot
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// NewStringTable construit une table dont toutes les colonnes sont des chaînes.
// Une table sans ligne garde ses colonnes.
func NewStringTable(header []string, rows [][]string) (dataframe.DataFrame, error) {
	columns := make([][]string, len(header))
	for i := range columns {
		columns[i] = make([]string, 0, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(header) {
			return dataframe.DataFrame{}, fmt.Errorf("row %d: %d values for %d columns", r, len(row), len(header))
		}
		for c, value := range row {
			columns[c] = append(columns[c], value)
		}
	}

	ss := make([]series.Series, len(header))
	for i, name := range header {
		ss[i] = series.New(columns[i], series.String, name)
	}
	df := dataframe.New(ss...)
	return df, df.Err
}

// TableFromFilename convertit un nom de fichier CSV Olist en nom de table:
// olist_order_items_dataset.csv devient order_items
func TableFromFilename(filename string) TableName {
	key := filename
	for _, token := range []string{"_dataset.csv", ".csv", "olist_"} {
		key = strings.ReplaceAll(key, token, "")
	}
	return TableName(key)
}
