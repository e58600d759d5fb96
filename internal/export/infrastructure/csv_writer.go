package infrastructure

import (
	"io"

	"github.com/go-gota/gota/dataframe"
)

// WriteCSV écrit la table avec une ligne d'en-têtes
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}
