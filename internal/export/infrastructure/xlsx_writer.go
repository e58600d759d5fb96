package infrastructure

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX écrit la table dans une feuille unique nommée sheet.
// Les colonnes numériques restent numériques dans le classeur.
func WriteXLSX(w io.Writer, df dataframe.DataFrame, sheet string) error {
	if df.Err != nil {
		return df.Err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	names := df.Names()
	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	columns := make([]series.Series, len(names))
	for i, name := range names {
		columns[i] = df.Col(name)
	}

	for r := 0; r < df.Nrow(); r++ {
		values := make([]interface{}, len(columns))
		for c, col := range columns {
			values[c] = cellValue(col, r)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func cellValue(col series.Series, row int) interface{} {
	elem := col.Elem(row)
	if elem.IsNA() {
		return nil
	}
	switch col.Type() {
	case series.Float:
		return elem.Float()
	case series.Int:
		n, err := elem.Int()
		if err != nil {
			return elem.String()
		}
		return n
	default:
		return elem.String()
	}
}
