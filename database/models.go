package database

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	datasetdomain "olist/internal/dataset/domain"
)

// TablePrefix préfixe des tables Olist en base
const TablePrefix = "olist_"

// RowNumberColumn colonne technique conservant l'ordre source des lignes
const RowNumberColumn = "_row"

// TableSchema décrit une table Olist copiée en base.
// Toutes les colonnes sont en TEXT, comme à la lecture des CSV, précédées de _row.
type TableSchema struct {
	Name    datasetdomain.TableName
	Columns []string
}

// SQLName nom de la table en base (olist_<table>)
func SQLName(name datasetdomain.TableName) string {
	return TablePrefix + string(name)
}

// QuotedName nom de la table échappé
func (s TableSchema) QuotedName() string {
	return pq.QuoteIdentifier(SQLName(s.Name))
}

// CreateSQL requête de création de la table
func (s TableSchema) CreateSQL() string {
	defs := make([]string, 0, len(s.Columns)+1)
	defs = append(defs, pq.QuoteIdentifier(RowNumberColumn)+" BIGINT NOT NULL")
	for _, col := range s.Columns {
		defs = append(defs, pq.QuoteIdentifier(col)+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", s.QuotedName(), strings.Join(defs, ", "))
}

// TruncateSQL requête de vidage de la table
func (s TableSchema) TruncateSQL() string {
	return "TRUNCATE TABLE " + s.QuotedName()
}

// SelectSQL requête de lecture de toutes les lignes, dans l'ordre d'insertion
func (s TableSchema) SelectSQL() string {
	return "SELECT * FROM " + s.QuotedName() + " ORDER BY " + pq.QuoteIdentifier(RowNumberColumn)
}

