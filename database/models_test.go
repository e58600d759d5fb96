package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	datasetdomain "olist/internal/dataset/domain"
)

func TestTableSchema_SQL(t *testing.T) {
	schema := TableSchema{
		Name:    datasetdomain.TableOrderItems,
		Columns: []string{"order_id", "price"},
	}

	assert.Equal(t, "olist_order_items", SQLName(schema.Name))
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "olist_order_items" ("_row" BIGINT NOT NULL, "order_id" TEXT, "price" TEXT)`,
		schema.CreateSQL(),
	)
	assert.Equal(t, `TRUNCATE TABLE "olist_order_items"`, schema.TruncateSQL())
	assert.Equal(t, `SELECT * FROM "olist_order_items" ORDER BY "_row"`, schema.SelectSQL())
}
