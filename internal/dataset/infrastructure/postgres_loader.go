package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"olist/database"
	"olist/internal/dataset/domain"
	sharedinfra "olist/internal/shared/infrastructure"
)

// PostgresLoader charge les tables olist_<table> copiées par le seeder
type PostgresLoader struct {
	sharedinfra.BaseRepository
	uow      *sharedinfra.DBUnitOfWork
	tables   []domain.TableName
	logger   *zap.Logger
	observer LoadObserver
}

// NewPostgresLoader crée un loader lisant tables (CoreTables si vide)
func NewPostgresLoader(db *sql.DB, tables []domain.TableName, logger *zap.Logger, observer LoadObserver) *PostgresLoader {
	if len(tables) == 0 {
		tables = domain.CoreTables()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopLoadObserver{}
	}
	return &PostgresLoader{
		BaseRepository: sharedinfra.NewBaseRepository(db),
		uow:            sharedinfra.NewUnitOfWork(db),
		tables:         tables,
		logger:         logger,
		observer:       observer,
	}
}

// Load lit chaque table dans l'ordre d'insertion et construit le snapshot.
// Toutes les tables sont lues dans une même transaction.
func (l *PostgresLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	tables := make(map[domain.TableName]dataframe.DataFrame, len(l.tables))
	err := l.uow.ReadOnly(ctx, func(tx *sql.Tx) error {
		repo := l.WithTx(tx)
		for _, name := range l.tables {
			start := time.Now()
			df, err := readTable(ctx, repo, name)
			if err != nil {
				return fmt.Errorf("load %s: %w", database.SQLName(name), err)
			}
			l.observer.ObserveLoad(string(name), time.Since(start))
			tables[name] = df
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := domain.NewSnapshot(tables)
	if err != nil {
		return nil, err
	}
	l.logger.Info("postgres snapshot loaded", zap.Int("tables", len(tables)))
	return snapshot, nil
}

func readTable(ctx context.Context, repo sharedinfra.BaseRepository, name domain.TableName) (dataframe.DataFrame, error) {
	schema := database.TableSchema{Name: name}
	rows, err := repo.Query(ctx, schema.SelectSQL())
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	// la colonne _row sert uniquement au tri
	header := make([]string, 0, len(columns))
	keep := make([]bool, len(columns))
	for i, col := range columns {
		if col == database.RowNumberColumn {
			continue
		}
		keep[i] = true
		header = append(header, col)
	}

	var records [][]string
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return dataframe.DataFrame{}, err
		}
		record := make([]string, 0, len(header))
		for i, v := range values {
			if keep[i] {
				record = append(record, v.String)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	return domain.NewStringTable(header, records)
}
