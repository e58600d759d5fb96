package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/lib/pq"
	"go.uber.org/zap"

	datasetdomain "olist/internal/dataset/domain"
	sharedinfra "olist/internal/shared/infrastructure"
)

// Seeder copie les tables d'un snapshot dans PostgreSQL
type Seeder struct {
	uow    sharedinfra.UnitOfWork
	logger *zap.Logger
}

// NewSeeder crée un seeder sur la base db
func NewSeeder(db *sql.DB, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		uow:    sharedinfra.NewUnitOfWork(db),
		logger: logger,
	}
}

// SeedSnapshot remplace le contenu des tables olist_<table> par celui du snapshot.
// Chaque table est copiée dans sa propre transaction.
func (s *Seeder) SeedSnapshot(ctx context.Context, snapshot *datasetdomain.Snapshot) error {
	for _, name := range snapshot.Names() {
		df, err := snapshot.Table(name)
		if err != nil {
			return err
		}
		if err := s.SeedTable(ctx, name, df); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}

	if _, err := s.exec(ctx, "ANALYZE"); err != nil {
		s.logger.Warn("analyze failed", zap.Error(err))
	}
	return nil
}

// SeedTable crée, vide puis remplit (COPY) la table correspondant à name
func (s *Seeder) SeedTable(ctx context.Context, name datasetdomain.TableName, df dataframe.DataFrame) error {
	schema := TableSchema{Name: name, Columns: df.Names()}

	records := df.Records()
	err := s.uow.Execute(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schema.CreateSQL()); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, schema.TruncateSQL()); err != nil {
			return fmt.Errorf("truncate table: %w", err)
		}

		columns := append([]string{RowNumberColumn}, schema.Columns...)
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn(SQLName(name), columns...))
		if err != nil {
			return fmt.Errorf("prepare copy: %w", err)
		}
		defer stmt.Close()

		// records[0] contient les en-têtes
		for i, record := range records[1:] {
			args := make([]any, 0, len(record)+1)
			args = append(args, i)
			for _, value := range record {
				if datasetdomain.IsNull(value) {
					args = append(args, nil)
					continue
				}
				args = append(args, value)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("copy row %d: %w", i, err)
			}
		}

		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("flush copy: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("table seeded",
		zap.String("table", SQLName(name)),
		zap.Int("rows", len(records)-1),
	)
	return nil
}

func (s *Seeder) exec(ctx context.Context, query string) (sql.Result, error) {
	var result sql.Result
	err := s.uow.Execute(ctx, func(tx *sql.Tx) error {
		var err error
		result, err = tx.ExecContext(ctx, query)
		return err
	})
	return result, err
}
