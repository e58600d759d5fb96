package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// TableName identifie une table du jeu de données Olist
type TableName string

const (
	TableOrders       TableName = "orders"
	TableOrderItems   TableName = "order_items"
	TableOrderReviews TableName = "order_reviews"
	TableSellers      TableName = "sellers"
	TableCustomers    TableName = "customers"
	TableGeolocation  TableName = "geolocation"
	TableProducts     TableName = "products"
)

// CoreTables tables lues par les builders de features
func CoreTables() []TableName {
	return []TableName{
		TableOrders,
		TableOrderItems,
		TableOrderReviews,
		TableSellers,
		TableCustomers,
		TableGeolocation,
	}
}

// Snapshot représente l'ensemble des tables chargées, partagé en lecture seule.
// Les tables ne sont jamais exposées directement: Table retourne toujours une copie.
type Snapshot struct {
	tables   map[TableName]dataframe.DataFrame
	loadedAt time.Time
}

// NewSnapshot crée un snapshot à partir des tables chargées
func NewSnapshot(tables map[TableName]dataframe.DataFrame) (*Snapshot, error) {
	owned := make(map[TableName]dataframe.DataFrame, len(tables))
	for name, df := range tables {
		if df.Err != nil {
			return nil, fmt.Errorf("table %s: %w", name, df.Err)
		}
		owned[name] = df.Copy()
	}

	return &Snapshot{
		tables:   owned,
		loadedAt: time.Now(),
	}, nil
}

// Table retourne une copie de la table demandée
func (s *Snapshot) Table(name TableName) (dataframe.DataFrame, error) {
	df, ok := s.tables[name]
	if !ok {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return df.Copy(), nil
}

// Has vérifie si une table est présente
func (s *Snapshot) Has(name TableName) bool {
	_, ok := s.tables[name]
	return ok
}

// Names retourne les noms de tables triés
func (s *Snapshot) Names() []TableName {
	names := make([]TableName, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Rows retourne le nombre de lignes d'une table (0 si absente)
func (s *Snapshot) Rows(name TableName) int {
	df, ok := s.tables[name]
	if !ok {
		return 0
	}
	return df.Nrow()
}

// LoadedAt retourne la date de chargement
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Columns extrait les colonnes demandées d'une table du snapshot
func (s *Snapshot) Columns(name TableName, columns ...string) (*Columns, error) {
	df, err := s.Table(name)
	if err != nil {
		return nil, err
	}
	return NewColumns(name, df, columns...)
}
