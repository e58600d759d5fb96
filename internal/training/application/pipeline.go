package application

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"olist/internal/config"
	datasetdomain "olist/internal/dataset/domain"
	datasetinfra "olist/internal/dataset/infrastructure"
	ordersapp "olist/internal/orders/application"
	ordersdomain "olist/internal/orders/domain"
	ordersinfra "olist/internal/orders/infrastructure"
	sellersapp "olist/internal/sellers/application"
	sellersdomain "olist/internal/sellers/domain"
	sharedinfra "olist/internal/shared/infrastructure"
)

// Pipeline enchaîne chargement du snapshot et calcul des tables d'entraînement
type Pipeline struct {
	loader    datasetdomain.Loader
	economics sellersdomain.Economics
	logger    *zap.Logger
	observer  sharedinfra.StepObserver
}

// NewPipeline crée un pipeline sur loader
func NewPipeline(
	loader datasetdomain.Loader,
	economics sellersdomain.Economics,
	logger *zap.Logger,
	observer sharedinfra.StepObserver,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		loader:    loader,
		economics: economics,
		logger:    logger,
		observer:  observer,
	}
}

// NewLoader choisit le loader selon la configuration; db n'est utilisé que pour postgres
func NewLoader(cfg config.DataConfig, db *sql.DB, logger *zap.Logger, observer datasetinfra.LoadObserver) (datasetdomain.Loader, error) {
	switch cfg.Loader {
	case config.LoaderCSV:
		return datasetinfra.NewCSVLoader(cfg.Dir, cfg.Workers, logger, observer), nil
	case config.LoaderPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres loader requires a database connection")
		}
		return datasetinfra.NewPostgresLoader(db, nil, logger, observer), nil
	default:
		return nil, fmt.Errorf("unknown loader %q", cfg.Loader)
	}
}

// Load charge un nouveau snapshot
func (p *Pipeline) Load(ctx context.Context) (*datasetdomain.Snapshot, error) {
	snapshot, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshot, nil
}

// Builders crée les deux builders sur le même snapshot
func (p *Pipeline) Builders(snapshot *datasetdomain.Snapshot) (*ordersapp.OrderFeatureBuilder, *sellersapp.SellerFeatureBuilder, error) {
	repo := ordersinfra.NewSnapshotRepository(snapshot)
	orders := ordersapp.NewOrderFeatureBuilder(repo, p.logger, p.observer)
	sellers, err := sellersapp.NewSellerFeatureBuilder(repo, orders, p.economics, p.logger, p.observer)
	if err != nil {
		return nil, nil, err
	}
	return orders, sellers, nil
}

// OrderTable calcule la table d'entraînement des commandes
func (p *Pipeline) OrderTable(snapshot *datasetdomain.Snapshot, opts ordersapp.OrderOptions) (*ordersdomain.OrderTrainingTable, error) {
	orders, _, err := p.Builders(snapshot)
	if err != nil {
		return nil, err
	}
	return orders.TrainingData(opts)
}

// SellerTable calcule la table d'entraînement des vendeurs
func (p *Pipeline) SellerTable(snapshot *datasetdomain.Snapshot) (*sellersdomain.SellerTrainingTable, error) {
	_, sellers, err := p.Builders(snapshot)
	if err != nil {
		return nil, err
	}
	return sellers.TrainingData()
}

// TrainingTables tables d'entraînement calculées sur un même snapshot
type TrainingTables struct {
	Orders  *ordersdomain.OrderTrainingTable
	Sellers *sellersdomain.SellerTrainingTable
}

// Tables calcule les deux tables en parallèle
func (p *Pipeline) Tables(snapshot *datasetdomain.Snapshot, opts ordersapp.OrderOptions) (*TrainingTables, error) {
	var (
		g      errgroup.Group
		tables TrainingTables
	)
	g.Go(func() error {
		var err error
		tables.Orders, err = p.OrderTable(snapshot, opts)
		return err
	})
	g.Go(func() error {
		var err error
		tables.Sellers, err = p.SellerTable(snapshot)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &tables, nil
}
