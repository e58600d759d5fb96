package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"olist/internal/config"
	datasetdomain "olist/internal/dataset/domain"
	exportapp "olist/internal/export/application"
	exportdomain "olist/internal/export/domain"
	ordersapp "olist/internal/orders/application"
	sharedinfra "olist/internal/shared/infrastructure"
	trainingapp "olist/internal/training/application"
)

type options struct {
	dataDir         string
	format          string
	out             string
	allStatuses     bool
	withoutDistance bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "train",
		Short:        "Construit les tables d'entraînement Olist à partir des CSV",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "répertoire des CSV (défaut: configuration)")
	root.PersistentFlags().StringVar(&opts.format, "format", "csv", "format de sortie: csv, parquet ou xlsx")
	root.PersistentFlags().StringVarP(&opts.out, "out", "o", ".", "répertoire de sortie")

	orders := &cobra.Command{
		Use:   "orders",
		Short: "Table d'entraînement des commandes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrders(cmd.Context(), opts)
		},
	}

	sellers := &cobra.Command{
		Use:   "sellers",
		Short: "Table d'entraînement des vendeurs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSellers(cmd.Context(), opts)
		},
	}

	all := &cobra.Command{
		Use:   "all",
		Short: "Tables d'entraînement des commandes et des vendeurs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAll(cmd.Context(), opts)
		},
	}

	for _, c := range []*cobra.Command{orders, all} {
		c.Flags().BoolVar(&opts.allStatuses, "all-statuses", false, "garde les commandes non livrées")
		c.Flags().BoolVar(&opts.withoutDistance, "without-distance", false, "n'ajoute pas la distance vendeur-client")
	}

	tables := &cobra.Command{
		Use:   "tables",
		Short: "Liste les tables chargées et leur nombre de lignes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	root.AddCommand(orders, sellers, all, tables)
	return root
}

type session struct {
	logger   *zap.Logger
	pipeline *trainingapp.Pipeline
	export   *exportapp.ExportService
	snapshot *datasetdomain.Snapshot
}

// setup charge la configuration puis le snapshot CSV
func setup(ctx context.Context, opts *options) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}
	cfg.Data.Loader = config.LoaderCSV

	logger, err := sharedinfra.NewLogger(sharedinfra.LoggerOptions{
		Level:       cfg.Logging.Level,
		Development: true,
	})
	if err != nil {
		return nil, err
	}

	loader, err := trainingapp.NewLoader(cfg.Data, nil, logger, nil)
	if err != nil {
		return nil, err
	}
	pipeline := trainingapp.NewPipeline(loader, cfg.Economics.Economics(), logger, sharedinfra.NopObserver{})

	snapshot, err := pipeline.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &session{
		logger:   logger,
		pipeline: pipeline,
		export:   exportapp.NewExportService(logger),
		snapshot: snapshot,
	}, nil
}

func (o *options) orderOptions() ordersapp.OrderOptions {
	return ordersapp.OrderOptions{
		IsDelivered:                !o.allStatuses,
		WithDistanceSellerCustomer: !o.withoutDistance,
	}
}

func newJob(opts *options, target exportdomain.ExportTarget) (*exportdomain.ExportJob, error) {
	format, err := exportdomain.ParseExportFormat(opts.format)
	if err != nil {
		return nil, err
	}
	return exportdomain.NewExportJob(format, target)
}

func runOrders(ctx context.Context, opts *options) error {
	job, err := newJob(opts, exportdomain.ExportTargetOrders)
	if err != nil {
		return err
	}
	s, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	table, err := s.pipeline.OrderTable(s.snapshot, opts.orderOptions())
	if err != nil {
		return err
	}

	path := filepath.Join(opts.out, job.FileName())
	if err := s.export.WriteFile(path, func(w io.Writer) error {
		return s.export.WriteOrders(w, job, table)
	}); err != nil {
		return err
	}
	s.logger.Info("order training data written", zap.String("path", path), zap.Int("rows", table.Len()))
	return nil
}

func runSellers(ctx context.Context, opts *options) error {
	job, err := newJob(opts, exportdomain.ExportTargetSellers)
	if err != nil {
		return err
	}
	s, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	table, err := s.pipeline.SellerTable(s.snapshot)
	if err != nil {
		return err
	}

	path := filepath.Join(opts.out, job.FileName())
	if err := s.export.WriteFile(path, func(w io.Writer) error {
		return s.export.WriteSellers(w, job, table)
	}); err != nil {
		return err
	}
	s.logger.Info("seller training data written", zap.String("path", path), zap.Int("rows", table.Len()))
	return nil
}

func runAll(ctx context.Context, opts *options) error {
	ordersJob, err := newJob(opts, exportdomain.ExportTargetOrders)
	if err != nil {
		return err
	}
	sellersJob, err := newJob(opts, exportdomain.ExportTargetSellers)
	if err != nil {
		return err
	}
	s, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	tables, err := s.pipeline.Tables(s.snapshot, opts.orderOptions())
	if err != nil {
		return err
	}

	ordersPath := filepath.Join(opts.out, ordersJob.FileName())
	if err := s.export.WriteFile(ordersPath, func(w io.Writer) error {
		return s.export.WriteOrders(w, ordersJob, tables.Orders)
	}); err != nil {
		return err
	}
	sellersPath := filepath.Join(opts.out, sellersJob.FileName())
	if err := s.export.WriteFile(sellersPath, func(w io.Writer) error {
		return s.export.WriteSellers(w, sellersJob, tables.Sellers)
	}); err != nil {
		return err
	}

	s.logger.Info("training data written",
		zap.String("orders", ordersPath),
		zap.String("sellers", sellersPath),
	)
	return nil
}

func runTables(ctx context.Context, out io.Writer, opts *options) error {
	s, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	for _, name := range s.snapshot.Names() {
		fmt.Fprintf(out, "%-24s %d\n", name, s.snapshot.Rows(name))
	}
	return nil
}
