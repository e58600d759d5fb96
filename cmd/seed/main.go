package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"olist/database"
	"olist/internal/config"
	datasetinfra "olist/internal/dataset/infrastructure"
	sharedinfra "olist/internal/shared/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newSeedCmd().ExecuteContext(ctx); err != nil {
		log.Fatal("❌ Erreur lors du seed: ", err)
	}
}

func newSeedCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Copie les CSV Olist dans les tables PostgreSQL olist_<table>",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return seed(cmd.Context(), dataDir)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "répertoire des CSV (défaut: configuration)")
	return cmd
}

func seed(ctx context.Context, dataDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}

	logger, err := sharedinfra.NewLogger(sharedinfra.LoggerOptions{Level: cfg.Logging.Level, Development: true})
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Open(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	fmt.Println("✅ Connexion PostgreSQL établie")

	snapshot, err := datasetinfra.NewCSVLoader(cfg.Data.Dir, cfg.Data.Workers, logger, nil).Load(ctx)
	if err != nil {
		return err
	}

	fmt.Println("🌱 Démarrage du seed de la base de données...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if err := database.NewSeeder(db, logger).SeedSnapshot(ctx, snapshot); err != nil {
		return err
	}
	for _, name := range snapshot.Names() {
		fmt.Printf("  %-24s %d lignes\n", name, snapshot.Rows(name))
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Démarrez le serveur sur PostgreSQL avec:")
	fmt.Println("  OLIST_DATA_LOADER=postgres go run main.go")
	return nil
}
