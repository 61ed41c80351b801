package cmd

import (
	"fmt"

	"fieldservice/internal/adapters/out/postgres/migrations"
	"fieldservice/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var createDatabase bool

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

func init() {
	migrateUpCmd.Flags().BoolVar(&createDatabase, "create-database", false, "create DB_NAME first when it does not exist")
	migrateCmd.AddCommand(migrateUpCmd)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if createDatabase {
		if err = migrations.EnsureDatabase(ctx, cfg.DatabaseURL()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	results, err := migrations.UpURL(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, r := range results {
		log.Info("migration applied",
			zap.Int64("version", r.Version),
			zap.String("source", r.Source),
			zap.String("duration", r.Duration),
		)
	}
	log.Info("migrate up: ok", zap.Int("applied", len(results)))
	return nil
}
