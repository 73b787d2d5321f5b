package main

import (
	"context"
	"fmt"

	"shopcatalog/internal/config"
	"shopcatalog/internal/database"
	"shopcatalog/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *prometheus.Registry

	metricsFile string
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the books and CDs of the shop catalog",
		Long: `catalog migrates, seeds and lists the shop catalog database.

Configuration comes from CATALOG_* environment variables, optionally loaded
from .env and .env.local in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file after the command")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newBooksCmd(a),
		newCDsCmd(a),
	)
	return root
}

func (a *app) setup() error {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging, cfg.Primary.ServiceName, nil)
	a.registry = prometheus.NewRegistry()
	return nil
}

// withDB opens the database for the duration of fn.
func (a *app) withDB(ctx context.Context, fn func(db *database.DB) error) error {
	db, err := database.New(ctx, a.cfg, a.log, database.WithMetrics(a.registry))
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func (a *app) writeMetrics() error {
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	a.log.Debug().Str("file", a.metricsFile).Msg("metrics written")
	return nil
}
