// Package main loads the classified hotels CSV into the MySQL table served
// by the API when DATA_SOURCE=mysql.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_insights/internal/adapters/observability"
	"hotel_insights/internal/app"
	"hotel_insights/internal/shared"
	"hotel_insights/internal/storage/csvfile"
	mysqlrepo "hotel_insights/internal/storage/mysql"
)

var (
	cfg shared.Config

	// import flags
	workers int
	batch   int
	dryRun  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Load classified hotels into MySQL",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// initialize global logger (console in dev, JSON otherwise)
		log.Logger = observability.NewLogger(cfg.AppEnv)
	},
	SilenceUsage: true,
}

var importCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Upsert every row of a CSV file",
	Long: `Upsert every row of a classified hotels CSV file into the
classified_hotels table. Rows are keyed on name, district and address, so
re-running an import updates rows in place.

The file defaults to DATA_FILE.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of imported hotels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := mysqlrepo.New(db).CountHotels(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

func init() {
	cfg = shared.Load()

	importCmd.Flags().IntVar(&workers, "workers", cfg.ImportWorkers, "concurrent upsert batches")
	importCmd.Flags().IntVar(&batch, "batch", cfg.ImportBatch, "rows per upsert statement")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate the file without touching the database")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(countCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	file := cfg.DataFile
	if len(args) == 1 {
		file = args[0]
	}

	log.Info().
		Str("file", file).
		Int("workers", workers).
		Int("batch", batch).
		Msg("importer starting")

	ds, err := csvfile.New(file).Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", file, err)
	}
	if dryRun {
		log.Info().Int("records", ds.Len()).Msg("dry run, nothing written")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := mysqlrepo.New(db)
	start := time.Now()
	n, err := app.NewImportService(repo).Import(ctx, ds, batch, workers)
	if err != nil {
		log.Error().Err(err).Int("written", n).Msg("import failed")
		return err
	}

	total, err := repo.CountHotels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count after import failed")
	}
	log.Info().
		Int("written", n).
		Int("table_rows", total).
		Dur("took", time.Since(start)).
		Msg("import completed")
	return nil
}

func openDB() (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	log.Info().Msg("db ping ok")
	return db, nil
}
