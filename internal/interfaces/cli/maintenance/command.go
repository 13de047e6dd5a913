// Package maintenance holds the file-health commands: the read-only
// integrity check and the backup export.
package maintenance

import (
	"fmt"

	"github.com/spf13/cobra"

	"courtledger/internal/application/report"
	"courtledger/internal/infrastructure/config"
	"courtledger/internal/infrastructure/csv"
	"courtledger/internal/shared/format"
	"courtledger/internal/shared/logger"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "File health tools",
		Long:  `Check the stored files for slot conflicts and migration gaps, and export human-readable backups.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newIntegrityCommand(),
		newBackupCommand(),
	)

	return cmd
}

func newIntegrityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "integrity",
		Short: "Run the read-only integrity check",
		Long:  `Reload every booking from disk, report overlapping slots per date and court, and count rows missing a record identifier.`,
		RunE:  runIntegrity,
	}
}

func newBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Export a snapshot of every ledger",
		Long:  `Write a timestamped Markdown report of all stored data, plus a sanitized HTML rendering, under the backup directory.`,
		RunE:  runBackup,
	}
}

func initEnv() (*config.Config, logger.Interface, *csv.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()
	store := csv.NewStore(cfg.Storage, log)
	if err := store.EnsureAll(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to prepare data files: %w", err)
	}
	return cfg, log, store, nil
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	_, log, store, err := initEnv()
	if err != nil {
		return err
	}
	bookings := csv.NewBookingRepository(store)
	checker := report.NewIntegrityChecker(bookings, bookings, log)

	result, err := checker.Check(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Records: %d\n", result.TotalRecords)
	fmt.Printf("Overlapping pairs: %d\n", result.OverlapCount())
	for _, p := range result.Overlaps {
		fmt.Printf("  %s %s: %s conflicts with %s\n", p.Date, p.Court, p.SlotA, p.SlotB)
	}
	if result.HasIDColumn {
		fmt.Printf("Rows missing record ID: %d\n", result.MissingIDCount)
	} else {
		fmt.Println("Record ID column not present (file predates ID migration)")
	}
	if len(result.TopRevenueDays) > 0 {
		fmt.Println("Top revenue days:")
		for _, d := range result.TopRevenueDays {
			fmt.Printf("  %s: %s\n", d.Date, format.Currency(d.Total))
		}
	}
	if result.Clean() {
		fmt.Println("No problems found.")
	}
	return nil
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, log, store, err := initEnv()
	if err != nil {
		return err
	}
	exporter := report.NewExporter(
		csv.NewBookingRepository(store),
		csv.NewStatRepository(store),
		csv.NewShareEventRepository(store),
		csv.NewSubscriptionRepository(store),
		csv.NewWaterItemRepository(store),
		csv.NewWaterSaleRepository(store),
		cfg.Storage.BackupDir,
		log,
	)

	result, err := exporter.Export(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Backup written: %s\n", result.MarkdownPath)
	fmt.Printf("HTML rendering: %s\n", result.HTMLPath)
	fmt.Printf("Records exported: %d\n", result.RecordCount)
	return nil
}
