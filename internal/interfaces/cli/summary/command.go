// Package summary holds the reporting commands over the stored ledgers.
package summary

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	financeapp "courtledger/internal/application/finance"
	"courtledger/internal/infrastructure/config"
	"courtledger/internal/infrastructure/csv"
	"courtledger/internal/shared/biztime"
	"courtledger/internal/shared/format"
	"courtledger/internal/shared/logger"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Revenue summaries",
		Long:  `Report combined revenue per month across bookings, subscriptions and beverage sales.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newMonthCommand(),
		newMonthsCommand(),
	)

	return cmd
}

func newMonthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "month <YYYY-MM>",
		Short: "Show one month's combined revenue",
		Long:  `Show the month's total revenue with a per-court breakdown plus subscription and beverage lines. Accepts YYYY-MM or MM-YYYY.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runMonth,
	}
}

func newMonthsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List every month with any activity",
		RunE:  runMonths,
	}
}

func initEnv() (*financeapp.Service, *csv.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()
	store := csv.NewStore(cfg.Storage, log)
	if err := store.EnsureAll(); err != nil {
		return nil, nil, fmt.Errorf("failed to prepare data files: %w", err)
	}
	svc, err := financeapp.NewService(
		csv.NewStatRepository(store),
		csv.NewShareEventRepository(store),
		csv.NewBookingRepository(store),
		csv.NewSubscriptionRepository(store),
		csv.NewWaterSaleRepository(store),
		store,
		cfg.Partners,
		log,
	)
	if err != nil {
		return nil, nil, err
	}
	return svc, store, nil
}

func runMonth(cmd *cobra.Command, args []string) error {
	svc, _, err := initEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	total, err := svc.MonthTotal(ctx, args[0])
	if err != nil {
		return err
	}
	rows, err := svc.MonthBreakdown(ctx, args[0])
	if err != nil {
		return err
	}

	month, _ := biztime.NormalizeMonth(args[0])
	fmt.Printf("Month %s\n", biztime.ToDisplayMonth(month))
	for _, row := range rows {
		fmt.Printf("  %-20s %s\n", row.Label, format.Currency(row.Total))
	}
	fmt.Printf("  %-20s %s\n", "Total", format.Currency(total))
	return nil
}

func runMonths(cmd *cobra.Command, args []string) error {
	svc, store, err := initEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	months := make(map[string]bool)
	bookings := csv.NewBookingRepository(store)
	recs, err := bookings.GetAll(ctx, false)
	if err != nil {
		return err
	}
	for _, b := range recs {
		months[b.Month()] = true
	}
	subs, err := csv.NewSubscriptionRepository(store).List(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		months[sub.Month] = true
	}
	sales, err := csv.NewWaterSaleRepository(store).List(ctx)
	if err != nil {
		return err
	}
	for _, sale := range sales {
		months[biztime.MonthOf(sale.Date)] = true
	}

	var sorted []string
	for m := range months {
		sorted = append(sorted, m)
	}
	sort.Strings(sorted)
	for _, m := range sorted {
		total, err := svc.MonthTotal(ctx, m)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", m, format.Currency(total))
	}
	return nil
}
