package main

import (
	"os"

	"github.com/spf13/cobra"

	"courtledger/internal/interfaces/cli/maintenance"
	"courtledger/internal/interfaces/cli/summary"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "courtledger",
		Short: "Courtledger - court rental bookkeeping",
		Long:  `Courtledger keeps a pickleball court rental business's bookings, subscriptions, beverage ledger and monthly statistics in plain CSV files, with integrity checks and backups.`,
	}

	rootCmd.AddCommand(
		maintenance.NewCommand(),
		summary.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
