package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/rfref/internal/cli"
	"github.com/example/rfref/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rfref",
		Short:   "rfref - ISO 11649 creditor references",
		Version: version.String(),
		Long: `rfref generates and validates ISO 11649 Structured Creditor References
and keeps a ledger that matches incoming remittances back to invoices.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Reference commands (no database)
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.FormatCmd())

	// Ledger commands
	rootCmd.AddCommand(cli.IssueCmd())
	rootCmd.AddCommand(cli.MatchCmd())
	rootCmd.AddCommand(cli.SettleCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.LogCmd())

	rootCmd.AddCommand(cli.ConfigCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
