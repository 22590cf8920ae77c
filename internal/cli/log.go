package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rfref/internal/ports/primary"
	"github.com/example/rfref/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the ledger audit trail",
	Long:  "View and prune the ledger audit trail (who issued and settled what, and when)",
}

var logShowCmd = &cobra.Command{
	Use:   "show [REFERENCE]",
	Short: "Show ledger activity",
	Long: `Show ledger activity, optionally for one reference.

REFERENCE may be a ledger ID (REF-001) or a creditor reference in any
accepted form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actorID, _ := cmd.Flags().GetString("actor")
		limit, _ := cmd.Flags().GetInt("limit")

		filters := primary.LogFilters{
			ActorID: actorID,
			Limit:   limit,
		}
		if len(args) > 0 {
			filters.Reference = args[0]
		}

		_, err := wire.LogAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), filters)
		return err
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old log entries",
	Long:  "Delete log entries older than the specified number of days (default 365)",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		if days <= 0 {
			days = 365
		}

		_, err := wire.LogAdapterWithOutput(cmd.OutOrStdout()).Prune(cmd.Context(), days)
		return err
	},
}

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	// log show
	logShowCmd.Flags().String("actor", "", "Filter by actor")
	logShowCmd.Flags().IntP("limit", "n", 100, "Maximum entries to show")

	// log prune
	logPruneCmd.Flags().Int("days", 365, "Delete entries older than N days")

	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logPruneCmd)

	return logCmd
}
