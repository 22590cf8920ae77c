package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/rfref/internal/core/ledger"
	"github.com/example/rfref/internal/ctxutil"
	"github.com/example/rfref/internal/wire"
)

// actorContext attaches the configured actor so ledger writes record who issued them.
func actorContext(cmd *cobra.Command) context.Context {
	return ctxutil.WithActorID(cmd.Context(), wire.Config().Actor)
}

// IssueCmd returns the issue command
func IssueCmd() *cobra.Command {
	var body string
	var description string

	cmd := &cobra.Command{
		Use:   "issue INVOICE",
		Short: "Issue a creditor reference for an invoice",
		Long: `Record a creditor reference against an invoice in the ledger.

Without --body the ledger assigns the next sequence number as the body.

Examples:
  rfref issue INV-2026-001
  rfref issue INV-2026-002 --body 2348231 --description "March hosting"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.LedgerAdapterWithOutput(cmd.OutOrStdout()).Issue(actorContext(cmd), args[0], body, description)
			return err
		},
	}

	cmd.Flags().StringVarP(&body, "body", "b", "", "Reference body (default: next ledger sequence)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Invoice description")

	return cmd
}

// MatchCmd returns the match command
func MatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match REFERENCE",
		Short: "Find the invoice a remittance reference was issued for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.LedgerAdapterWithOutput(cmd.OutOrStdout()).Match(actorContext(cmd), args[0])
			return err
		},
	}
}

// SettleCmd returns the settle command
func SettleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle REFERENCE",
		Short: "Mark an issued reference as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.LedgerAdapterWithOutput(cmd.OutOrStdout()).Settle(actorContext(cmd), args[0])
			return err
		},
	}
}

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issued references",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && status != ledger.StatusOpen && status != ledger.StatusSettled {
				return fmt.Errorf("invalid status: %s\nValid statuses: %s, %s", status, ledger.StatusOpen, ledger.StatusSettled)
			}
			_, err := wire.LedgerAdapterWithOutput(cmd.OutOrStdout()).List(actorContext(cmd), status)
			return err
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (open, settled)")

	return cmd
}
