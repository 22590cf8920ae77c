package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/rfref/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rfref configuration",
	}

	cmd.AddCommand(configInitCmd())

	return cmd
}

func configInitCmd() *cobra.Command {
	var rejectSpaces bool
	var dbPath string
	var actor string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write .rfref/config.json in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.RejectSpaces = rejectSpaces
			cfg.DBPath = dbPath
			cfg.Actor = actor
			return configInitRunE(os.Getwd, cmd.OutOrStdout(), cfg, force)
		},
	}

	cmd.Flags().BoolVar(&rejectSpaces, "reject-spaces", false, "Treat spaces in input as invalid characters")
	cmd.Flags().StringVar(&dbPath, "db", "", "Ledger database path (default: ~/.rfref/rfref.db)")
	cmd.Flags().StringVar(&actor, "actor", "", "Name recorded on issued references")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}

// configInitRunE holds the init logic with injected dependencies for testing.
func configInitRunE(getwd func() (string, error), out io.Writer, cfg *config.Config, force bool) error {
	dir, err := getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	if !force {
		_, err := config.LoadConfig(dir)
		if err == nil {
			return fmt.Errorf("config already exists in %s\nHint: use --force to overwrite", dir)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.SaveConfig(dir, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Wrote %s/.rfref/config.json\n", dir)
	return nil
}
