// Package cli provides CLI commands for the rfref application.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/rfref/internal/wire"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var printForm bool
	var template bool

	cmd := &cobra.Command{
		Use:   "generate BODY...",
		Short: "Generate creditor references for raw bodies",
		Long: `Compute the ISO 11649 check digits for each body and print the reference.

Bodies are 1-21 characters of 0-9 and A-Z. Lowercase letters are accepted
and upper-cased; spaces are ignored unless reject_spaces is set.

With --template, each argument may be a reference template such as
RF00539007547034: the RF prefix is dropped and the check digits recomputed.

Examples:
  rfref generate 539007547034
  rfref generate --print 539007547034 ABCD0754EFGH
  rfref generate --template RF00539007547034`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CheckAdapterWithOutput(cmd.OutOrStdout()).Generate(cmd.Context(), args, printForm, template)
		},
	}

	cmd.Flags().BoolVarP(&printForm, "print", "p", false, "Output the print form (groups of four)")
	cmd.Flags().BoolVarP(&template, "template", "t", false, "Treat arguments as RF00 templates")

	return cmd
}

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	var file string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate [REFERENCE...]",
		Short: "Validate creditor references",
		Long: `Check the structure and check digits of each reference.

Exits with status 1 when any reference is invalid.

Examples:
  rfref validate RF18539007547034
  rfref validate "RF18 5390 0754 7034"
  rfref validate --file remittances.txt
  cat remittances.txt | rfref validate -f -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if file != "" {
				lines, err := readReferencesFrom(file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				inputs = append(inputs, lines...)
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no references given\nHint: pass references as arguments or use --file")
			}

			return wire.CheckAdapterWithOutput(cmd.OutOrStdout()).Validate(cmd.Context(), inputs, quiet)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read one reference per line from file (- for stdin)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing; report through the exit status only")

	return cmd
}

// FormatCmd returns the format command
func FormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format REFERENCE",
		Short: "Show the electronic and print forms of a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.CheckAdapterWithOutput(cmd.OutOrStdout()).Format(cmd.Context(), args[0])
			return err
		},
	}
}

// readReferencesFrom reads references from path, or from stdin when path is "-".
func readReferencesFrom(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return readReferences(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	return readReferences(f)
}

// readReferences returns one reference per non-blank line. Lines starting
// with # are comments.
func readReferences(r io.Reader) ([]string, error) {
	var refs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read references: %w", err)
	}
	return refs, nil
}
