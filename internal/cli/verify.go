package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentpack-dev/agentpack/internal/installer"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check installed files against the lock file",
	Long: `Recompute the content hash of every installed file and compare it with
the hash recorded at install time, reporting modified or missing files.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	report, err := installer.New(reg, destinationRoot()).Verify()
	if err != nil {
		return err
	}

	drifted := 0
	for _, f := range report.Files {
		switch f.State {
		case installer.StateOK:
			fmt.Fprintf(out, "  ✓ %s (%s)\n", f.Path, f.Item)
		default:
			fmt.Fprintf(out, "  ✗ %s (%s): %s\n", f.Path, f.Item, f.State)
			drifted++
		}
	}

	if drifted > 0 {
		return fmt.Errorf("%d of %d files drifted from the lock file", drifted, len(report.Files))
	}

	fmt.Fprintf(out, "✓ %d files verified\n", len(report.Files))
	return nil
}
