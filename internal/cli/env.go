package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentpack-dev/agentpack/internal/resolver"
)

var envCmd = &cobra.Command{
	Use:   "env <item>...",
	Short: "Show environment variable readiness for items",
	Long: `Resolve the named items and report every environment variable the
selection requires or optionally uses, with its current status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	sel, err := resolver.Resolve(reg, args)
	if err != nil {
		return err
	}

	for _, it := range sel.Items() {
		if len(it.RequiredEnv) == 0 && len(it.OptionalEnv) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s:\n", it.Name)

		missing := make(map[string]bool)
		for _, name := range it.MissingRequiredEnv() {
			missing[name] = true
		}
		for _, name := range it.RequiredEnv {
			status := "set"
			if missing[name] {
				status = "MISSING"
			}
			fmt.Fprintf(out, "  %-32s required  %s\n", name, status)
		}
		for _, name := range it.OptionalEnv {
			fmt.Fprintf(out, "  %-32s optional\n", name)
		}
	}
	return nil
}
