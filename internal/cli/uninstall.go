package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentpack-dev/agentpack/internal/installer"
)

var uninstallForce bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <item>...",
	Short: "Remove installed items",
	Long: `Remove the destination files owned by the named items, as recorded in
the lock file. Files modified since install are refused unless --force
is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallForce, "force", "f", false, "Remove files even if they were modified since install")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	ins := installer.New(reg, destinationRoot())
	if err := ins.Uninstall(args, uninstallForce); err != nil {
		return err
	}

	for _, name := range args {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
	}
	return nil
}
