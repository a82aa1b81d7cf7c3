package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/spf13/cobra"

	"github.com/agentpack-dev/agentpack/internal/fragment"
	"github.com/agentpack-dev/agentpack/internal/installer"
	"github.com/agentpack-dev/agentpack/internal/resolver"
)

var (
	installDryRun          bool
	installYes             bool
	installFailOnConflicts bool
)

var installCmd = &cobra.Command{
	Use:   "install <item>...",
	Short: "Install items and their dependencies",
	Long: `Resolve the requested items against the registry, merge their server
configuration fragments, and install the whole selection atomically into
the destination root. Dependencies are always included.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be installed without writing anything")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Skip confirmation prompt")
	installCmd.Flags().BoolVar(&installFailOnConflicts, "fail-on-conflicts", false, "Abort when configuration fragments conflict")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	sel, err := resolver.Resolve(reg, args)
	if err != nil {
		return err
	}

	merged, conflicts := fragment.Merge(sel.Items())
	sel.Conflicts = conflicts

	for _, c := range sel.Conflicts {
		fmt.Fprintf(out, "  ⚠️  config conflict at %s: %s sets %v, %s sets %v (using %s)\n",
			c.Path, c.FirstItem, c.FirstValue, c.SecondItem, c.SecondValue, c.SecondItem)
	}
	if installFailOnConflicts && len(sel.Conflicts) > 0 {
		return fmt.Errorf("aborting: %d configuration conflicts", len(sel.Conflicts))
	}

	ins := installer.New(reg, destinationRoot())

	preview, err := ins.DryRun(sel)
	if err != nil {
		return err
	}

	printPlan(out, sel, preview)

	if installDryRun {
		return nil
	}

	if existing := ins.ExistingFiles(sel); len(existing) > 0 {
		fmt.Fprintf(out, "  %d destination files will be replaced (e.g. %s)\n", len(existing), existing[0])
	}
	warnMissingEnv(out, sel)

	// Prompt for confirmation unless -y is set.
	if !installYes {
		fmt.Fprint(out, "? Proceed with installation? (Y/n) ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
			if answer != "" && answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "Installation cancelled.")
				return nil
			}
		}
	}

	if err := ins.Install(sel, merged); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Installed %d items into %s\n", sel.Len(), destinationRoot())
	return nil
}

// printPlan summarizes the resolved selection and its file operations.
func printPlan(out io.Writer, sel *resolver.Selection, preview *installer.Preview) {
	fmt.Fprintln(out, "Resolving dependencies...")
	fmt.Fprintln(out)

	for _, it := range sel.Items() {
		marker := ""
		if !sel.IsExplicit(it.Name) {
			marker = " (dependency)"
		}
		fmt.Fprintf(out, "  %s: %s %s%s\n", it.Type, it.Name, it.Version, marker)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %d files, %s total\n", len(preview.Ops), bytesize.New(float64(preview.TotalSize)))
}

// warnMissingEnv reports unset required environment variables across
// the selection. Advisory only.
func warnMissingEnv(out io.Writer, sel *resolver.Selection) {
	for _, it := range sel.Items() {
		for _, name := range it.MissingRequiredEnv() {
			fmt.Fprintf(out, "  ⚠️  %s requires %s, which is not set\n", it.Name, name)
		}
	}
}
