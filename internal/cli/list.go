package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentpack-dev/agentpack/internal/lockfile"
)

var listInstalled bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry or installed items",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "List installed items instead of the registry")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listInstalled {
		return listInstalledItems(cmd)
	}
	return listRegistryItems(cmd)
}

func listRegistryItems(cmd *cobra.Command) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	for _, name := range reg.Names() {
		it, _ := reg.Get(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-24s %-10s %s\n", it.Type, it.Name, it.Version, it.Description)
	}
	return nil
}

func listInstalledItems(cmd *cobra.Command) error {
	lock, err := lockfile.Load(filepath.Join(destinationRoot(), lockfile.FileName))
	if err != nil {
		return fmt.Errorf("loading installed state: %w", err)
	}

	names := make([]string, 0, len(lock.Items))
	for name := range lock.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := lock.Items[name]
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-24s %-10s %d files\n", entry.Type, name, entry.Version, len(entry.Files))
	}
	return nil
}
