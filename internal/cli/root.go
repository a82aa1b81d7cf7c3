package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentpack-dev/agentpack/internal/branding"
	"github.com/agentpack-dev/agentpack/internal/config"
	"github.com/agentpack-dev/agentpack/internal/logging"
	"github.com/agentpack-dev/agentpack/internal/registry"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbosity    int
	registryFlag string
	destFlag     string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves, merges, and atomically installs selections of
registry items (agent, command, and server bundles) into a destination
directory, recording a lock file for verification and uninstall.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().StringVar(&registryFlag, "registry", "", "Registry directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&destFlag, "dest", "", "Destination root (overrides config)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// registryRoot returns the effective registry directory.
func registryRoot() string {
	if registryFlag != "" {
		return registryFlag
	}
	return config.RegistryRoot()
}

// destinationRoot returns the effective destination root.
func destinationRoot() string {
	if destFlag != "" {
		return destFlag
	}
	return config.DestinationRoot()
}

// loadRegistry loads the effective registry directory.
func loadRegistry() (*registry.Registry, error) {
	return registry.Load(registryRoot())
}
