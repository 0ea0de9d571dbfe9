package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/scaffold/pkg/version"
)

// errNotInitialized is returned when a command runs without dependencies.
var errNotInitialized = errors.New("dependencies not initialized")

var rootCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Generate Go projects from composable templates",
	Long: `scaffold generates ready-to-build Go projects from a template family,
a database engine and a database access library.

Templates are layered: a family base, then engine-specific files, then
library-specific files. Every valid combination produces a tree that
passes go build.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("scaffold %s\n", version.GetFullVersion()))

	rootCmd.PersistentFlags().String("config", "", "Config file (default: $SCAFFOLD_CONFIG or <user config dir>/scaffold/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and animations")
}

// initRoot wires dependencies unless a test already injected them.
func initRoot(cmd *cobra.Command, _ []string) error {
	if deps != nil {
		return nil
	}
	return InitDependencies(DepsOptions{
		ConfigFile: getStringFlag(cmd, "config"),
		Verbose:    getBoolFlag(cmd, "verbose"),
		NoColor:    getBoolFlag(cmd, "no-color"),
		LogOutput:  cmd.ErrOrStderr(),
	})
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getIntFlag retrieves an int flag value from the command.
func getIntFlag(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return val
}

// getStringSliceFlag retrieves a string slice flag value from the command.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

// requireDeps returns the initialized dependencies.
func requireDeps() (*Dependencies, error) {
	if deps == nil {
		return nil, errNotInitialized
	}
	return deps, nil
}
