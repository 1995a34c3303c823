// Catena-console is the on-device configuration console for Catena
// appliances.
//
// It presents a terminal menu for configuring hostname, timezone, system
// time and network interfaces, delegating the actual changes to the
// standard system utilities (hostnamectl, timedatectl, tzselect, nmtui).
// On an unconfigured appliance it launches a guided setup wizard instead
// of the menu.
//
// Usage:
//
//	catena-console [command] [flags]
//
// Running without arguments launches the console.
// See 'catena-console --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/procentric/catena/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catena-console",
	Short: "Catena Appliance Configuration Console",
	Long: `A terminal configuration console for Catena appliances.

Provides a menu for configuring hostname, timezone, system time and
network interfaces. System changes are delegated to hostnamectl,
timedatectl, tzselect and nmtui.

If no command is specified, the console launches. When the network
ports file shows no interface matching the expected naming convention,
the setup wizard is presented first.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the console when no subcommand provided
		return runConsole(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("catena-console %s (commit: %s)\n", version.Version, version.Commit)
	},
}
