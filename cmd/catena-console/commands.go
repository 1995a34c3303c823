package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/procentric/catena/internal/config"
	"github.com/procentric/catena/internal/console"
	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/netports"
	"github.com/procentric/catena/internal/system"
)

var (
	noSudo    bool
	portsFile string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&noSudo, "no-sudo", false, "Run system commands without sudo")
	rootCmd.PersistentFlags().StringVar(&portsFile, "ports-file", "", "Network ports file (overrides configuration)")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(checkCmd)
}

// wizardCmd launches the setup wizard directly
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the setup wizard",
	Long: `Launch the guided setup wizard.

The wizard walks through hostname, timezone, time and network
configuration in order. It is presented automatically on an
unconfigured appliance; this command launches it on demand.`,
	Example: `  # Launch the wizard
  catena-console wizard`,
	RunE: runWizard,
}

// checkCmd reports whether the appliance needs initial setup
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether initial setup is required",
	Long: `Inspect the network ports file and report whether the appliance
still needs initial setup.

Exits with status 0 either way; the verdict is printed to stdout.`,
	Example: `  # Check setup state
  catena-console check

  # Check against a specific ports file
  catena-console check --ports-file /etc/procentric/network_ports`,
	RunE: runCheck,
}

// setup loads settings, initializes logging and builds the system manager.
func setup() (*config.Settings, *system.Manager, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := logging.Initialize(settings.Log.Level, settings.Log.File); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	useSudo := settings.UseSudo && !noSudo
	mgr := system.NewManager(system.ExecRunner{}, useSudo)
	return settings, mgr, nil
}

func resolvePortsFile(settings *config.Settings) string {
	if portsFile != "" {
		return portsFile
	}
	return settings.NetworkPorts.File
}

// requireTerminal rejects launches from pipes and cron jobs; the console is
// interactive only.
func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("catena-console requires an interactive terminal")
	}
	return nil
}

func runConsole(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}
	settings, mgr, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	initialSetup := netports.NeedsSetup(resolvePortsFile(settings), settings.NetworkPorts.ExpectedName)
	logging.Info("Console starting", zap.Bool("initialSetup", initialSetup))

	opts := console.Options{
		InitialSetup: initialSetup,
		StartWizard:  initialSetup,
	}
	return console.Run(mgr, console.DefaultMenu(mgr, initialSetup), opts)
}

func runWizard(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}
	settings, mgr, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	initialSetup := netports.NeedsSetup(resolvePortsFile(settings), settings.NetworkPorts.ExpectedName)
	logging.Info("Wizard starting", zap.Bool("initialSetup", initialSetup))

	opts := console.Options{
		InitialSetup: initialSetup,
		StartWizard:  true,
	}
	return console.Run(mgr, console.DefaultMenu(mgr, initialSetup), opts)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, _, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	path := resolvePortsFile(settings)
	if netports.NeedsSetup(path, settings.NetworkPorts.ExpectedName) {
		fmt.Printf("Initial setup required: no interface in %s matches %q\n",
			path, settings.NetworkPorts.ExpectedName)
	} else {
		fmt.Println("Appliance is configured.")
	}
	return nil
}
