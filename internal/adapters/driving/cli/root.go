// Package cli provides the ventas command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ventas-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var verbose bool

// Runner is a long-running background component started by serve.
type Runner interface {
	Run(ctx context.Context) error
}

// Services are the driving ports the commands call into.
type Services struct {
	Consolidation driving.ConsolidationService
	// DryRun consolidates into a throwaway store; optional.
	DryRun    driving.ConsolidationService
	Archive   driving.ArchiveService
	Inventory driving.InventoryService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
	// Watcher observes the source directory during serve; optional.
	Watcher Runner
}

var (
	consolidationService driving.ConsolidationService
	dryRunService        driving.ConsolidationService
	archiveService       driving.ArchiveService
	inventoryService     driving.InventoryService
	settingsService      driving.SettingsService
	scheduler            driving.Scheduler
	watcher              Runner
)

var rootCmd = &cobra.Command{
	Use:   "ventas",
	Short: "Consolidate branch sales exports and archive them nightly",
	Long: `ventas reads the sales exports each branch uploads into the source
directory, appends their rows to the Ventas_Consolidadas table, and moves
processed files into the backup directory once a day.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Configure installs the services used by the commands.
func Configure(s Services) {
	consolidationService = s.Consolidation
	dryRunService = s.DryRun
	archiveService = s.Archive
	inventoryService = s.Inventory
	settingsService = s.Settings
	scheduler = s.Scheduler
	watcher = s.Watcher
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout so it can be
// piped; logs stay on stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
