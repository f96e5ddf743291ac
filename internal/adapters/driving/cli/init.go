package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the directories and the consolidated table",
	Long: `Creates the source and backup directories if they are missing and
ensures the database holds the Ventas_Consolidadas table. Safe to run
repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if consolidationService == nil || settingsService == nil {
		return errors.New("services not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, dir := range []string{settings.Paths.Source, settings.Paths.Backup} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		cmd.Printf("Directory ready: %s\n", dir)
	}

	if err := consolidationService.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("failed to prepare database: %w", err)
	}
	cmd.Printf("Database ready: %s\n", settings.Paths.Database)

	return nil
}
