// Command ventas consolidates branch sales exports and archives them nightly.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/staging"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/tabular"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/ventas-cli/internal/core/services"
)

// envConfigDir overrides the config directory (default ~/.ventas).
const envConfigDir = "VENTAS_CONFIG_DIR"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore(os.Getenv(envConfigDir))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings from %s: %w", configStore.Path(), err)
	}

	store := sqlite.NewStore(settings.Paths.Database)
	source := staging.NewDirectory(settings.Paths.Source, settings.Consolidation.Extensions)
	backup := staging.NewDirectory(settings.Paths.Backup, settings.Consolidation.Extensions)
	mover := staging.NewMover(settings.Paths.Backup, settings.Archive.Collision)
	parser := tabular.NewDefaultRegistry()

	// Consolidation and archival work on the same source directory.
	lock := services.NewPipelineLock()
	consolidation := services.NewConsolidationService(
		source, parser, store, lock, settings.Consolidation.SkipDuplicates,
	)
	dryRun := services.NewConsolidationService(source, parser, memory.NewSalesStore(), lock, false)
	archive := services.NewArchiveService(source, mover, lock)
	inventory := services.NewInventoryService(source, backup, store, store.SchedulerStore())

	schedulerConfig, err := services.SchedulerConfig(settings)
	if err != nil {
		return err
	}
	scheduler := services.NewScheduler(schedulerConfig, store.SchedulerStore(), archive)

	// Uploads stay in the source directory until archived, so automatic runs
	// always skip files already in the ledger.
	autoConsolidation := services.NewConsolidationService(source, parser, store, lock, true)
	watcher := watch.New(settings.Paths.Source, source.Matches, autoConsolidation, watch.Config{
		AutoConsolidate: settings.Watch.AutoConsolidate,
		MinInterval:     settings.Watch.MinInterval,
	})

	cli.Configure(cli.Services{
		Consolidation: consolidation,
		DryRun:        dryRun,
		Archive:       archive,
		Inventory:     inventory,
		Settings:      settingsService,
		Scheduler:     scheduler,
		Watcher:       watcher,
	})
	return cli.Execute()
}
