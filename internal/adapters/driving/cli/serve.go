package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/logger"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the nightly archive scheduler in the foreground",
	Long: `Keeps the process alive and moves staged exports into the backup
directory every day at schedule.fire_time. With --watch (or watch.enabled),
new uploads are logged and, if watch.auto_consolidate is set, consolidated
automatically.

Stop with Ctrl+C; an in-progress move is allowed to finish.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "watch the source directory for uploads")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if consolidationService != nil {
		if err := consolidationService.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database: %w", err)
		}
	}

	watching := serveWatch
	if !watching && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			watching = settings.Watch.Enabled
		}
	}

	var wg sync.WaitGroup
	if watching && watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watcher.Run(ctx); err != nil {
				logger.Error("upload watcher stopped: %v", err)
			}
		}()
	}

	cmd.Printf("Next move in %s. Press Ctrl+C to stop.\n", formatWait(scheduler.TimeUntilNext()))

	err := scheduler.Start(ctx)
	_ = scheduler.Stop()
	stop()
	wg.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler stopped: %w", err)
	}
	cmd.Println("Scheduler stopped.")
	return nil
}
