package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

var statusHistory int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline status",
	Long: `Shows how many rows are consolidated, how many exports are waiting,
when the next scheduled move happens, and recent consolidation and archive
runs.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusHistory, "history", 5, "number of recent runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if inventoryService == nil {
		return errors.New("inventory service not configured")
	}

	ctx := context.Background()
	p := newPrinter(cmd)

	cmd.Println(p.Title("Pipeline"))

	count, err := inventoryService.RowCount(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cmd.Println("  Consolidated rows: database not created (run 'ventas init')")
	case err != nil:
		return fmt.Errorf("failed to count rows: %w", err)
	default:
		cmd.Printf("  Consolidated rows: %d\n", count)
	}

	cmd.Printf("  Waiting in source: %s\n", countFiles(ctx, inventoryService.ListSourceFiles))
	cmd.Printf("  Archived in backup: %s\n", countFiles(ctx, inventoryService.ListBackupFiles))

	if scheduler != nil {
		wait := scheduler.TimeUntilNext()
		cmd.Printf("  Next scheduled move: in %s (%s)\n",
			formatWait(wait), time.Now().Add(wait).Format("2006-01-02 15:04"))
	}
	cmd.Println()

	if statusHistory <= 0 {
		return nil
	}

	if files, err := inventoryService.ProcessedFiles(ctx, statusHistory); err == nil && len(files) > 0 {
		cmd.Println(p.Title("Recently consolidated"))
		rows := make([][]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, []string{
				f.ConsolidatedAt.Local().Format("2006-01-02 15:04:05"),
				f.FileName,
				strconv.Itoa(f.Rows),
			})
		}
		cmd.Println(p.Table([]string{"When", "File", "Rows"}, rows))
	}

	if results, err := inventoryService.ArchiveHistory(ctx, statusHistory); err == nil && len(results) > 0 {
		cmd.Println(p.Title("Scheduled moves"))
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			outcome := "ok"
			if !r.Success {
				outcome = r.Error
			}
			rows = append(rows, []string{
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				strconv.Itoa(r.ItemsProcessed),
				p.OK(r.Success, outcome),
			})
		}
		cmd.Println(p.Table([]string{"When", "Moved", "Result"}, rows))
	}

	return nil
}

func countFiles(ctx context.Context, list func(context.Context) ([]domain.SourceFile, error)) string {
	files, err := list(ctx)
	if errors.Is(err, domain.ErrDirectoryMissing) {
		return "directory missing"
	}
	if err != nil {
		return "unavailable (" + err.Error() + ")"
	}
	return strconv.Itoa(len(files)) + " files"
}

// formatWait renders a duration as "5h03m" or "42s".
func formatWait(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Second).String()
	}
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
