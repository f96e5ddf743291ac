package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move staged exports into the backup directory now",
	Long: `Moves every export in the source directory into the backup directory,
exactly as the nightly scheduled run does. Same-named files in the backup
directory are handled by the archive.collision setting.`,
	Args: cobra.NoArgs,
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	report, err := archiveService.MoveProcessedFiles(context.Background())
	if report != nil {
		printMoveReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("move aborted: %w", err)
	}
	if report.Status() == domain.RunStatusFailed {
		return errors.New("no file could be moved")
	}
	return nil
}

func printMoveReport(cmd *cobra.Command, report *domain.MoveReport) {
	p := newPrinter(cmd)

	if len(report.Files) == 0 {
		cmd.Println("No exports to move.")
		return
	}

	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		result := f.Destination
		if f.Err != nil {
			result = f.Err.Error()
		}
		rows = append(rows, []string{f.FileName, p.OK(f.Err == nil, result)})
	}
	cmd.Println(p.Table([]string{"File", "Moved to"}, rows))
	cmd.Printf("Status: %s  %d moved, %d failed\n", p.Status(report.Status()), report.Moved(), report.Failed())
}
