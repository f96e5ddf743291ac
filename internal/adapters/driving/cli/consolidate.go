package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

var consolidateDryRun bool

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Append every staged export to the consolidated table",
	Long: `Parses every export in the source directory, stamps each row with the
branch derived from the filename, and appends the rows to Ventas_Consolidadas.
Files are left in place; run 'ventas move' or let the scheduler archive them.

A file that cannot be parsed or written is reported and skipped; the other
files are still consolidated.`,
	Args: cobra.NoArgs,
	RunE: runConsolidate,
}

func init() {
	consolidateCmd.Flags().BoolVar(&consolidateDryRun, "dry-run", false,
		"parse and report without writing to the database")
	rootCmd.AddCommand(consolidateCmd)
}

func runConsolidate(cmd *cobra.Command, _ []string) error {
	svc := consolidationService
	if consolidateDryRun {
		svc = dryRunService
	}
	if svc == nil {
		return errors.New("consolidation service not configured")
	}

	report, err := svc.Consolidate(context.Background())
	if report != nil {
		printConsolidationReport(cmd, report, consolidateDryRun)
	}
	if err != nil {
		return fmt.Errorf("consolidation aborted: %w", err)
	}
	if report.Status() == domain.RunStatusFailed {
		return errors.New("no file could be consolidated")
	}
	return nil
}

func printConsolidationReport(cmd *cobra.Command, report *domain.ConsolidationReport, dryRun bool) {
	p := newPrinter(cmd)

	if len(report.Files) == 0 {
		cmd.Println("No exports to consolidate.")
		return
	}

	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		result := "ok"
		switch {
		case f.Err != nil:
			result = f.Err.Error()
		case f.Skipped:
			result = "already consolidated"
		}
		rows = append(rows, []string{
			f.FileName,
			f.Branch.Name,
			strconv.Itoa(f.Rows),
			p.OK(f.Err == nil, result),
		})
	}
	cmd.Println(p.Table([]string{"File", "Branch", "Rows", "Result"}, rows))

	verb := "appended"
	if dryRun {
		verb = "parsed (dry run)"
	}
	cmd.Printf("Status: %s  %d rows %s from %d files, %d failed\n",
		p.Status(report.Status()), report.RowsAppended(), verb, len(report.Files), report.Failed())
	cmd.Println(p.Muted("Run " + report.RunID))
}
