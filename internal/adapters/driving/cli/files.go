package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

var filesBackup bool

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List files waiting in the source directory",
	Args:  cobra.NoArgs,
	RunE:  runFiles,
}

func init() {
	filesCmd.Flags().BoolVarP(&filesBackup, "backup", "b", false, "list the backup directory instead")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, _ []string) error {
	if inventoryService == nil {
		return errors.New("inventory service not configured")
	}

	ctx := context.Background()
	list, where := inventoryService.ListSourceFiles, "source"
	if filesBackup {
		list, where = inventoryService.ListBackupFiles, "backup"
	}

	files, err := list(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryMissing) {
			cmd.Printf("The %s directory does not exist yet. Run 'ventas init'.\n", where)
			return nil
		}
		return fmt.Errorf("failed to list %s files: %w", where, err)
	}

	if len(files) == 0 {
		cmd.Printf("No files in the %s directory.\n", where)
		return nil
	}

	p := newPrinter(cmd)
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Name,
			domain.ResolveBranch(f.Name).Name,
			strconv.FormatInt(f.Size, 10),
			f.ModTime.Format("2006-01-02 15:04"),
		})
	}
	cmd.Println(p.Table([]string{"File", "Branch", "Bytes", "Modified"}, rows))
	cmd.Printf("%d files\n", len(files))
	return nil
}
