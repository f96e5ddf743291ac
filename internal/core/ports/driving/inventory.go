package driving

import (
	"context"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// InventoryService answers read-only questions for the presentation layer.
type InventoryService interface {
	// ListSourceFiles returns every file in the source directory.
	ListSourceFiles(ctx context.Context) ([]domain.SourceFile, error)

	// ListBackupFiles returns every file in the backup directory.
	ListBackupFiles(ctx context.Context) ([]domain.SourceFile, error)

	// RowCount returns the number of consolidated rows.
	RowCount(ctx context.Context) (int, error)

	// FetchAllRows returns every consolidated row.
	FetchAllRows(ctx context.Context) ([]domain.SalesRecord, error)

	// ProcessedFiles returns recent ledger entries, most recent first.
	ProcessedFiles(ctx context.Context, limit int) ([]domain.ProcessedFile, error)

	// ArchiveHistory returns recent scheduled archival results, most recent first.
	ArchiveHistory(ctx context.Context, limit int) ([]domain.TaskResult, error)
}
