package driving

import (
	"context"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// ArchiveService moves processed files from the source to the backup directory.
type ArchiveService interface {
	// MoveProcessedFiles relocates every eligible source file.
	// File-level failures are recorded in the report; a non-nil error means
	// the run was aborted and the report is partial.
	MoveProcessedFiles(ctx context.Context) (*domain.MoveReport, error)
}
