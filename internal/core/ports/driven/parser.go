package driven

import (
	"context"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// SalesParser parses a tabular export into sales records.
// Branch fields are left zero; the caller stamps them from the filename.
type SalesParser interface {
	// Parse reads every row of file. Any read, header, or value error is
	// returned wrapped in domain.ErrFileParse.
	Parse(ctx context.Context, file domain.SourceFile) ([]domain.SalesRecord, error)

	// Supports reports whether the parser handles the file's extension.
	Supports(file domain.SourceFile) bool
}
