package driven

import (
	"context"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// SalesStore persists consolidated sales rows.
// Implementations open the backing store per call and close it before returning.
type SalesStore interface {
	// EnsureSchema creates the consolidated table and supporting tables if absent.
	// Calling it repeatedly is a no-op. Returns domain.ErrStorageUnavailable
	// when the store cannot be opened or written.
	EnsureSchema(ctx context.Context) error

	// AppendBatch writes every record of one file plus its ledger entry in a
	// single transaction. Returns domain.ErrStorageUnavailable if the store
	// cannot be reached, domain.ErrStorageWrite if the batch was rejected.
	AppendBatch(ctx context.Context, batch domain.SalesBatch) error

	// RowCount returns the number of rows in the consolidated table.
	RowCount(ctx context.Context) (int, error)

	// FetchAll returns every consolidated row in insertion order.
	FetchAll(ctx context.Context) ([]domain.SalesRecord, error)

	// IsProcessed reports whether a file with this checksum is in the ledger.
	IsProcessed(ctx context.Context, checksum string) (bool, error)

	// ProcessedFiles returns ledger entries, most recent first.
	ProcessedFiles(ctx context.Context, limit int) ([]domain.ProcessedFile, error)
}
