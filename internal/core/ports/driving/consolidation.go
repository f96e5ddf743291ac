package driving

import (
	"context"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// ConsolidationService appends staged exports into the consolidated table.
type ConsolidationService interface {
	// EnsureSchema creates the consolidated table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// Consolidate parses every eligible source file and appends its rows.
	// File-level failures are recorded in the report; a non-nil error means
	// the run was aborted and the report is partial.
	Consolidate(ctx context.Context) (*domain.ConsolidationReport, error)
}
