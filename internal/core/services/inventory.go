package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
)

// Ensure InventoryService implements the interface.
var _ driving.InventoryService = (*InventoryService)(nil)

// InventoryService serves read-only views of the directories and the store.
type InventoryService struct {
	source  driven.FileSource
	backup  driven.FileSource
	store   driven.SalesStore
	history driven.SchedulerStore
}

// NewInventoryService creates an inventory service. history may be nil.
func NewInventoryService(
	source driven.FileSource,
	backup driven.FileSource,
	store driven.SalesStore,
	history driven.SchedulerStore,
) *InventoryService {
	return &InventoryService{
		source:  source,
		backup:  backup,
		store:   store,
		history: history,
	}
}

// ListSourceFiles returns every file in the source directory.
func (s *InventoryService) ListSourceFiles(ctx context.Context) ([]domain.SourceFile, error) {
	files, err := s.source.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source files: %w", err)
	}
	return files, nil
}

// ListBackupFiles returns every file in the backup directory.
func (s *InventoryService) ListBackupFiles(ctx context.Context) ([]domain.SourceFile, error) {
	files, err := s.backup.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list backup files: %w", err)
	}
	return files, nil
}

// RowCount returns the number of consolidated rows.
func (s *InventoryService) RowCount(ctx context.Context) (int, error) {
	n, err := s.store.RowCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

// FetchAllRows returns every consolidated row.
func (s *InventoryService) FetchAllRows(ctx context.Context) ([]domain.SalesRecord, error) {
	rows, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	return rows, nil
}

// ProcessedFiles returns recent ledger entries.
func (s *InventoryService) ProcessedFiles(ctx context.Context, limit int) ([]domain.ProcessedFile, error) {
	files, err := s.store.ProcessedFiles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list processed files: %w", err)
	}
	return files, nil
}

// ArchiveHistory returns recent scheduled archival results.
func (s *InventoryService) ArchiveHistory(ctx context.Context, limit int) ([]domain.TaskResult, error) {
	if s.history == nil {
		return nil, nil
	}
	results, err := s.history.GetTaskHistory(ctx, domain.TaskIDArchiveMove, limit)
	if err != nil {
		return nil, fmt.Errorf("archive history: %w", err)
	}
	return results, nil
}
