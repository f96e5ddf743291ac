package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/staging"
	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

func TestInventoryService_ListFiles(t *testing.T) {
	source := t.TempDir()
	backup := t.TempDir()
	writeFiles(t, source, map[string]string{"ventas_Quito.csv": "x", "leeme.txt": "y"})
	writeFiles(t, backup, map[string]string{"ventas_Ambato.csv": "z"})

	svc := NewInventoryService(
		staging.NewDirectory(source, []string{".csv"}),
		staging.NewDirectory(backup, []string{".csv"}),
		memory.NewSalesStore(),
		nil,
	)

	files, err := svc.ListSourceFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "leeme.txt", files[0].Name)
	assert.Equal(t, "ventas_Quito.csv", files[1].Name)
	assert.Equal(t, int64(1), files[1].Size)

	files, err = svc.ListBackupFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ventas_Ambato.csv", files[0].Name)
}

func TestInventoryService_MissingDirectories(t *testing.T) {
	root := t.TempDir()
	svc := NewInventoryService(
		staging.NewDirectory(filepath.Join(root, "Origen"), nil),
		staging.NewDirectory(filepath.Join(root, "Respaldo"), nil),
		memory.NewSalesStore(),
		nil,
	)

	_, err := svc.ListSourceFiles(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryMissing)

	_, err = svc.ListBackupFiles(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryMissing)
}

func TestInventoryService_Rows(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSalesStore()
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.AppendBatch(ctx, domain.SalesBatch{
		RunID:    "run-1",
		FileName: "ventas_Cuenca.csv",
		Checksum: "abc",
		Records: []domain.SalesRecord{
			{TransactionID: 1, LocalID: 4, Branch: "Cuenca"},
			{TransactionID: 2, LocalID: 4, Branch: "Cuenca"},
		},
	}))
	svc := NewInventoryService(nil, nil, store, nil)

	n, err := svc.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := svc.FetchAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].TransactionID)

	processed, err := svc.ProcessedFiles(ctx, 5)
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Equal(t, "ventas_Cuenca.csv", processed[0].FileName)
	assert.Equal(t, 2, processed[0].Rows)
}

func TestInventoryService_ArchiveHistory(t *testing.T) {
	ctx := context.Background()
	history := newMockSchedulerStore()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, history.RecordResult(ctx, &domain.TaskResult{
			TaskID:         domain.TaskIDArchiveMove,
			StartedAt:      base.Add(time.Duration(i) * 24 * time.Hour),
			Success:        true,
			ItemsProcessed: i,
		}))
	}
	svc := NewInventoryService(nil, nil, memory.NewSalesStore(), history)

	results, err := svc.ArchiveHistory(ctx, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].ItemsProcessed)
	assert.Equal(t, 1, results[1].ItemsProcessed)
}

func TestInventoryService_ArchiveHistoryWithoutStore(t *testing.T) {
	svc := NewInventoryService(nil, nil, memory.NewSalesStore(), nil)

	results, err := svc.ArchiveHistory(context.Background(), 5)

	assert.NoError(t, err)
	assert.Nil(t, results)
}
