package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// setupTestStore creates a store in a temporary directory with its schema applied.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "ventas.db"))
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func testBatch(fileName string, n int) domain.SalesBatch {
	branch := domain.ResolveBranch(fileName)
	records := make([]domain.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.SalesRecord{
			TransactionID: int64(1000 + i),
			Date:          "2024-03-0" + string(rune('1'+i%9)),
			CategoryID:    3,
			ProductID:     int64(40 + i),
			Product:       "Cafe molido",
			Quantity:      2,
			UnitPrice:     decimal.RequireFromString("4.25"),
			TotalSale:     decimal.RequireFromString("8.50"),
		}.WithBranch(branch))
	}
	return domain.SalesBatch{
		RunID:    "run-1",
		FileName: fileName,
		Checksum: "sum-" + fileName,
		Records:  records,
	}
}

// openRaw opens the database directly for assertions on the physical schema.
func openRaw(t *testing.T, store *Store) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", store.Path())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// ==================== Schema Tests ====================

func TestNewStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewStore("").Path())
	assert.Equal(t, "data/x.db", NewStore("data/x.db").Path())
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.EnsureSchema(ctx))
	}

	db := openRaw(t, store)

	var tables int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'Ventas_Consolidadas'",
	).Scan(&tables))
	assert.Equal(t, 1, tables)

	rows, err := db.Query("PRAGMA table_info(Ventas_Consolidadas)")
	require.NoError(t, err)
	defer rows.Close()

	var columns, types []string
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk))
		columns = append(columns, name)
		types = append(types, typ)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{
		"IdTransaccion", "IdLocal", "Sucursal", "Fecha", "IdCategoria",
		"IdProducto", "Producto", "Cantidad", "PrecioUnitario", "TotalVenta",
	}, columns)
	assert.Equal(t, []string{
		"INTEGER", "INTEGER", "TEXT", "TEXT", "INTEGER",
		"INTEGER", "TEXT", "INTEGER", "REAL", "REAL",
	}, types)

	var versions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestEnsureSchema_KeepsExistingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ventas.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE Ventas_Consolidadas (
		IdTransaccion INTEGER, IdLocal INTEGER, Sucursal TEXT, Fecha TEXT, IdCategoria INTEGER,
		IdProducto INTEGER, Producto TEXT, Cantidad INTEGER, PrecioUnitario REAL, TotalVenta REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO Ventas_Consolidadas VALUES (1, 1, 'Quito', '2024-01-01', 1, 1, 'Pan', 1, 0.5, 0.5)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store := NewStore(path)
	require.NoError(t, store.EnsureSchema(context.Background()))

	count, err := store.RowCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnsureSchema_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ventas.db")
	store := NewStore(path)

	require.NoError(t, store.EnsureSchema(context.Background()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestEnsureSchema_Unavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := NewStore(filepath.Join(blocker, "ventas.db"))
	err := store.EnsureSchema(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.True(t, domain.IsFatal(err))
}

// ==================== Sales Store Tests ====================

func TestAppendBatch_AndFetchAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendBatch(ctx, testBatch("ventas_Quito.csv", 3)))
	require.NoError(t, store.AppendBatch(ctx, testBatch("ventas_Cuenca.csv", 2)))

	count, err := store.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	records, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)

	first := records[0]
	assert.Equal(t, int64(1000), first.TransactionID)
	assert.Equal(t, 1, first.LocalID)
	assert.Equal(t, "Quito", first.Branch)
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, "Cafe molido", first.Product)
	assert.True(t, decimal.RequireFromString("4.25").Equal(first.UnitPrice))
	assert.True(t, decimal.RequireFromString("8.5").Equal(first.TotalSale))

	last := records[4]
	assert.Equal(t, 4, last.LocalID)
	assert.Equal(t, "Cuenca", last.Branch)
}

func TestAppendBatch_Duplicates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	batch := testBatch("ventas_Ambato.csv", 2)
	require.NoError(t, store.AppendBatch(ctx, batch))
	require.NoError(t, store.AppendBatch(ctx, batch))

	count, err := store.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestAppendBatch_WithoutSchema(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "ventas.db"))
	db := openRaw(t, store)
	_, err := db.Exec("CREATE TABLE otra (id INTEGER)")
	require.NoError(t, err)

	err = store.AppendBatch(context.Background(), testBatch("ventas_Quito.csv", 1))

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.True(t, domain.IsFatal(err))
}

func TestAppendBatch_DatabaseDeleted(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, os.Remove(store.Path()))

	err := store.AppendBatch(ctx, testBatch("ventas_Quito.csv", 1))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.True(t, domain.IsFatal(err))

	_, err = store.IsProcessed(ctx, "sum-ventas_Quito.csv")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	assert.NoFileExists(t, store.Path(), "write paths must not recreate the database")
}

func TestAppendBatch_RejectedRowIsWriteError(t *testing.T) {
	store := setupTestStore(t)
	db := openRaw(t, store)
	_, err := db.Exec(`CREATE TRIGGER rechazar BEFORE INSERT ON Ventas_Consolidadas
		BEGIN SELECT RAISE(ABORT, 'rechazado'); END`)
	require.NoError(t, err)

	err = store.AppendBatch(context.Background(), testBatch("ventas_Quito.csv", 1))

	assert.ErrorIs(t, err, domain.ErrStorageWrite)
	assert.False(t, domain.IsFatal(err))
}

func TestAppendBatch_Unavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	store := NewStore(filepath.Join(blocker, "ventas.db"))

	err := store.AppendBatch(context.Background(), testBatch("ventas_Quito.csv", 1))

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestRowCount_NoDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ventas.db")
	store := NewStore(path)

	_, err := store.RowCount(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "read paths must not create the database")
}

func TestFetchAll_Empty(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchAll_NullColumns(t *testing.T) {
	store := setupTestStore(t)
	db := openRaw(t, store)
	_, err := db.Exec("INSERT INTO Ventas_Consolidadas (IdTransaccion, Producto) VALUES (7, 'Leche')")
	require.NoError(t, err)

	records, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].TransactionID)
	assert.Equal(t, "Leche", records[0].Product)
	assert.Equal(t, "", records[0].Branch)
	assert.True(t, records[0].UnitPrice.IsZero())
}

// ==================== Ledger Tests ====================

func TestLedger(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "sum-ventas_Quito.csv")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, store.AppendBatch(ctx, testBatch("ventas_Quito.csv", 2)))
	require.NoError(t, store.AppendBatch(ctx, testBatch("ventas_Ambato.csv", 1)))

	processed, err = store.IsProcessed(ctx, "sum-ventas_Quito.csv")
	require.NoError(t, err)
	assert.True(t, processed)

	files, err := store.ProcessedFiles(ctx, 0)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "ventas_Ambato.csv", files[0].FileName)
	assert.Equal(t, 1, files[0].Rows)
	assert.Equal(t, "run-1", files[0].RunID)
	assert.False(t, files[0].ConsolidatedAt.IsZero())
	assert.Equal(t, "ventas_Quito.csv", files[1].FileName)
	assert.Equal(t, 2, files[1].Rows)

	limited, err := store.ProcessedFiles(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
