package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "ventas.db"

// timeLayout is a fixed-width UTC layout so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store is a SQLite-backed sales store. It holds only the database path;
// every operation opens its own handle and closes it before returning.
type Store struct {
	path string
}

var _ driven.SalesStore = (*Store)(nil)

// NewStore creates a store for the database file at path.
// If path is empty, defaults to ventas.db in the working directory.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SchedulerStore returns a SchedulerStore interface backed by this database.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// open opens and pings the database. Failures are reported as
// domain.ErrStorageUnavailable. With mustExist the file is opened read-write
// only, so a missing database fails instead of being created empty.
func (s *Store) open(ctx context.Context, mustExist bool) (*sql.DB, error) {
	dsn := s.path + "?_pragma=busy_timeout(5000)"
	if mustExist {
		dsn = "file:" + s.path + "?mode=rw&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", s.path, domain.ErrStorageUnavailable)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s (%v): %w", s.path, err, domain.ErrStorageUnavailable)
	}
	return db, nil
}

// withDB runs fn against a freshly opened handle.
func (s *Store) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := s.open(ctx, false)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// withSchemaDB is withDB for paths that run after EnsureSchema. A database
// or table that has gone missing is reported as domain.ErrStorageUnavailable.
func (s *Store) withSchemaDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := s.open(ctx, true)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := fn(db); err != nil {
		if isMissingTable(err) {
			return fmt.Errorf("database %s lost its schema (%v): %w", s.path, err, domain.ErrStorageUnavailable)
		}
		return err
	}
	return nil
}

// withExistingDB is withDB for read paths: it refuses to create the database
// file and reports domain.ErrNotFound when it or the schema is absent.
func (s *Store) withExistingDB(ctx context.Context, fn func(db *sql.DB) error) error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("database %s: %w", s.path, domain.ErrNotFound)
	}
	err := s.withDB(ctx, fn)
	if err != nil && isMissingTable(err) {
		return fmt.Errorf("database %s has no schema: %w", s.path, domain.ErrNotFound)
	}
	return err
}

// EnsureSchema applies pending migrations. Every migration is written with
// IF NOT EXISTS, so repeated calls leave the schema unchanged.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory %s (%v): %w", dir, err, domain.ErrStorageUnavailable)
		}
	}
	return s.withDB(ctx, func(db *sql.DB) error {
		if err := migrate(ctx, db, migrations.FS); err != nil {
			return fmt.Errorf("running migrations (%v): %w", err, domain.ErrStorageUnavailable)
		}
		return nil
	})
}

// migrate runs all pending migrations and records each applied version.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT OR IGNORE INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// AppendBatch inserts every record of the batch and its ledger row in one
// transaction. Nothing is written if any insert fails.
func (s *Store) AppendBatch(ctx context.Context, batch domain.SalesBatch) error {
	err := s.withSchemaDB(ctx, func(db *sql.DB) error {
		return appendBatch(ctx, db, batch)
	})
	if err != nil && !errors.Is(err, domain.ErrStorageUnavailable) {
		return fmt.Errorf("appending %s (%v): %w", batch.FileName, err, domain.ErrStorageWrite)
	}
	return err
}

func appendBatch(ctx context.Context, db *sql.DB, batch domain.SalesBatch) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO Ventas_Consolidadas (
			IdTransaccion, IdLocal, Sucursal, Fecha, IdCategoria,
			IdProducto, Producto, Cantidad, PrecioUnitario, TotalVenta
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range batch.Records {
		if _, err = stmt.ExecContext(ctx,
			r.TransactionID, r.LocalID, r.Branch, r.Date, r.CategoryID,
			r.ProductID, r.Product, r.Quantity,
			r.UnitPrice.InexactFloat64(), r.TotalSale.InexactFloat64(),
		); err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO archivos_procesados (file_name, checksum, run_id, rows, consolidated_at)
		VALUES (?, ?, ?, ?, ?)
	`, batch.FileName, batch.Checksum, batch.RunID, len(batch.Records),
		time.Now().UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("recording ledger entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// RowCount returns the number of consolidated rows.
func (s *Store) RowCount(ctx context.Context) (int, error) {
	var count int
	err := s.withExistingDB(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Ventas_Consolidadas").Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return count, nil
}

// FetchAll returns every consolidated row in insertion order.
func (s *Store) FetchAll(ctx context.Context) ([]domain.SalesRecord, error) {
	var records []domain.SalesRecord
	err := s.withExistingDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT IdTransaccion, IdLocal, Sucursal, Fecha, IdCategoria,
				IdProducto, Producto, Cantidad, PrecioUnitario, TotalVenta
			FROM Ventas_Consolidadas
			ORDER BY rowid
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			r, err := scanSalesRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, *r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("fetching rows: %w", err)
	}
	return records, nil
}

// IsProcessed reports whether a file with this checksum is in the ledger.
func (s *Store) IsProcessed(ctx context.Context, checksum string) (bool, error) {
	var found int
	err := s.withSchemaDB(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM archivos_procesados WHERE checksum = ?", checksum).Scan(&found)
	})
	if err != nil {
		return false, fmt.Errorf("checking ledger: %w", err)
	}
	return found > 0, nil
}

// ProcessedFiles returns ledger entries, most recent first. A limit of zero
// or less returns every entry.
func (s *Store) ProcessedFiles(ctx context.Context, limit int) ([]domain.ProcessedFile, error) {
	if limit <= 0 {
		limit = -1
	}
	var files []domain.ProcessedFile
	err := s.withExistingDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT file_name, checksum, run_id, rows, consolidated_at
			FROM archivos_procesados
			ORDER BY id DESC
			LIMIT ?
		`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var f domain.ProcessedFile
			var consolidatedAt string
			if err := rows.Scan(&f.FileName, &f.Checksum, &f.RunID, &f.Rows, &consolidatedAt); err != nil {
				return fmt.Errorf("scanning ledger entry: %w", err)
			}
			if t, err := time.Parse(timeLayout, consolidatedAt); err == nil {
				f.ConsolidatedAt = t
			}
			files = append(files, f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("listing processed files: %w", err)
	}
	return files, nil
}

// ==================== Helper Functions ====================

// scanSalesRecord scans one consolidated row. Columns are nullable because
// the table has no constraints and may hold rows written by other tools.
func scanSalesRecord(rows *sql.Rows) (*domain.SalesRecord, error) {
	var (
		txID, localID, categoryID, productID, quantity sql.NullInt64
		branch, date, product                          sql.NullString
		unitPrice, total                               sql.NullFloat64
	)
	if err := rows.Scan(&txID, &localID, &branch, &date, &categoryID,
		&productID, &product, &quantity, &unitPrice, &total); err != nil {
		return nil, fmt.Errorf("scanning sales row: %w", err)
	}

	return &domain.SalesRecord{
		TransactionID: txID.Int64,
		LocalID:       int(localID.Int64),
		Branch:        branch.String,
		Date:          date.String,
		CategoryID:    categoryID.Int64,
		ProductID:     productID.Int64,
		Product:       product.String,
		Quantity:      quantity.Int64,
		UnitPrice:     decimal.NewFromFloat(unitPrice.Float64),
		TotalSale:     decimal.NewFromFloat(total.Float64),
	}, nil
}

// isMissingTable reports whether err is SQLite's "no such table" error.
func isMissingTable(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
