// Package sqlite provides the SQLite-backed implementations of the sales store
// and the scheduler history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A database handle is opened and closed
// around every unit of work; nothing holds a connection between calls, so the
// database file may be inspected or replaced by other tools while the process runs.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Migrations only use CREATE ... IF NOT EXISTS, so they are safe to apply against
// a database created by an earlier tool that already holds Ventas_Consolidadas.
//
// # Tables
//
//   - Ventas_Consolidadas: the consolidated sales rows (fixed column set)
//   - archivos_procesados: ledger of consolidated files with their checksum
//   - task_results: scheduler execution history
package sqlite
