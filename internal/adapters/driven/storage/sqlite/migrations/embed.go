// Package migrations embeds SQL migration files for the SQLite store.
//
// The down migration for 001 deliberately leaves Ventas_Consolidadas in place:
// the consolidated rows are the system of record.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
