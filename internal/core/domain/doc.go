// Package domain defines the core business entities for ventas.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - SalesRecord: One row of the consolidated sales table
//   - SourceFile: A branch export waiting in the staging directory
//   - Branch: A sales location resolved from a filename
//   - ConsolidationReport / MoveReport: Per-file outcomes of a run
//   - DailySchedule: The wall-clock time archival fires each day
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/shopspring/decimal for money
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
