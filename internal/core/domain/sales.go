package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is one row of the consolidated sales table.
type SalesRecord struct {
	TransactionID int64
	LocalID       int
	Branch        string

	// Date keeps the text exactly as it appeared in the export.
	Date string

	CategoryID int64
	ProductID  int64
	Product    string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalSale  decimal.Decimal
}

// WithBranch returns a copy of the record stamped with the branch identity.
func (r SalesRecord) WithBranch(b Branch) SalesRecord {
	r.LocalID = b.LocalID
	r.Branch = b.Name
	return r
}

// SourceFile is a tabular export sitting in a staging or backup directory.
// Its identity is Name.
type SourceFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// SalesBatch is every row parsed from one source file. A batch is written
// atomically and never interleaved with another file's batch.
type SalesBatch struct {
	RunID    string
	FileName string
	Checksum string
	Records  []SalesRecord
}

// ProcessedFile is a ledger entry for a consolidated source file.
type ProcessedFile struct {
	FileName       string
	Checksum       string
	RunID          string
	Rows           int
	ConsolidatedAt time.Time
}
