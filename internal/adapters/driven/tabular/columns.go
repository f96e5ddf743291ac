package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// Required column headers, in export order.
const (
	ColTransactionID = "IdTransaccion"
	ColDate          = "Fecha"
	ColCategoryID    = "IdCategoria"
	ColProductID     = "IdProducto"
	ColProduct       = "Producto"
	ColQuantity      = "Cantidad"
	ColUnitPrice     = "PrecioUnitario"
	ColTotalSale     = "TotalVenta"
)

// RequiredColumns lists every header an export must carry.
var RequiredColumns = []string{
	ColTransactionID, ColDate, ColCategoryID, ColProductID,
	ColProduct, ColQuantity, ColUnitPrice, ColTotalSale,
}

// utf8BOM is stripped from the first header cell of text exports.
const utf8BOM = "\ufeff"

// columnIndex maps each required column to its position in a row.
type columnIndex map[string]int

// indexHeader locates the required columns in a header row.
func indexHeader(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normaliseHeader(h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	idx := make(columnIndex, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := positions[normaliseHeader(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func normaliseHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
}

// cell returns the trimmed value of col, or "" when the row is short.
func (c columnIndex) cell(row []string, col string) string {
	pos := c[col]
	if pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// record converts one data row. textRow supplies display text for the date
// column and may be the same slice as row.
func (c columnIndex) record(row, textRow []string) (domain.SalesRecord, error) {
	var (
		r   domain.SalesRecord
		err error
	)
	if r.TransactionID, err = parseInt(c.cell(row, ColTransactionID)); err != nil {
		return r, fieldError(ColTransactionID, err)
	}
	if r.CategoryID, err = parseInt(c.cell(row, ColCategoryID)); err != nil {
		return r, fieldError(ColCategoryID, err)
	}
	if r.ProductID, err = parseInt(c.cell(row, ColProductID)); err != nil {
		return r, fieldError(ColProductID, err)
	}
	if r.Quantity, err = parseInt(c.cell(row, ColQuantity)); err != nil {
		return r, fieldError(ColQuantity, err)
	}
	if r.UnitPrice, err = parseDecimal(c.cell(row, ColUnitPrice)); err != nil {
		return r, fieldError(ColUnitPrice, err)
	}
	if r.TotalSale, err = parseDecimal(c.cell(row, ColTotalSale)); err != nil {
		return r, fieldError(ColTotalSale, err)
	}
	r.Date = c.cell(textRow, ColDate)
	r.Product = c.cell(textRow, ColProduct)
	return r, nil
}

// parseInt accepts plain integers and integral decimals such as "3.0",
// which spreadsheet tools emit for whole-number cells.
func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return d.IntPart(), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}

func fieldError(col string, err error) error {
	return fmt.Errorf("column %s: %w", col, err)
}

// isBlank reports whether every cell of row is empty.
func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseError wraps a failure for file in domain.ErrFileParse.
func parseError(file domain.SourceFile, err error) error {
	return fmt.Errorf("parsing %s: %v: %w", file.Name, err, domain.ErrFileParse)
}

// rowError is parseError with the 1-based row number of the offending line.
func rowError(file domain.SourceFile, row int, err error) error {
	return fmt.Errorf("parsing %s row %d: %v: %w", file.Name, row, err, domain.ErrFileParse)
}

// decodeRows converts a header row plus data rows into records. text holds
// display values aligned with rows; when nil, rows supply the text columns.
func decodeRows(file domain.SourceFile, rows, text [][]string) ([]domain.SalesRecord, error) {
	if len(rows) == 0 {
		return nil, parseError(file, fmt.Errorf("file is empty"))
	}
	if text == nil {
		text = rows
	}

	idx, err := indexHeader(rows[0])
	if err != nil {
		return nil, rowError(file, 1, err)
	}

	records := make([]domain.SalesRecord, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		textRow := rows[i]
		if i < len(text) {
			textRow = text[i]
		}
		r, err := idx.record(rows[i], textRow)
		if err != nil {
			return nil, rowError(file, i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}
