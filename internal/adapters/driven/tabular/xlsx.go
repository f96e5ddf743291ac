package tabular

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// XLSXParser reads the first worksheet of an Excel workbook.
type XLSXParser struct{}

var _ driven.SalesParser = (*XLSXParser)(nil)

// NewXLSXParser returns a parser for .xlsx workbooks.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Supports reports whether file has a .xlsx extension.
func (p *XLSXParser) Supports(file domain.SourceFile) bool {
	return strings.EqualFold(filepath.Ext(file.Name), ".xlsx")
}

// Parse reads every data row of the first worksheet. Numeric columns come
// from raw cell values so number formats do not leak into them; Fecha and
// Producto keep the text shown in the spreadsheet.
func (p *XLSXParser) Parse(ctx context.Context, file domain.SourceFile) ([]domain.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(file.Path)
	if err != nil {
		return nil, parseError(file, fmt.Errorf("opening workbook: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseError(file, fmt.Errorf("workbook has no sheets"))
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, parseError(file, fmt.Errorf("reading sheet %q: %w", sheet, err))
	}
	text, err := f.GetRows(sheet)
	if err != nil {
		return nil, parseError(file, fmt.Errorf("reading sheet %q: %w", sheet, err))
	}

	return decodeRows(file, raw, text)
}
