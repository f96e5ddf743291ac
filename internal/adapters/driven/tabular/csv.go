package tabular

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// CSVParser reads comma separated exports.
type CSVParser struct {
	comma rune
}

var _ driven.SalesParser = (*CSVParser)(nil)

// NewCSVParser returns a parser for comma separated files.
func NewCSVParser() *CSVParser {
	return &CSVParser{comma: ','}
}

// Supports reports whether file has a .csv extension.
func (p *CSVParser) Supports(file domain.SourceFile) bool {
	return strings.EqualFold(filepath.Ext(file.Name), ".csv")
}

// Parse reads every data row of file.
func (p *CSVParser) Parse(ctx context.Context, file domain.SourceFile) ([]domain.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, parseError(file, fmt.Errorf("opening: %w", err))
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.Comma = p.comma
	// Exports from some branches pad short rows or quote loosely.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, parseError(file, fmt.Errorf("reading: %w", err))
	}

	return decodeRows(file, rows, nil)
}
