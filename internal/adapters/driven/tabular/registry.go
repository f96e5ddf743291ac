package tabular

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// Registry dispatches each file to the first parser that supports it.
type Registry struct {
	parsers []driven.SalesParser
}

var _ driven.SalesParser = (*Registry)(nil)

// NewRegistry returns a registry over parsers, consulted in order.
func NewRegistry(parsers ...driven.SalesParser) *Registry {
	return &Registry{parsers: parsers}
}

// NewDefaultRegistry returns a registry with the CSV and XLSX parsers.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewCSVParser(), NewXLSXParser())
}

// Supports reports whether any registered parser handles file.
func (r *Registry) Supports(file domain.SourceFile) bool {
	return r.parserFor(file) != nil
}

// Parse delegates to the parser for file's extension.
func (r *Registry) Parse(ctx context.Context, file domain.SourceFile) ([]domain.SalesRecord, error) {
	p := r.parserFor(file)
	if p == nil {
		return nil, parseError(file, fmt.Errorf("unsupported format"))
	}
	return p.Parse(ctx, file)
}

func (r *Registry) parserFor(file domain.SourceFile) driven.SalesParser {
	for _, p := range r.parsers {
		if p.Supports(file) {
			return p
		}
	}
	return nil
}
