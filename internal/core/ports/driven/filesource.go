package driven

import (
	"context"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// FileSource reads a staging directory.
type FileSource interface {
	// Path returns the directory path.
	Path() string

	// Eligible returns files with a recognised tabular extension, in listing order.
	// Returns domain.ErrDirectoryMissing if the directory does not exist.
	Eligible(ctx context.Context) ([]domain.SourceFile, error)

	// Entries returns every regular file in the directory.
	Entries(ctx context.Context) ([]domain.SourceFile, error)

	// Checksum returns a content fingerprint for the file.
	Checksum(ctx context.Context, file domain.SourceFile) (string, error)
}

// Archiver relocates processed files into the backup directory.
type Archiver interface {
	// Archive moves file into the backup directory and returns its final path.
	// Same-named files are handled by the configured collision policy.
	Archive(ctx context.Context, file domain.SourceFile) (string, error)
}
