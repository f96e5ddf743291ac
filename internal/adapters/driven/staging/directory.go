package staging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// Directory is a staging or backup directory holding tabular exports.
type Directory struct {
	path       string
	extensions []string
}

var _ driven.FileSource = (*Directory)(nil)

// NewDirectory returns a Directory rooted at path. Files are eligible when
// their extension matches one of extensions, compared case-insensitively.
func NewDirectory(path string, extensions []string) *Directory {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return &Directory{path: path, extensions: exts}
}

// Path returns the directory path.
func (d *Directory) Path() string {
	return d.path
}

// Matches reports whether name carries one of the recognised extensions.
func (d *Directory) Matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range d.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Eligible returns files with a recognised extension, sorted by name.
func (d *Directory) Eligible(ctx context.Context) ([]domain.SourceFile, error) {
	return d.list(ctx, true)
}

// Entries returns every regular file in the directory, sorted by name.
func (d *Directory) Entries(ctx context.Context) ([]domain.SourceFile, error) {
	return d.list(ctx, false)
}

func (d *Directory) list(ctx context.Context, eligibleOnly bool) ([]domain.SourceFile, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", d.path, domain.ErrDirectoryMissing)
		}
		return nil, fmt.Errorf("reading %s: %w", d.path, err)
	}

	files := make([]domain.SourceFile, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if eligibleOnly && !d.Matches(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		files = append(files, domain.SourceFile{
			Name:    entry.Name(),
			Path:    filepath.Join(d.path, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Checksum returns the hex SHA-256 of the file contents.
func (d *Directory) Checksum(ctx context.Context, file domain.SourceFile) (string, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", file.Name, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", file.Name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
