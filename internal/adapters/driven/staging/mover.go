package staging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// maxRenameAttempts bounds the numbered-name search under CollisionRename.
const maxRenameAttempts = 10000

// Mover relocates files into a backup directory with os.Rename.
// There is no copy-and-delete fallback, so source and backup must live on
// the same filesystem.
type Mover struct {
	backupDir string
	policy    domain.CollisionPolicy
}

var _ driven.Archiver = (*Mover)(nil)

// NewMover returns a Mover targeting backupDir. An invalid policy falls back
// to overwriting.
func NewMover(backupDir string, policy domain.CollisionPolicy) *Mover {
	if !policy.IsValid() {
		policy = domain.CollisionOverwrite
	}
	return &Mover{backupDir: backupDir, policy: policy}
}

// BackupDir returns the backup directory path.
func (m *Mover) BackupDir() string {
	return m.backupDir
}

// Archive moves file into the backup directory and returns its final path.
func (m *Mover) Archive(ctx context.Context, file domain.SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory %s (%v): %w", m.backupDir, err, domain.ErrFileMove)
	}

	dest, err := m.destination(file.Name)
	if err != nil {
		return "", err
	}

	if err := os.Rename(file.Path, dest); err != nil {
		return "", fmt.Errorf("moving %s to %s (%v): %w", file.Name, m.backupDir, err, domain.ErrFileMove)
	}
	return dest, nil
}

// destination resolves the target path for name under the collision policy.
func (m *Mover) destination(name string) (string, error) {
	dest := filepath.Join(m.backupDir, name)
	exists, err := pathExists(dest)
	if err != nil {
		return "", fmt.Errorf("checking %s (%v): %w", dest, err, domain.ErrFileMove)
	}
	if !exists {
		return dest, nil
	}

	switch m.policy {
	case domain.CollisionReject:
		return "", fmt.Errorf("%s already in %s: %w", name, m.backupDir, domain.ErrBackupCollision)
	case domain.CollisionRename:
		return m.numbered(name)
	default:
		return dest, nil
	}
}

// numbered returns the first free "<base>_N<ext>" path, starting at 1.
func (m *Mover) numbered(name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; n <= maxRenameAttempts; n++ {
		candidate := filepath.Join(m.backupDir, fmt.Sprintf("%s_%d%s", base, n, ext))
		exists, err := pathExists(candidate)
		if err != nil {
			return "", fmt.Errorf("checking %s (%v): %w", candidate, err, domain.ErrFileMove)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s: %w", name, m.backupDir, domain.ErrBackupCollision)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
