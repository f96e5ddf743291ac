package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ventas-cli/internal/logger"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService relocates processed files into the backup directory.
// Manual and scheduled invocations share this exact code path.
type ArchiveService struct {
	source   driven.FileSource
	archiver driven.Archiver
	lock     *PipelineLock
}

// NewArchiveService creates an archive service.
// The lock must be shared with the ConsolidationService on the same directory.
func NewArchiveService(source driven.FileSource, archiver driven.Archiver, lock *PipelineLock) *ArchiveService {
	if lock == nil {
		lock = NewPipelineLock()
	}
	return &ArchiveService{
		source:   source,
		archiver: archiver,
		lock:     lock,
	}
}

// MoveProcessedFiles relocates every eligible source file into the backup directory.
func (s *ArchiveService) MoveProcessedFiles(ctx context.Context) (*domain.MoveReport, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	report := &domain.MoveReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() { report.EndedAt = time.Now() }()

	logger.Section("Archive")

	files, err := s.source.Eligible(ctx)
	if err != nil {
		return report, fmt.Errorf("list source files: %w", err)
	}

	for _, file := range files {
		outcome := domain.FileOutcome{FileName: file.Name}
		log := logger.WithFields(logger.Fields{"run_id": report.RunID, "file": file.Name})

		dest, err := s.archiver.Archive(ctx, file)
		if err != nil {
			if !errors.Is(err, domain.ErrFileMove) && !errors.Is(err, domain.ErrBackupCollision) {
				err = fmt.Errorf("%w: %w", domain.ErrFileMove, err)
			}
			outcome.Err = err
			log.Warnf("File not moved: %v", err)
		} else {
			outcome.Destination = dest
			log.WithField("destination", dest).Info("File moved")
		}
		report.Files = append(report.Files, outcome)
	}

	report.Completed = true
	logger.Info("Archive complete: %d moved, %d failed", report.Moved(), report.Failed())
	return report, nil
}
