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

// Ensure ConsolidationService implements the interface.
var _ driving.ConsolidationService = (*ConsolidationService)(nil)

// ConsolidationService appends staged branch exports into the sales table.
type ConsolidationService struct {
	source driven.FileSource
	parser driven.SalesParser
	store  driven.SalesStore
	lock   *PipelineLock

	// skipDuplicates consults the processed-file ledger before parsing.
	skipDuplicates bool
}

// NewConsolidationService creates a consolidation service.
// The lock must be the same instance given to the ArchiveService that
// works on the same source directory. A nil lock gets a private one.
func NewConsolidationService(
	source driven.FileSource,
	parser driven.SalesParser,
	store driven.SalesStore,
	lock *PipelineLock,
	skipDuplicates bool,
) *ConsolidationService {
	if lock == nil {
		lock = NewPipelineLock()
	}
	return &ConsolidationService{
		source:         source,
		parser:         parser,
		store:          store,
		lock:           lock,
		skipDuplicates: skipDuplicates,
	}
}

// EnsureSchema creates the consolidated table if it does not exist.
func (s *ConsolidationService) EnsureSchema(ctx context.Context) error {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Consolidate parses every eligible source file and appends its rows.
// Files are processed sequentially in listing order. One bad file does not
// stop the others; a missing source directory or an unreachable store
// aborts the run and is returned alongside the partial report.
func (s *ConsolidationService) Consolidate(ctx context.Context) (*domain.ConsolidationReport, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	report := &domain.ConsolidationReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() { report.EndedAt = time.Now() }()

	logger.Section("Consolidation")

	files, err := s.source.Eligible(ctx)
	if err != nil {
		return report, fmt.Errorf("list source files: %w", err)
	}

	// Nothing to do: leave storage untouched.
	if len(files) == 0 {
		logger.Info("No files to consolidate in %s", s.source.Path())
		report.Completed = true
		return report, nil
	}

	if err := s.store.EnsureSchema(ctx); err != nil {
		return report, fmt.Errorf("ensure schema: %w", err)
	}

	for _, file := range files {
		outcome := s.consolidateFile(ctx, report.RunID, file)
		report.Files = append(report.Files, outcome)

		if domain.IsFatal(outcome.Err) {
			logger.WithFields(logger.Fields{
				"run_id": report.RunID,
				"file":   file.Name,
			}).Errorf("Consolidation aborted: %v", outcome.Err)
			return report, fmt.Errorf("consolidate %s: %w", file.Name, outcome.Err)
		}
	}

	report.Completed = true
	logger.Info("Consolidation complete: %d files, %d rows, %d failed",
		len(report.Files), report.RowsAppended(), report.Failed())
	return report, nil
}

// consolidateFile handles one file. The returned outcome carries any error;
// the caller decides whether it is fatal.
func (s *ConsolidationService) consolidateFile(
	ctx context.Context,
	runID string,
	file domain.SourceFile,
) domain.FileOutcome {
	branch := domain.ResolveBranch(file.Name)
	outcome := domain.FileOutcome{FileName: file.Name, Branch: branch}
	log := logger.WithFields(logger.Fields{
		"run_id": runID,
		"file":   file.Name,
		"branch": branch.Name,
	})

	checksum, err := s.source.Checksum(ctx, file)
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %w", domain.ErrFileParse, err)
		log.Warnf("File not readable: %v", err)
		return outcome
	}

	if s.skipDuplicates {
		processed, err := s.store.IsProcessed(ctx, checksum)
		if err != nil {
			outcome.Err = asStorageError(err)
			log.Warnf("Ledger lookup failed: %v", err)
			return outcome
		}
		if processed {
			outcome.Skipped = true
			log.Info("File already consolidated, skipping")
			return outcome
		}
	}

	records, err := s.parser.Parse(ctx, file)
	if err != nil {
		if !errors.Is(err, domain.ErrFileParse) {
			err = fmt.Errorf("%w: %w", domain.ErrFileParse, err)
		}
		outcome.Err = err
		log.Warnf("File not parsed: %v", err)
		return outcome
	}

	for i := range records {
		records[i] = records[i].WithBranch(branch)
	}

	batch := domain.SalesBatch{
		RunID:    runID,
		FileName: file.Name,
		Checksum: checksum,
		Records:  records,
	}
	if err := s.store.AppendBatch(ctx, batch); err != nil {
		outcome.Err = asStorageError(err)
		log.Warnf("Rows not written: %v", err)
		return outcome
	}

	outcome.Rows = len(records)
	log.WithField("rows", outcome.Rows).Info("File consolidated")
	return outcome
}

// asStorageError classifies unknown store errors as file-level write failures.
func asStorageError(err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) || errors.Is(err, domain.ErrStorageWrite) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
}
