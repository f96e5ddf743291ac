package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/services"
)

// mockConsolidation implements driving.ConsolidationService for testing.
type mockConsolidation struct {
	report      *domain.ConsolidationReport
	err         error
	schemaErr   error
	schemaCalls int
	calls       int
}

func (m *mockConsolidation) EnsureSchema(context.Context) error {
	m.schemaCalls++
	return m.schemaErr
}

func (m *mockConsolidation) Consolidate(context.Context) (*domain.ConsolidationReport, error) {
	m.calls++
	return m.report, m.err
}

// mockArchive implements driving.ArchiveService for testing.
type mockArchive struct {
	report *domain.MoveReport
	err    error
}

func (m *mockArchive) MoveProcessedFiles(context.Context) (*domain.MoveReport, error) {
	return m.report, m.err
}

// mockInventory implements driving.InventoryService for testing.
type mockInventory struct {
	source    []domain.SourceFile
	sourceErr error
	backup    []domain.SourceFile
	backupErr error
	rows      []domain.SalesRecord
	rowsErr   error
	processed []domain.ProcessedFile
	history   []domain.TaskResult
}

func (m *mockInventory) ListSourceFiles(context.Context) ([]domain.SourceFile, error) {
	return m.source, m.sourceErr
}

func (m *mockInventory) ListBackupFiles(context.Context) ([]domain.SourceFile, error) {
	return m.backup, m.backupErr
}

func (m *mockInventory) RowCount(context.Context) (int, error) {
	return len(m.rows), m.rowsErr
}

func (m *mockInventory) FetchAllRows(context.Context) ([]domain.SalesRecord, error) {
	return m.rows, m.rowsErr
}

func (m *mockInventory) ProcessedFiles(_ context.Context, limit int) ([]domain.ProcessedFile, error) {
	if limit > 0 && len(m.processed) > limit {
		return m.processed[:limit], nil
	}
	return m.processed, nil
}

func (m *mockInventory) ArchiveHistory(_ context.Context, limit int) ([]domain.TaskResult, error) {
	if limit > 0 && len(m.history) > limit {
		return m.history[:limit], nil
	}
	return m.history, nil
}

// mockScheduler implements driving.Scheduler for testing.
type mockScheduler struct {
	mu      sync.Mutex
	until   time.Duration
	started bool
	stopped bool
	err     error
}

func (m *mockScheduler) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return m.err
}

func (m *mockScheduler) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

func (m *mockScheduler) TimeUntilNext() time.Duration { return m.until }

// mockRunner implements Runner for testing.
type mockRunner struct {
	mu  sync.Mutex
	ran bool
}

func (m *mockRunner) Run(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ran = true
	return nil
}

func (m *mockRunner) Ran() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ran
}

// setupServices installs s for the duration of the test.
func setupServices(t *testing.T, s Services) {
	t.Helper()
	if s.Settings == nil {
		s.Settings = services.NewSettingsService(memory.NewConfigStore())
	}
	Configure(s)
	t.Cleanup(func() { Configure(Services{}) })
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	consolidateDryRun = false
	filesBackup = false
	rowsLimit = 50
	rowsJSON = false
	statusHistory = 5
	serveWatch = false
	verbose = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
