package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ventas-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
)

// --- Mock implementations for service testing ---

// faultySalesStore wraps the in-memory store and injects errors.
type faultySalesStore struct {
	*memory.SalesStore

	mu          sync.Mutex
	schemaErr   error
	schemaCalls int
	appendErrs  map[string]error
	appends     []string
}

func newFaultySalesStore() *faultySalesStore {
	return &faultySalesStore{
		SalesStore: memory.NewSalesStore(),
		appendErrs: make(map[string]error),
	}
}

func (s *faultySalesStore) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	s.schemaCalls++
	s.mu.Unlock()
	if s.schemaErr != nil {
		return s.schemaErr
	}
	return s.SalesStore.EnsureSchema(ctx)
}

func (s *faultySalesStore) AppendBatch(ctx context.Context, batch domain.SalesBatch) error {
	s.mu.Lock()
	s.appends = append(s.appends, batch.FileName)
	err := s.appendErrs[batch.FileName]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.SalesStore.AppendBatch(ctx, batch)
}

// mockSchedulerStore implements driven.SchedulerStore for testing.
type mockSchedulerStore struct {
	mu        sync.RWMutex
	results   map[string][]domain.TaskResult
	recordErr error
	pruneErr  error
	pruned    int
}

func newMockSchedulerStore() *mockSchedulerStore {
	return &mockSchedulerStore{results: make(map[string][]domain.TaskResult)}
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.TaskResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	if result == nil {
		return domain.ErrInvalidInput
	}
	m.results[result.TaskID] = append(m.results[result.TaskID], *result)
	return nil
}

func (m *mockSchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := append([]domain.TaskResult(nil), m.results[taskID]...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned++
	for id, results := range m.results {
		if len(results) > keep {
			m.results[id] = results[len(results)-keep:]
		}
	}
	return m.pruneErr
}

func (m *mockSchedulerStore) history(taskID string) []domain.TaskResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.TaskResult(nil), m.results[taskID]...)
}

// mockArchiveService implements driving.ArchiveService for testing.
type mockArchiveService struct {
	calls  atomic.Int32
	report *domain.MoveReport
	err    error
	delay  time.Duration

	// release, when set, blocks each move until it is closed.
	release chan struct{}
}

func (m *mockArchiveService) MoveProcessedFiles(_ context.Context) (*domain.MoveReport, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.release != nil {
		<-m.release
	}
	if m.report == nil && m.err == nil {
		return &domain.MoveReport{Completed: true}, nil
	}
	return m.report, m.err
}

// Ensure mocks implement interfaces
var (
	_ driven.SalesStore      = (*faultySalesStore)(nil)
	_ driven.SchedulerStore  = (*mockSchedulerStore)(nil)
	_ driving.ArchiveService = (*mockArchiveService)(nil)
)

// writeFiles creates files with the given contents in dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
}
