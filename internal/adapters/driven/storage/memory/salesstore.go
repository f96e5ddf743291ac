package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// Ensure SalesStore implements the interface.
var _ driven.SalesStore = (*SalesStore)(nil)

// SalesStore is an in-memory implementation of driven.SalesStore.
type SalesStore struct {
	mu        sync.RWMutex
	schema    bool
	records   []domain.SalesRecord
	processed []domain.ProcessedFile
}

// NewSalesStore creates a new in-memory sales store.
func NewSalesStore() *SalesStore {
	return &SalesStore{}
}

// EnsureSchema marks the table as present.
func (s *SalesStore) EnsureSchema(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = true
	return nil
}

// AppendBatch appends every record of the batch and its ledger entry.
func (s *SalesStore) AppendBatch(_ context.Context, batch domain.SalesBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.schema {
		return domain.ErrStorageWrite
	}
	s.records = append(s.records, batch.Records...)
	s.processed = append(s.processed, domain.ProcessedFile{
		FileName:       batch.FileName,
		Checksum:       batch.Checksum,
		RunID:          batch.RunID,
		Rows:           len(batch.Records),
		ConsolidatedAt: time.Now(),
	})
	return nil
}

// RowCount returns the number of stored rows.
func (s *SalesStore) RowCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// FetchAll returns a copy of every stored row in insertion order.
func (s *SalesStore) FetchAll(_ context.Context) ([]domain.SalesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SalesRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// IsProcessed reports whether the checksum has been ledgered.
func (s *SalesStore) IsProcessed(_ context.Context, checksum string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.processed {
		if p.Checksum == checksum {
			return true, nil
		}
	}
	return false, nil
}

// ProcessedFiles returns ledger entries, most recent first.
func (s *SalesStore) ProcessedFiles(_ context.Context, limit int) ([]domain.ProcessedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProcessedFile, len(s.processed))
	copy(out, s.processed)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConsolidatedAt.After(out[j].ConsolidatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
