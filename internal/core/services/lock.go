package services

import "sync"

// PipelineLock serializes operations on the source-directory-to-storage
// pipeline. It is held from listing the source directory until the whole
// batch (consolidate-all or move-all) has finished, including on error.
// There is no timeout: callers block until the in-progress run completes.
type PipelineLock struct {
	mu sync.Mutex
}

// NewPipelineLock creates an unlocked pipeline lock.
func NewPipelineLock() *PipelineLock {
	return &PipelineLock{}
}

// Lock acquires the pipeline.
func (l *PipelineLock) Lock() {
	l.mu.Lock()
}

// Unlock releases the pipeline.
func (l *PipelineLock) Unlock() {
	l.mu.Unlock()
}

// TryLock acquires the pipeline only if it is free.
func (l *PipelineLock) TryLock() bool {
	return l.mu.TryLock()
}
