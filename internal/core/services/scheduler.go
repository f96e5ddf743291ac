package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ventas-cli/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyRetention is how many results are kept per task.
const historyRetention = 100

// Scheduler fires the archival mover once per day at the configured time.
// It owns its fire time and next-run computation; nothing is registered
// against process-wide state.
type Scheduler struct {
	config domain.SchedulerConfig
	store  driven.SchedulerStore
	mover  driving.ArchiveService
	now    func() time.Time

	mu      sync.Mutex
	running bool
	state   domain.ScheduleState
	nextRun time.Time
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. store may be nil, in which case run
// history is not recorded.
func NewScheduler(
	cfg domain.SchedulerConfig,
	store driven.SchedulerStore,
	mover driving.ArchiveService,
) *Scheduler {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Second
	}
	s := &Scheduler{
		config: cfg,
		store:  store,
		mover:  mover,
		now:    time.Now,
		state:  domain.ScheduleIdle,
	}
	s.nextRun = cfg.Schedule.Next(s.now())
	return s
}

// Start runs the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		logger.Info("Scheduler disabled")
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.nextRun = s.config.Schedule.Next(s.now())
	stopCh := s.stopCh
	s.wg.Add(1)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		s.wg.Done()
	}()

	logger.Info("Scheduler started; next archive at %s", s.NextRun().Format(time.RFC3339))
	return s.run(ctx, stopCh)
}

// Stop gracefully shuts down the scheduler, waiting for an in-flight move.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// TimeUntilNext returns the time remaining until the next scheduled move.
func (s *Scheduler) TimeUntilNext() time.Duration {
	now := s.now()
	return s.NextRunAt(now).Sub(now)
}

// NextRun returns when the archival task fires next.
func (s *Scheduler) NextRun() time.Time {
	return s.NextRunAt(s.now())
}

// NextRunAt returns the next fire time as seen at now. A next-run that is
// not in the future (loop stopped, or the move is firing) is recomputed
// from the schedule.
func (s *Scheduler) NextRunAt(now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.nextRun.After(now) {
		return s.config.Schedule.Next(now)
	}
	return s.nextRun
}

// State reports whether the loop is waiting or moving files.
func (s *Scheduler) State() domain.ScheduleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick fires the mover if the fire time has been reached. The mover runs on
// the loop goroutine, so a firing can never overlap another.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	due := !now.Before(s.nextRun)
	if due {
		s.state = domain.ScheduleFiring
	}
	s.mu.Unlock()

	if !due {
		return
	}

	result := s.fire(ctx)

	s.mu.Lock()
	s.state = domain.ScheduleIdle
	s.nextRun = s.config.Schedule.Next(s.now())
	next := s.nextRun
	s.mu.Unlock()

	logger.Info("Next archive at %s", next.Format(time.RFC3339))
	s.record(ctx, result)
}

// fire runs the archival mover once and summarises the outcome.
func (s *Scheduler) fire(ctx context.Context) *domain.TaskResult {
	result := &domain.TaskResult{
		ID:        uuid.NewString(),
		TaskID:    domain.TaskIDArchiveMove,
		StartedAt: s.now(),
	}

	logger.Info("Scheduled archive starting")
	report, err := s.mover.MoveProcessedFiles(ctx)
	result.EndedAt = s.now()

	if report != nil {
		result.ItemsProcessed = report.Moved()
	}

	switch {
	case err != nil:
		result.Error = err.Error()
		logger.Error("Scheduled archive failed: %v", err)
	case report != nil && report.Failed() > 0:
		result.Error = fmt.Sprintf("%d of %d files not moved", report.Failed(), len(report.Files))
		logger.Warn("Scheduled archive: %s", result.Error)
	default:
		result.Success = true
	}

	return result
}

// record persists a result and prunes old history.
func (s *Scheduler) record(ctx context.Context, result *domain.TaskResult) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordResult(ctx, result); err != nil {
		logger.Warn("scheduler: failed to record result for %s: %v", result.TaskID, err)
	}
	if err := s.store.PruneHistory(ctx, historyRetention); err != nil {
		logger.Warn("scheduler: failed to prune history: %v", err)
	}
}
