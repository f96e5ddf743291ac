package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ventas-cli/internal/logger"
)

// DefaultSettleDelay is how long an arrival waits before it may trigger a
// consolidation, so a file still being copied is not read half-written.
const DefaultSettleDelay = 2 * time.Second

// Config controls the watcher.
type Config struct {
	// AutoConsolidate runs a consolidation after new files arrive. Earlier
	// uploads are still in the directory, so the consolidator must skip
	// files it has already stored.
	AutoConsolidate bool

	// MinInterval is the minimum time between automatic consolidations.
	// Zero means no limit.
	MinInterval time.Duration

	// SettleDelay defaults to DefaultSettleDelay when zero.
	SettleDelay time.Duration
}

// Watcher reports uploads into a directory and optionally consolidates them.
type Watcher struct {
	dir          string
	filter       func(name string) bool
	consolidator driving.ConsolidationService
	config       Config
	limiter      *rate.Limiter

	mu      sync.Mutex
	pending *time.Timer
	fire    chan struct{}
	runs    int
}

// New returns a watcher for dir. filter decides which file names count as
// exports; consolidator may be nil when AutoConsolidate is off.
func New(dir string, filter func(name string) bool, consolidator driving.ConsolidationService, cfg Config) *Watcher {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &Watcher{
		dir:          dir,
		filter:       filter,
		consolidator: consolidator,
		config:       cfg,
		limiter:      rate.NewLimiter(limit, 1),
		fire:         make(chan struct{}, 1),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", w.dir, domain.ErrDirectoryMissing)
		}
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	defer w.cancelPending()

	logger.Info("watching %s for new exports", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if name, arrived := w.handleEvent(event); arrived {
				w.onArrival(name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error on %s: %v", w.dir, err)
		case <-w.fire:
			w.consolidate(ctx)
		}
	}
}

// handleEvent returns the file name when event is a new eligible export.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) {
		return "", false
	}
	name := filepath.Base(event.Name)
	if w.filter != nil && !w.filter(name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

func (w *Watcher) onArrival(name string) {
	logger.WithFields(logger.Fields{"file": name, "dir": w.dir}).Info("export received")
	if w.config.AutoConsolidate && w.consolidator != nil {
		w.schedule()
	}
}

// schedule arms a single consolidation after the settle delay, or later if
// the rate limit requires it. Arrivals while one is armed are coalesced.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		return
	}

	delay := w.config.SettleDelay
	if wait := w.limiter.Reserve().Delay(); wait > delay {
		delay = wait
	}

	w.pending = time.AfterFunc(delay, func() {
		w.mu.Lock()
		w.pending = nil
		w.mu.Unlock()
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
	logger.Debug("consolidation scheduled in %s", delay)
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

func (w *Watcher) consolidate(ctx context.Context) {
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()

	report, err := w.consolidator.Consolidate(ctx)
	if report == nil {
		logger.Error("automatic consolidation failed: %v", err)
		return
	}

	entry := logger.WithFields(logger.Fields{
		"run_id": report.RunID,
		"status": string(report.Status()),
		"files":  len(report.Files),
		"rows":   report.RowsAppended(),
	})
	if err != nil {
		entry.WithError(err).Error("automatic consolidation aborted")
		return
	}
	entry.Info("automatic consolidation finished")
}

// Runs returns how many automatic consolidations have started.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}
