package driving

import (
	"context"
	"time"
)

// Scheduler runs archival once per day at a fixed wall-clock time.
type Scheduler interface {
	// Start begins the scheduler loop.
	// Blocks until Stop is called or the context is cancelled.
	Start(ctx context.Context) error

	// Stop gracefully stops the loop, waiting for an in-flight run.
	Stop() error

	// TimeUntilNext returns the time remaining until the next scheduled move.
	TimeUntilNext() time.Duration
}
