package domain

import (
	"fmt"
	"time"
)

// TaskIDArchiveMove identifies the daily archival task.
const TaskIDArchiveMove = "archive-move"

// ScheduleState is the scheduler loop's state.
type ScheduleState string

// Scheduler states.
const (
	// ScheduleIdle means the loop is waiting for the next fire time.
	ScheduleIdle ScheduleState = "idle"

	// ScheduleFiring means the archival mover is running.
	ScheduleFiring ScheduleState = "firing"
)

// DailySchedule fires once per day at a fixed wall-clock time.
type DailySchedule struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Midnight is the default schedule: 00:00 local time.
func Midnight() DailySchedule {
	return DailySchedule{Location: time.Local}
}

// ParseDailySchedule parses an "HH:MM" fire time in the given location.
// A nil location means local time.
func ParseDailySchedule(clock string, loc *time.Location) (DailySchedule, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return DailySchedule{}, fmt.Errorf("%w: fire time %q must be HH:MM", ErrInvalidInput, clock)
	}
	if loc == nil {
		loc = time.Local
	}
	return DailySchedule{Hour: t.Hour(), Minute: t.Minute(), Location: loc}, nil
}

// String returns the fire time as HH:MM.
func (s DailySchedule) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Next returns the first fire time strictly after now.
func (s DailySchedule) Next(now time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.Hour, s.Minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, s.Hour, s.Minute, 0, 0, loc)
	}
	return next
}

// Until returns the time remaining from now until the next fire time.
func (s DailySchedule) Until(now time.Time) time.Duration {
	return s.Next(now).Sub(now)
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// ID is a unique identifier for this execution.
	ID string

	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is a count of items handled (files moved).
	ItemsProcessed int
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// Schedule is when the archival task fires.
	Schedule DailySchedule

	// CheckInterval is how often the loop checks whether the fire time has passed.
	CheckInterval time.Duration
}

// DefaultSchedulerConfig returns the defaults: archive at midnight, check every second.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:       true,
		Schedule:      Midnight(),
		CheckInterval: time.Second,
	}
}
