package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, time.Second, config.CheckInterval)
	assert.Equal(t, "00:00", config.Schedule.String())
}

func TestParseDailySchedule(t *testing.T) {
	s, err := ParseDailySchedule("23:45", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 23, s.Hour)
	assert.Equal(t, 45, s.Minute)
	assert.Equal(t, "23:45", s.String())

	for _, bad := range []string{"", "24:00", "7pm", "12:60", "noon"} {
		_, err := ParseDailySchedule(bad, time.UTC)
		assert.True(t, errors.Is(err, ErrInvalidInput), "expected invalid input for %q", bad)
	}
}

func TestParseDailySchedule_NilLocationIsLocal(t *testing.T) {
	s, err := ParseDailySchedule("00:00", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, s.Location)
}

func TestDailySchedule_Next(t *testing.T) {
	midnight := DailySchedule{Location: time.UTC}

	tests := []struct {
		name     string
		schedule DailySchedule
		now      time.Time
		expected time.Time
	}{
		{
			name:     "evening rolls to next midnight",
			schedule: midnight,
			now:      time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "exactly at fire time is strictly after",
			schedule: midnight,
			now:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "later today",
			schedule: DailySchedule{Hour: 18, Minute: 15, Location: time.UTC},
			now:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 10, 18, 15, 0, 0, time.UTC),
		},
		{
			name:     "month rollover",
			schedule: midnight,
			now:      time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
			expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(tt.schedule.Next(tt.now)))
		})
	}
}

func TestDailySchedule_Until(t *testing.T) {
	s := DailySchedule{Location: time.UTC}
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Hour, s.Until(now))
}

func TestTaskConstants(t *testing.T) {
	assert.Equal(t, "archive-move", TaskIDArchiveMove)
	assert.Equal(t, ScheduleState("idle"), ScheduleIdle)
	assert.Equal(t, ScheduleState("firing"), ScheduleFiring)
}
