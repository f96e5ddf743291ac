package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySourceDir        = "paths.source"
	keyBackupDir        = "paths.backup"
	keyDatabase         = "paths.database"
	keyExtensions       = "consolidation.extensions"
	keySkipDuplicates   = "consolidation.skip_duplicates"
	keyCollision        = "archive.collision"
	keyFireTime         = "schedule.fire_time"
	keyCheckInterval    = "schedule.check_interval_seconds"
	keyWatchEnabled     = "watch.enabled"
	keyWatchAuto        = "watch.auto_consolidate"
	keyWatchMinInterval = "watch.min_interval_seconds"
)

// validate is shared; validator caches struct metadata per instance.
var validate = validator.New()

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Paths: domain.PathSettings{
			Source:   s.getString(keySourceDir, defaults.Paths.Source),
			Backup:   s.getString(keyBackupDir, defaults.Paths.Backup),
			Database: s.getString(keyDatabase, defaults.Paths.Database),
		},
		Consolidation: domain.ConsolidationSettings{
			Extensions:     s.getStringSlice(keyExtensions, defaults.Consolidation.Extensions),
			SkipDuplicates: s.getBool(keySkipDuplicates, defaults.Consolidation.SkipDuplicates),
		},
		Archive: domain.ArchiveSettings{
			Collision: domain.CollisionPolicy(s.getString(keyCollision, defaults.Archive.Collision.String())),
		},
		Schedule: domain.ScheduleSettings{
			FireTime:      s.getString(keyFireTime, defaults.Schedule.FireTime),
			CheckInterval: s.getSeconds(keyCheckInterval, defaults.Schedule.CheckInterval),
		},
		Watch: domain.WatchSettings{
			Enabled:         s.getBool(keyWatchEnabled, defaults.Watch.Enabled),
			AutoConsolidate: s.getBool(keyWatchAuto, defaults.Watch.AutoConsolidate),
			MinInterval:     s.getSeconds(keyWatchMinInterval, defaults.Watch.MinInterval),
		},
	}

	if err := s.Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keySourceDir, settings.Paths.Source},
		{keyBackupDir, settings.Paths.Backup},
		{keyDatabase, settings.Paths.Database},
		{keyExtensions, settings.Consolidation.Extensions},
		{keySkipDuplicates, settings.Consolidation.SkipDuplicates},
		{keyCollision, settings.Archive.Collision.String()},
		{keyFireTime, settings.Schedule.FireTime},
		{keyCheckInterval, int(settings.Schedule.CheckInterval / time.Second)},
		{keyWatchEnabled, settings.Watch.Enabled},
		{keyWatchAuto, settings.Watch.AutoConsolidate},
		{keyWatchMinInterval, int(settings.Watch.MinInterval / time.Second)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single key from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keySourceDir:
		settings.Paths.Source = value
	case keyBackupDir:
		settings.Paths.Backup = value
	case keyDatabase:
		settings.Paths.Database = value
	case keyExtensions:
		settings.Consolidation.Extensions = splitList(value)
	case keySkipDuplicates:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Consolidation.SkipDuplicates = b
	case keyCollision:
		settings.Archive.Collision = domain.CollisionPolicy(value)
	case keyFireTime:
		settings.Schedule.FireTime = value
	case keyCheckInterval:
		d, err := parseSeconds(key, value)
		if err != nil {
			return err
		}
		settings.Schedule.CheckInterval = d
	case keyWatchEnabled, keyWatchAuto:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		if key == keyWatchEnabled {
			settings.Watch.Enabled = b
		} else {
			settings.Watch.AutoConsolidate = b
		}
	case keyWatchMinInterval:
		d, err := parseSeconds(key, value)
		if err != nil {
			return err
		}
		settings.Watch.MinInterval = d
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Validate checks the settings for consistency.
func (s *SettingsService) Validate(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if _, err := domain.ParseDailySchedule(settings.Schedule.FireTime, nil); err != nil {
		return err
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Keys returns every recognised setting key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keySourceDir, keyBackupDir, keyDatabase,
		keyExtensions, keySkipDuplicates, keyCollision,
		keyFireTime, keyCheckInterval,
		keyWatchEnabled, keyWatchAuto, keyWatchMinInterval,
	}
	sort.Strings(keys)
	return keys
}

// SchedulerConfig derives the scheduler configuration from settings.
func SchedulerConfig(settings *domain.Settings) (domain.SchedulerConfig, error) {
	schedule, err := domain.ParseDailySchedule(settings.Schedule.FireTime, time.Local)
	if err != nil {
		return domain.SchedulerConfig{}, err
	}
	return domain.SchedulerConfig{
		Enabled:       true,
		Schedule:      schedule,
		CheckInterval: settings.Schedule.CheckInterval,
	}, nil
}

// Readers below convert raw store values. A value of the wrong type falls
// back to the default and is then caught by Validate where it matters.

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.configStore.Get(key); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if v, ok := s.configStore.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// getSeconds reads a whole number of seconds. TOML decodes integers as
// int64, JSON-like sources as float64.
func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	v, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return time.Duration(n) * time.Second
	case int64:
		return time.Duration(n) * time.Second
	case float64:
		return time.Duration(n) * time.Second
	default:
		return defaultVal
	}
}

// getStringSlice reads a list; TOML arrays decode as []any.
func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	v, ok := s.configStore.Get(key)
	if !ok {
		return append([]string(nil), defaultVal...)
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return append([]string(nil), defaultVal...)
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSeconds(key, value string) (time.Duration, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidInput, key)
	}
	return time.Duration(n) * time.Second, nil
}

// SettingValues renders settings as key → string form, the inverse of Set.
func SettingValues(settings *domain.Settings) map[string]string {
	seconds := func(d time.Duration) string { return strconv.Itoa(int(d / time.Second)) }
	return map[string]string{
		keySourceDir:        settings.Paths.Source,
		keyBackupDir:        settings.Paths.Backup,
		keyDatabase:         settings.Paths.Database,
		keyExtensions:       strings.Join(settings.Consolidation.Extensions, ","),
		keySkipDuplicates:   strconv.FormatBool(settings.Consolidation.SkipDuplicates),
		keyCollision:        settings.Archive.Collision.String(),
		keyFireTime:         settings.Schedule.FireTime,
		keyCheckInterval:    seconds(settings.Schedule.CheckInterval),
		keyWatchEnabled:     strconv.FormatBool(settings.Watch.Enabled),
		keyWatchAuto:        strconv.FormatBool(settings.Watch.AutoConsolidate),
		keyWatchMinInterval: seconds(settings.Watch.MinInterval),
	}
}
