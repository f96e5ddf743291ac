package driven

// ConfigStore holds raw setting values under dot-notation keys such as
// "paths.source". Values come back as the backing format decoded them
// (TOML integers as int64, arrays as []any); SettingsService converts them.
type ConfigStore interface {
	// Get returns the value under key and whether it is set.
	Get(key string) (any, bool)

	// Set stores value under key and persists it before returning.
	Set(key string, value any) error

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Path returns where the values are persisted.
	Path() string
}
