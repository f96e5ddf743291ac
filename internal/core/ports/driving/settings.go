package driving

import "github.com/custodia-labs/ventas-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.Settings, error)

	// Save persists settings after validating them.
	Save(settings *domain.Settings) error

	// Set updates a single key from its string form, e.g. "archive.collision" = "rename".
	Set(key, value string) error

	// Validate checks the settings for consistency.
	Validate(settings *domain.Settings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Keys returns every recognised setting key.
	Keys() []string
}
