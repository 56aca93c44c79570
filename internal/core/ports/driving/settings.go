package driving

import "github.com/custodia-labs/kgtool/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, applying defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Set validates and stores a single setting from its string form.
	Set(key, value string) error

	// Keys returns the supported setting keys in display order.
	Keys() []string

	// Value returns the effective value of a key formatted for display.
	Value(key string) (string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
