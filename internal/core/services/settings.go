package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBuildMinSimilarity    = "build.min_similarity"
	KeyBuildTopKeywords      = "build.top_keywords"
	KeyBuildTopKeyphrases    = "build.top_keyphrases"
	KeyBuildMaxFeatures      = "build.max_features"
	KeyDiscoverNumTopics     = "discover.num_topics"
	KeyDiscoverTermsPerTopic = "discover.terms_per_topic"
	KeyDiscoverMaxFeatures   = "discover.max_features"
	KeyExtractNeighbors      = "extract.include_neighbors"
)

// settingKeys lists the supported keys in display order.
var settingKeys = []string{
	KeyBuildMinSimilarity,
	KeyBuildTopKeywords,
	KeyBuildTopKeyphrases,
	KeyBuildMaxFeatures,
	KeyDiscoverNumTopics,
	KeyDiscoverTermsPerTopic,
	KeyDiscoverMaxFeatures,
	KeyExtractNeighbors,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, using defaults for unset keys.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Build: domain.BuildSettings{
			MinSimilarity: s.getFloat(KeyBuildMinSimilarity, defaults.Build.MinSimilarity),
			TopKeywords:   s.getInt(KeyBuildTopKeywords, defaults.Build.TopKeywords),
			TopKeyphrases: s.getInt(KeyBuildTopKeyphrases, defaults.Build.TopKeyphrases),
			MaxFeatures:   s.getInt(KeyBuildMaxFeatures, defaults.Build.MaxFeatures),
		},
		Discover: domain.DiscoverSettings{
			NumTopics:     s.getInt(KeyDiscoverNumTopics, defaults.Discover.NumTopics),
			TermsPerTopic: s.getInt(KeyDiscoverTermsPerTopic, defaults.Discover.TermsPerTopic),
			MaxFeatures:   s.getInt(KeyDiscoverMaxFeatures, defaults.Discover.MaxFeatures),
		},
		Extract: domain.ExtractSettings{
			IncludeNeighbors: s.getBool(KeyExtractNeighbors, defaults.Extract.IncludeNeighbors),
		},
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the supported setting keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Set parses, validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case KeyBuildMinSimilarity:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %q", domain.ErrInvalidInput, key, value)
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %g", domain.ErrInvalidInput, key, f)
		}
		return s.save(key, f)

	case KeyBuildTopKeywords, KeyBuildTopKeyphrases:
		n, err := parseInt(key, value, 0)
		if err != nil {
			return err
		}
		return s.save(key, n)

	case KeyBuildMaxFeatures, KeyDiscoverNumTopics, KeyDiscoverTermsPerTopic, KeyDiscoverMaxFeatures:
		n, err := parseInt(key, value, 1)
		if err != nil {
			return err
		}
		return s.save(key, n)

	case KeyExtractNeighbors:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false: %q", domain.ErrInvalidInput, key, value)
		}
		return s.save(key, b)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Value returns the effective value of a key formatted for display.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	switch key {
	case KeyBuildMinSimilarity:
		return strconv.FormatFloat(settings.Build.MinSimilarity, 'g', -1, 64), nil
	case KeyBuildTopKeywords:
		return strconv.Itoa(settings.Build.TopKeywords), nil
	case KeyBuildTopKeyphrases:
		return strconv.Itoa(settings.Build.TopKeyphrases), nil
	case KeyBuildMaxFeatures:
		return strconv.Itoa(settings.Build.MaxFeatures), nil
	case KeyDiscoverNumTopics:
		return strconv.Itoa(settings.Discover.NumTopics), nil
	case KeyDiscoverTermsPerTopic:
		return strconv.Itoa(settings.Discover.TermsPerTopic), nil
	case KeyDiscoverMaxFeatures:
		return strconv.Itoa(settings.Discover.MaxFeatures), nil
	case KeyExtractNeighbors:
		return strconv.FormatBool(settings.Extract.IncludeNeighbors), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func (s *SettingsService) save(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func parseInt(key, value string, minimum int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
	}
	if n < minimum {
		return 0, fmt.Errorf("%w: %s must be at least %d, got %d", domain.ErrInvalidInput, key, minimum, n)
	}
	return n, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
