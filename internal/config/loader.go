package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigFileEnv names the environment variable holding an optional YAML config file path.
const ConfigFileEnv = "TASKS_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a new configuration loader.
// path is an optional YAML config file; when empty, TASKS_CONFIG is consulted.
func NewLoader(path string) *Loader {
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	return &Loader{
		config: seededConfig(),
		path:   path,
	}
}

// seededConfig holds the defaults that env-default cannot express: cleanenv
// applies a default to every zero field, which would turn a configured false
// back into true.
func seededConfig() *Config {
	return &Config{
		Display:     DisplayConfig{RelativeDue: true},
		Application: ApplicationConfig{Autosave: true},
	}
}

// Load loads configuration using the cascading strategy:
// 1. Defaults from env-default tags and seededConfig
// 2. Values from the YAML config file, if any
// 3. Environment variables
// Command line flags are applied afterwards by LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	var err error
	if l.path != "" {
		err = cleanenv.ReadConfig(l.path, l.config)
	} else {
		err = cleanenv.ReadEnv(l.config)
	}
	if err != nil {
		return nil, &ConfigError{Field: "config", Message: err.Error()}
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides.
// Nil fields leave the loaded value untouched.
type ConfigOverrides struct {
	Dir              *string
	Filename         *string
	Backend          *string
	DescriptionWidth *int
	Timeout          *time.Duration
	Verbose          *bool
	LogLevel         *string
}

// Apply copies the set overrides onto config.
func (o *ConfigOverrides) Apply(config *Config) {
	if o.Dir != nil {
		config.Storage.Dir = *o.Dir
	}
	if o.Filename != nil {
		config.Storage.Filename = *o.Filename
	}
	if o.Backend != nil {
		config.Storage.Backend = *o.Backend
	}
	if o.DescriptionWidth != nil {
		config.Display.DescriptionWidth = *o.DescriptionWidth
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Logging.Verbose = *o.Verbose
	}
	if o.LogLevel != nil {
		config.Logging.Level = *o.LogLevel
	}
}
