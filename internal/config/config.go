package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default file names per backend
const (
	DefaultJSONFile   = "tasks.json"
	DefaultSQLiteFile = "tasks.db"
)

// Config holds all configuration options for the task manager
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Display     DisplayConfig     `yaml:"display"`
	Validation  ValidationConfig  `yaml:"validation"`
	Application ApplicationConfig `yaml:"application"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// StorageConfig holds persistence-related configuration.
// An empty Filename selects the backend's default file name.
type StorageConfig struct {
	Dir             string `yaml:"dir" env:"TASKS_DIR" env-default:"."`
	Filename        string `yaml:"file" env:"TASKS_FILE"`
	Backend         string `yaml:"backend" env:"TASKS_BACKEND" env-default:"json"`
	DirPermissions  string `yaml:"dir_permissions" env:"TASKS_DIR_PERMISSIONS" env-default:"0755"`
	FilePermissions string `yaml:"file_permissions" env:"TASKS_FILE_PERMISSIONS" env-default:"0644"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DescriptionWidth int    `yaml:"description_width" env:"TASKS_DESCRIPTION_WIDTH" env-default:"50"`
	DateFormat       string `yaml:"date_format" env:"TASKS_DATE_FORMAT" env-default:"2006-01-02"`
	RelativeDue      bool   `yaml:"relative_due" env:"TASKS_RELATIVE_DUE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `yaml:"title_max" env:"TASKS_TITLE_MAX" env-default:"200"`
	DescriptionMaxLength int `yaml:"description_max" env:"TASKS_DESCRIPTION_MAX" env-default:"2000"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `yaml:"timeout" env:"TASKS_TIMEOUT" env-default:"30s"`
	Autosave bool          `yaml:"autosave" env:"TASKS_AUTOSAVE"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level   string `yaml:"level" env:"TASKS_LOG_LEVEL" env-default:"warn"`
	Format  string `yaml:"format" env:"TASKS_LOG_FORMAT" env-default:"console"`
	Verbose bool   `yaml:"verbose" env:"TASKS_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:             ".",
			Backend:         BackendJSON,
			DirPermissions:  "0755",
			FilePermissions: "0644",
		},
		Display: DisplayConfig{
			DescriptionWidth: 50,
			DateFormat:       "2006-01-02",
			RelativeDue:      true,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       200,
			DescriptionMaxLength: 2000,
		},
		Application: ApplicationConfig{
			Timeout:  30 * time.Second,
			Autosave: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// StorageFilename returns the configured file name, or the backend default.
func (c *Config) StorageFilename() string {
	if c.Storage.Filename != "" {
		return c.Storage.Filename
	}
	if c.Storage.Backend == BackendSQLite {
		return DefaultSQLiteFile
	}
	return DefaultJSONFile
}

// StoragePath returns the full path to the storage file.
// An absolute Filename is used as is.
func (c *Config) StoragePath() string {
	name := c.StorageFilename()
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Storage.Dir, name)
}

// DirMode returns the permissions used when creating the storage directory.
func (c *Config) DirMode() os.FileMode {
	mode, _ := parseMode(c.Storage.DirPermissions)
	return mode
}

// FileMode returns the permissions of the storage file.
func (c *Config) FileMode() os.FileMode {
	mode, _ := parseMode(c.Storage.FilePermissions)
	return mode
}

// GetTimeout returns the per-command timeout
func (c *Config) GetTimeout() time.Duration {
	return c.Application.Timeout
}

func parseMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 8, 32)
	if err != nil {
		return 0, err
	}
	return os.FileMode(v), nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Storage
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return &ConfigError{Field: "storage.backend", Message: "backend must be json or sqlite, got " + strconv.Quote(c.Storage.Backend)}
	}
	if mode, err := parseMode(c.Storage.DirPermissions); err != nil || mode == 0 {
		return &ConfigError{Field: "storage.dir_permissions", Message: "directory permissions must be an octal mode such as 0755"}
	}
	if mode, err := parseMode(c.Storage.FilePermissions); err != nil || mode == 0 {
		return &ConfigError{Field: "storage.file_permissions", Message: "file permissions must be an octal mode such as 0644"}
	}

	// Display
	if c.Display.DescriptionWidth < 10 {
		return &ConfigError{Field: "display.description_width", Message: "description width must be at least 10"}
	}
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	// Validation
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max", Message: "description maximum length cannot be negative"}
	}

	// Application
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Logging
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return &ConfigError{Field: "logging.level", Message: "unknown log level " + strconv.Quote(c.Logging.Level)}
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return &ConfigError{Field: "logging.format", Message: "log format must be console or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
