package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all roughlab configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Analysis engine settings
	Analysis AnalysisConfig `yaml:"analysis"`

	// Table entry bounds for the interactive lab
	Table TableConfig `yaml:"table"`

	// Datalog rule audit
	Audit AuditConfig `yaml:"audit"`

	// Document watching
	Watch WatchConfig `yaml:"watch"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AnalysisConfig bounds the analysis engine.
type AnalysisConfig struct {
	// MaxAttributes caps the reduct search; the subset lattice doubles
	// per attribute.
	MaxAttributes int `yaml:"max_attributes"`
	// Workers for the reduct search. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// TableConfig bounds interactive table entry. Loaded documents are not
// subject to these limits, only the lab's grid editor is.
type TableConfig struct {
	MinObjects    int    `yaml:"min_objects"`
	MaxObjects    int    `yaml:"max_objects"`
	MinAttributes int    `yaml:"min_attributes"`
	MaxAttributes int    `yaml:"max_attributes"`
	DecisionName  string `yaml:"decision_name"`
}

// AuditConfig configures the Datalog rule audit.
type AuditConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WatchConfig configures document watching.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme string `yaml:"theme"` // dark, light
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "roughlab",
		Version: "1.2.0",

		Analysis: AnalysisConfig{
			MaxAttributes: 16,
			Workers:       0,
		},

		Table: TableConfig{
			MinObjects:    2,
			MaxObjects:    20,
			MinAttributes: 1,
			MaxAttributes: 6,
			DecisionName:  "Decision",
		},

		Audit: AuditConfig{
			Enabled: false,
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		UI: UIConfig{
			Theme: "dark",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}

// DefaultConfigPath returns the default path to .roughlab/config.yaml.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".roughlab", "config.yaml")
	}
	return filepath.Join(cwd, ".roughlab", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults apply, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies ROUGHLAB_* environment overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("ROUGHLAB_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("ROUGHLAB_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if theme := os.Getenv("ROUGHLAB_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if workers := os.Getenv("ROUGHLAB_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n >= 0 {
			c.Analysis.Workers = n
		}
	}
	if max := os.Getenv("ROUGHLAB_MAX_ATTRIBUTES"); max != "" {
		if n, err := strconv.Atoi(max); err == nil && n >= 1 {
			c.Analysis.MaxAttributes = n
		}
	}
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// ValidThemes lists the supported UI themes.
var ValidThemes = []string{"dark", "light"}

// ValidLogLevels lists the supported logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the supported logging formats.
var ValidLogFormats = []string{"text", "json"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.MaxAttributes < 1 {
		return fmt.Errorf("analysis.max_attributes must be at least 1, got %d", c.Analysis.MaxAttributes)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}

	if c.Table.MinObjects < 2 {
		return fmt.Errorf("table.min_objects must be at least 2, got %d", c.Table.MinObjects)
	}
	if c.Table.MaxObjects < c.Table.MinObjects {
		return fmt.Errorf("table.max_objects (%d) must not be below table.min_objects (%d)", c.Table.MaxObjects, c.Table.MinObjects)
	}
	if c.Table.MinAttributes < 1 {
		return fmt.Errorf("table.min_attributes must be at least 1, got %d", c.Table.MinAttributes)
	}
	if c.Table.MaxAttributes < c.Table.MinAttributes {
		return fmt.Errorf("table.max_attributes (%d) must not be below table.min_attributes (%d)", c.Table.MaxAttributes, c.Table.MinAttributes)
	}
	if c.Table.DecisionName == "" {
		return fmt.Errorf("table.decision_name must not be empty")
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce is not a duration: %w", err)
	}

	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
