// Package config provides configuration management for oops.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"oops/internal/logger"
)

// AllRulesSentinel in the enabled-rules list means "every rule that is
// enabled by default".
const AllRulesSentinel = "all"

// Config holds all configuration for the application.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Fuzzy   FuzzyConfig   `mapstructure:"fuzzy"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig holds application settings.
type AppConfig struct {
	Debug               bool `mapstructure:"debug"`
	RequireConfirmation bool `mapstructure:"require_confirmation"`
	WaitCommandSec      int  `mapstructure:"wait_command_seconds"`
}

// RulesConfig holds rule selection and ranking settings.
type RulesConfig struct {
	Enabled         []string       `mapstructure:"enabled"`
	Excluded        []string       `mapstructure:"excluded"`
	Priorities      map[string]int `mapstructure:"priorities"`
	NumCloseMatches int            `mapstructure:"num_close_matches"`
}

// FuzzyConfig holds fuzzy matching settings.
type FuzzyConfig struct {
	Cutoff float64 `mapstructure:"cutoff"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Settings is the immutable snapshot one correction pass runs against. It is
// passed explicitly into the corrector; the engine never reads globals.
type Settings struct {
	Rules               []string
	ExcludeRules        []string
	Priorities          map[string]int
	NumCloseMatches     int
	FuzzyCutoff         float64
	WaitCommand         time.Duration
	RequireConfirmation bool
	Debug               bool
}

// RuleEnabled resolves whether a rule participates in a pass. Exclusion
// always wins; rules that are off by default need an explicit entry in the
// allow-list, the sentinel is not enough.
func (s Settings) RuleEnabled(name string, enabledByDefault bool) bool {
	for _, excluded := range s.ExcludeRules {
		if excluded == name {
			return false
		}
	}
	explicit := false
	sentinel := false
	for _, enabled := range s.Rules {
		switch enabled {
		case name:
			explicit = true
		case AllRulesSentinel:
			sentinel = true
		}
	}
	if enabledByDefault {
		return explicit || sentinel
	}
	return explicit
}

// RulePriority returns the configured override for a rule, or fallback.
func (s Settings) RulePriority(name string, fallback int) int {
	if p, ok := s.Priorities[name]; ok {
		return p
	}
	return fallback
}

// DefaultSettings returns the settings used when no configuration is loaded.
func DefaultSettings() Settings {
	return Settings{
		Rules:           []string{AllRulesSentinel},
		Priorities:      map[string]int{},
		NumCloseMatches: 5,
		FuzzyCutoff:     0.6,
		WaitCommand:     3 * time.Second,
	}
}

// Settings builds the immutable pass snapshot from the loaded configuration.
func (c *Config) Settings() Settings {
	s := DefaultSettings()
	if len(c.Rules.Enabled) > 0 {
		s.Rules = c.Rules.Enabled
	}
	s.ExcludeRules = c.Rules.Excluded
	if c.Rules.Priorities != nil {
		s.Priorities = c.Rules.Priorities
	}
	if c.Rules.NumCloseMatches != 0 {
		s.NumCloseMatches = c.Rules.NumCloseMatches
	}
	if c.Fuzzy.Cutoff > 0 {
		s.FuzzyCutoff = c.Fuzzy.Cutoff
	}
	if c.App.WaitCommandSec > 0 {
		s.WaitCommand = time.Duration(c.App.WaitCommandSec) * time.Second
	}
	s.RequireConfirmation = c.App.RequireConfirmation
	s.Debug = c.App.Debug
	return s
}

var globalConfig *Config

// Load loads the configuration from file and environment variables. A missing
// file is created with defaults; a malformed one logs a warning and defaults
// are substituted, never a fatal error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = getDefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix("OOPS")
	v.AutomaticEnv()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || isNotFound(err) {
			if werr := createDefaultConfig(path); werr != nil {
				logger.Warn("could not write default config", "path", path, "error", werr)
			} else if rerr := v.ReadInConfig(); rerr != nil {
				logger.Warn("could not read created config, using defaults", "error", rerr)
			}
		} else {
			logger.Warn("malformed config, using defaults", "path", path, "error", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Warn("could not unmarshal config, using defaults", "error", err)
		cfg = Config{}
	}

	if cfg.Logging.File != "" {
		cfg.Logging.File = expandPath(cfg.Logging.File)
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Get returns the loaded configuration, loading defaults on first use.
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load("")
		if err != nil {
			return &Config{}
		}
		return cfg
	}
	return globalConfig
}

func isNotFound(err error) bool {
	_, ok := err.(viper.ConfigFileNotFoundError)
	if ok {
		return true
	}
	_, ok = err.(*os.PathError)
	return ok
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.debug", false)
	v.SetDefault("app.require_confirmation", true)
	v.SetDefault("app.wait_command_seconds", 3)

	v.SetDefault("rules.enabled", []string{AllRulesSentinel})
	v.SetDefault("rules.excluded", []string{})
	v.SetDefault("rules.num_close_matches", 5)

	v.SetDefault("fuzzy.cutoff", 0.6)

	v.SetDefault("logging.level", "warn")
}

func createDefaultConfig(path string) error {
	defaultConfig := `# oops configuration
app:
  debug: false
  require_confirmation: true
  wait_command_seconds: 3

rules:
  # "all" enables every rule that is on by default. Add rule names to enable
  # opt-in rules, list names under excluded to switch rules off.
  enabled:
    - all
  excluded: []
  # Per-rule priority overrides; lower surfaces earlier.
  priorities: {}
  num_close_matches: 5

fuzzy:
  cutoff: 0.6

logging:
  level: "warn"
  file: ""
`
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}

func getDefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "oops", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oops.yaml"
	}
	return filepath.Join(home, ".config", "oops", "config.yaml")
}

// GetDataDir returns the directory used for caches and state.
func GetDataDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "oops")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oops"
	}
	return filepath.Join(home, ".cache", "oops")
}
