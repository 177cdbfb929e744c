package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. ZIGGY_LOG_LEVEL.
const EnvPrefix = "ZIGGY"

// Config holds all configuration for ziggy.
type Config struct {
	// DB is the database path. Empty means the XDG data directory.
	DB      string        `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Mission MissionConfig `mapstructure:"mission"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File is the log destination. Empty means ziggy.log next to the
	// database; "-" means stderr.
	File string `mapstructure:"file"`
}

// MissionConfig holds mission timing and the defaults given to a new
// learner's settings.
type MissionConfig struct {
	TimeLimit     time.Duration `mapstructure:"time_limit"`
	WarningBefore time.Duration `mapstructure:"warning_before"`
	DefaultSize   int           `mapstructure:"default_size"`
	AutoAdvance   int           `mapstructure:"auto_advance"`
}

// NewViper returns a viper instance with defaults and environment
// overrides set up. Callers may bind flags before passing it to Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	v.SetDefault("mission.time_limit", session.DefaultTimeLimit)
	v.SetDefault("mission.warning_before", session.DefaultWarningBefore)
	v.SetDefault("mission.default_size", session.DefaultMissionSize)
	v.SetDefault("mission.auto_advance", int(session.DefaultAutoAdvance/time.Second))
}

// Load reads configuration into a Config. file names an explicit config
// file; when empty, ziggy.yaml is looked up in the user config directory
// and the working directory, and a missing file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("ziggy")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format: %q is not json or text", c.Log.Format)
	}
	if c.Mission.TimeLimit <= 0 {
		return fmt.Errorf("mission.time_limit: must be positive, got %s", c.Mission.TimeLimit)
	}
	if c.Mission.WarningBefore <= 0 || c.Mission.WarningBefore >= c.Mission.TimeLimit {
		return fmt.Errorf("mission.warning_before: must be between 0 and %s, got %s", c.Mission.TimeLimit, c.Mission.WarningBefore)
	}
	if !slices.Contains(session.MissionSizes, c.Mission.DefaultSize) {
		return fmt.Errorf("mission.default_size: must be one of %v, got %d", session.MissionSizes, c.Mission.DefaultSize)
	}
	if c.Mission.AutoAdvance < 1 || c.Mission.AutoAdvance > 30 {
		return fmt.Errorf("mission.auto_advance: must be 1-30 seconds, got %d", c.Mission.AutoAdvance)
	}
	return nil
}

// DBPath returns the configured database path or the default location.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}

// LogPath returns where the log is written, or "" for stderr.
func (c *Config) LogPath(dbPath string) string {
	switch c.Log.File {
	case "-":
		return ""
	case "":
		return filepath.Join(filepath.Dir(dbPath), "ziggy.log")
	default:
		return c.Log.File
	}
}

// SessionConfig returns the engine timing parameters.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		TimeLimit:     c.Mission.TimeLimit,
		WarningBefore: c.Mission.WarningBefore,
	}
}

// DefaultSettings returns the settings a new learner starts with.
func (c *Config) DefaultSettings() store.Settings {
	s := store.DefaultSettings()
	s.DefaultMissionSize = c.Mission.DefaultSize
	s.AutoAdvanceSpeed = c.Mission.AutoAdvance
	return s
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ziggy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ziggy")
}
