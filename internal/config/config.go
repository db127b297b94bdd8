package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Config keeps runtime settings for the planner.
type Config struct {
	Storage       string        `mapstructure:"storage"`
	DatabaseURL   string        `mapstructure:"database_url"`
	DataDir       string        `mapstructure:"data_dir"`
	WatchInterval time.Duration `mapstructure:"watch_interval"`
	RolloverAt    string        `mapstructure:"rollover_at"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Storage:       DriverSQLite,
		DatabaseURL:   "~/.local/share/planly/planly.db",
		DataDir:       "~/.local/share/planly",
		WatchInterval: 15 * time.Minute,
		RolloverAt:    "00:00",
	}
}

// Path returns the config file location. PLANLY_CONFIG wins over the user
// config dir.
func Path() (string, error) {
	if custom := os.Getenv("PLANLY_CONFIG"); custom != "" {
		return custom, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", fmt.Errorf("determine home directory: %w", homeErr)
		}
		return filepath.Join(home, ".planly", "config.yaml"), nil
	}
	return filepath.Join(dir, "planly", "config.yaml"), nil
}

// Load reads the config file at path (or the default location when path is
// empty) and applies PLANLY_* environment overrides. A missing file is not an
// error.
func Load(path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("storage", def.Storage)
	v.SetDefault("database_url", def.DatabaseURL)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("watch_interval", def.WatchInterval)
	v.SetDefault("rollover_at", def.RolloverAt)

	v.SetEnvPrefix("PLANLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		p, err := Path()
		if err != nil {
			return def, err
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return def, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("parse config: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.DatabaseURL = expandHomeDir(cfg.DatabaseURL)
	cfg.DataDir = expandHomeDir(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default on its own.
func (c Config) Validate() error {
	switch c.Storage {
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return fmt.Errorf("storage must be one of %s, %s, %s, got %q", DriverSQLite, DriverFile, DriverMemory, c.Storage)
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch_interval must be positive")
	}
	if _, err := time.Parse("15:04", c.RolloverAt); err != nil {
		return fmt.Errorf("invalid rollover_at %q, expected HH:MM", c.RolloverAt)
	}
	return nil
}

// fileConfig is the YAML layout written by Write. Durations are kept human
// readable.
type fileConfig struct {
	Storage       string `yaml:"storage"`
	DatabaseURL   string `yaml:"database_url"`
	DataDir       string `yaml:"data_dir"`
	WatchInterval string `yaml:"watch_interval"`
	RolloverAt    string `yaml:"rollover_at"`
}

// Write stores cfg as YAML at path, creating the directory.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(fileConfig{
		Storage:       cfg.Storage,
		DatabaseURL:   cfg.DatabaseURL,
		DataDir:       cfg.DataDir,
		WatchInterval: cfg.WatchInterval.String(),
		RolloverAt:    cfg.RolloverAt,
	})
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func expandHomeDir(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
