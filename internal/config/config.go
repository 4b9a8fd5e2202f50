// Package config loads runtime settings from a YAML file, NODEBLOCK_*
// environment variables and command line flags using viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. NODEBLOCK_HTTP_ADDR.
const EnvPrefix = "NODEBLOCK"

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the resolved runtime configuration.
type Config struct {
	HTTP         HTTPConfig        `mapstructure:"http"`
	Storage      StorageConfig     `mapstructure:"storage"`
	DisplayModes DisplayModeConfig `mapstructure:"displaymodes"`
	Templates    TemplateConfig    `mapstructure:"templates"`
	Theme        ThemeConfig       `mapstructure:"theme"`
	Nodes        NodesConfig       `mapstructure:"nodes"`
	Log          LogConfig         `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr       string `mapstructure:"addr"`
	CSRFSecret string `mapstructure:"csrf_secret"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// DisplayModeConfig points at a directory of view mode definitions. Empty
// uses the built-in node view modes.
type DisplayModeConfig struct {
	Path string `mapstructure:"path"`
}

// TemplateConfig overrides the embedded node view templates.
type TemplateConfig struct {
	Dir string `mapstructure:"dir"`
}

type ThemeConfig struct {
	Manifest string `mapstructure:"manifest"`
	Variant  string `mapstructure:"variant"`
}

// NodesConfig seeds the node store from a YAML or JSON file on start.
type NodesConfig struct {
	Seed string `mapstructure:"seed"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.csrf_secret", "")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.dsn", "nodeblock.db")
	v.SetDefault("displaymodes.path", "")
	v.SetDefault("templates.dir", "")
	v.SetDefault("theme.manifest", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("nodes.seed", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// New returns a viper instance with defaults and environment binding
// configured. When path is set the file is read; a missing explicit file is
// an error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("nodeblock")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read nodeblock.yaml: %w", err)
		}
	}
	return v, nil
}

// Decode resolves v into a Config and validates it.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is New followed by Decode.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("config: storage.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Theme.Variant != "" && c.Theme.Manifest == "" {
		return errors.New("config: theme.variant requires theme.manifest")
	}
	return nil
}
