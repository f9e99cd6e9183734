// Package config loads events-board settings from a YAML file, environment
// variables (EVENTS_BOARD_*) and built-in defaults, in that order of precedence
// after explicit flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source names accepted by the source setting
const (
	SourceStatic = "static"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// ErrUnknownSource is returned for a source setting that names no backend
var ErrUnknownSource = errors.New("unknown event source")

const envPrefix = "EVENTS_BOARD"

// Config holds every events-board setting
type Config struct {
	ListenAddress   string        `mapstructure:"listen_address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Source    string `mapstructure:"source"`
	DataDir   string `mapstructure:"data_dir"`
	SQLiteDSN string `mapstructure:"sqlite_dsn"`
	ShowTime  bool   `mapstructure:"show_time"`

	LogLevel     string `mapstructure:"log_level"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", ":8080")
	v.SetDefault("read_timeout", 5*time.Second)
	v.SetDefault("write_timeout", 5*time.Second)
	v.SetDefault("idle_timeout", 60*time.Second)
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("source", SourceStatic)
	v.SetDefault("data_dir", "~/.local/share/events-board")
	v.SetDefault("sqlite_dsn", "")
	v.SetDefault("show_time", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("service_name", "events-board")
}

// New returns a viper instance with defaults and environment binding applied.
// If cfgFile is empty, $HOME/.events-board.yaml is used when present.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".events-board")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config file is fine, an explicit one is not
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.SQLiteDSN == "" {
		c.SQLiteDSN = filepath.Join(c.DataDir, "events.db")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks settings that would otherwise fail at first request
func (c *Config) Validate() error {
	switch c.Source {
	case SourceStatic, SourceJSON, SourceSQLite:
	default:
		return fmt.Errorf("%w: %q (must be static, json or sqlite)", ErrUnknownSource, c.Source)
	}

	timeouts := map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.ListenAddress == "" {
		return errors.New("listen_address must not be empty")
	}
	return nil
}
