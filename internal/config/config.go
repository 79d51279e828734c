// Package config loads settings from defaults, an optional hyperspace.yaml
// and HYPERSPACE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "hyperspace"

// EnvPrefix prefixes environment overrides, e.g. HYPERSPACE_SSH_PORT.
const EnvPrefix = "HYPERSPACE"

// Config is the typed view of all settings.
type Config struct {
	LogLevel string        `mapstructure:"logLevel"`
	FPS      int           `mapstructure:"fps"`
	Seed     int64         `mapstructure:"seed"` // 0 seeds from the clock
	SSH      SSHConfig     `mapstructure:"ssh"`
	Graylog  GraylogConfig `mapstructure:"graylog"`
	Influx   InfluxConfig  `mapstructure:"influx"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// SSHConfig holds the SSH server settings.
type SSHConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	HostKeyPath     string        `mapstructure:"hostKeyPath"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// GraylogConfig holds the optional GELF log sink settings.
type GraylogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// InfluxConfig holds the optional session summary sink settings.
type InfluxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

// MetricsConfig holds the optional OpenTelemetry metric export settings.
type MetricsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Path     string        `mapstructure:"path"` // Empty writes to stdout
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("fps", 60)
	viper.SetDefault("seed", 0)

	viper.SetDefault("ssh.host", "::")
	viper.SetDefault("ssh.port", "2222")
	viper.SetDefault("ssh.hostKeyPath", "/app/keys/host_key")
	viper.SetDefault("ssh.shutdownTimeout", "15s")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "hyperspace")
	viper.SetDefault("influx.bucket", "sessions")

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.path", "")
	viper.SetDefault("metrics.interval", "30s")
}

// BindFlags registers the command-line overrides on fs and binds them to
// their keys. A flag set on the command line wins over the file and the
// environment.
func BindFlags(fs *pflag.FlagSet) error {
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Int("fps", 60, "frames per second")
	fs.Int64("seed", 0, "game seed, 0 seeds from the clock")

	bindings := map[string]string{
		"logLevel": "log-level",
		"fps":      "fps",
		"seed":     "seed",
	}
	for key, name := range bindings {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration from configDir and the environment. A missing
// config file is not an error; a malformed one is.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS)
	}
	if c.SSH.Port == "" {
		return errors.New("ssh.port must not be empty")
	}
	if c.SSH.ShutdownTimeout < 0 {
		return fmt.Errorf("ssh.shutdownTimeout must not be negative, got %s", c.SSH.ShutdownTimeout)
	}
	if c.Graylog.Enabled && c.Graylog.Address == "" {
		return errors.New("graylog.address is required when graylog is enabled")
	}
	if c.Influx.Enabled && (c.Influx.URL == "" || c.Influx.Bucket == "") {
		return errors.New("influx.url and influx.bucket are required when influx is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Interval <= 0 {
		return fmt.Errorf("metrics.interval must be positive, got %s", c.Metrics.Interval)
	}
	return nil
}

// FrameTime returns the target duration of one frame.
func (c Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
