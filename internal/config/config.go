// Package config loads scenario parameters from defaults, an optional
// objectmodel.yaml, OBJECTMODEL_* environment variables and command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// OBJECTMODEL_RW_READERS=5.
const EnvPrefix = "OBJECTMODEL"

type Config struct {
	Log    Log    `mapstructure:"log"`
	RW     RW     `mapstructure:"rw"`
	Stress Stress `mapstructure:"stress"`
	Output string `mapstructure:"output"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RW drives the reader/writer scenario.
type RW struct {
	Size       int `mapstructure:"size"`
	Fill       int `mapstructure:"fill"`
	Readers    int `mapstructure:"readers"`
	WriteIndex int `mapstructure:"write_index"`
	WriteValue int `mapstructure:"write_value"`
}

type Stress struct {
	Size            int           `mapstructure:"size"`
	Workers         int           `mapstructure:"workers"`
	Queue           int           `mapstructure:"queue"`
	Tasks           int           `mapstructure:"tasks"`
	WriteEvery      int           `mapstructure:"write_every"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("output", "text")

	v.SetDefault("rw.size", 8)
	v.SetDefault("rw.fill", 20)
	v.SetDefault("rw.readers", 3)
	v.SetDefault("rw.write_index", 0)
	v.SetDefault("rw.write_value", 7)

	v.SetDefault("stress.size", 64)
	v.SetDefault("stress.workers", 8)
	v.SetDefault("stress.queue", 128)
	v.SetDefault("stress.tasks", 10000)
	v.SetDefault("stress.write_every", 10)
	v.SetDefault("stress.shutdown_timeout", "30s")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a config file into v. With an empty path, objectmodel.yaml
// is looked up in the working directory and $HOME/.objectmodel; not finding
// it there is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("objectmodel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.objectmodel")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ValidationError names the offending key.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Message)
}

func (c Config) Validate() error {
	switch {
	case c.RW.Size < 0:
		return &ValidationError{Key: "rw.size", Message: "must not be negative"}
	case c.RW.Readers < 0:
		return &ValidationError{Key: "rw.readers", Message: "must not be negative"}
	case c.Stress.Size < 1:
		return &ValidationError{Key: "stress.size", Message: "must be at least 1"}
	case c.Stress.Workers < 1:
		return &ValidationError{Key: "stress.workers", Message: "must be at least 1"}
	case c.Stress.Queue < 0:
		return &ValidationError{Key: "stress.queue", Message: "must not be negative"}
	case c.Stress.Tasks < 0:
		return &ValidationError{Key: "stress.tasks", Message: "must not be negative"}
	case c.Stress.WriteEvery < 0:
		return &ValidationError{Key: "stress.write_every", Message: "must not be negative"}
	}

	switch c.Output {
	case "text", "json", "yaml":
	default:
		return &ValidationError{Key: "output", Message: fmt.Sprintf("unknown format %q", c.Output)}
	}
	return nil
}
