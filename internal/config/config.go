// Package config loads runtime settings from defaults, an optional YAML file,
// and SKINTONE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SKINTONE_IMAGE_MAX_DIMENSION.
const EnvPrefix = "SKINTONE"

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "skintone.yaml"

type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Image    ImageConfig   `mapstructure:"image"`
	Palette  PaletteConfig `mapstructure:"palette"`
	Session  SessionConfig `mapstructure:"session"`
}

type ImageConfig struct {
	MaxDimension   int     `mapstructure:"max_dimension"`
	OverlayOpacity float64 `mapstructure:"overlay_opacity"`
}

type PaletteConfig struct {
	SwatchSize int `mapstructure:"swatch_size"`
}

type SessionConfig struct {
	MaxSessions int           `mapstructure:"max_sessions"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// Load reads configuration. An empty path looks for DefaultFile and carries
// on with defaults if it is absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Image: ImageConfig{
			MaxDimension:   1000,
			OverlayOpacity: 0.5,
		},
		Palette: PaletteConfig{
			SwatchSize: 64,
		},
		Session: SessionConfig{
			MaxSessions: 64,
			TTL:         2 * time.Hour,
		},
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Image.MaxDimension <= 0 {
		return fmt.Errorf("image.max_dimension must be positive, got %d", c.Image.MaxDimension)
	}
	if c.Image.OverlayOpacity < 0 || c.Image.OverlayOpacity > 1 {
		return fmt.Errorf("image.overlay_opacity must be within [0, 1], got %g", c.Image.OverlayOpacity)
	}
	if c.Palette.SwatchSize <= 0 {
		return fmt.Errorf("palette.swatch_size must be positive, got %d", c.Palette.SwatchSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)

	v.SetDefault("image.max_dimension", d.Image.MaxDimension)
	v.SetDefault("image.overlay_opacity", d.Image.OverlayOpacity)

	v.SetDefault("palette.swatch_size", d.Palette.SwatchSize)

	v.SetDefault("session.max_sessions", d.Session.MaxSessions)
	v.SetDefault("session.ttl", d.Session.TTL)
}
