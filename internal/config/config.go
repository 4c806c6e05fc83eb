// Package config loads lightbox settings from a TOML file and LIGHTBOX_*
// environment variables.
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

// EnvPrefix prefixes every environment override, e.g. LIGHTBOX_GESTURE_THRESHOLD.
const EnvPrefix = "LIGHTBOX"

// Config holds application configuration.
type Config struct {
	Gallery GalleryConfig
	Gesture GestureConfig
	Effects EffectsConfig
	Preload PreloadConfig
	ViewLog ViewLogConfig `mapstructure:"viewlog"`
	Log     LogConfig
	UI      UIConfig
}

// GalleryConfig selects the catalog and the initial filter.
type GalleryConfig struct {
	Catalog  string
	Category string
}

// GestureConfig tunes swipe recognition. Terminal drags are measured in cells
// and converted to distance units with CellWidth and CellHeight.
type GestureConfig struct {
	Threshold  float64
	CellWidth  float64 `mapstructure:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height"`
}

// EffectsConfig controls the decorative animations.
type EffectsConfig struct {
	Enabled            bool
	TypewriterDelay    time.Duration `mapstructure:"typewriter_delay"`
	TypewriterInterval time.Duration `mapstructure:"typewriter_interval"`
	HeartsInterval     time.Duration `mapstructure:"hearts_interval"`
	RainCount          int           `mapstructure:"rain_count"`
	RainSpacing        time.Duration `mapstructure:"rain_spacing"`
}

// PreloadConfig sizes the image decoding workers and cache.
type PreloadConfig struct {
	Workers      int
	CacheSize    int `mapstructure:"cache_size"`
	MaxDimension int `mapstructure:"max_dimension"`
}

// ViewLogConfig controls the view analytics database.
type ViewLogConfig struct {
	Enabled bool
	Path    string
}

// LogConfig selects the log file and level.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Lang string
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Dir returns the directory for lightbox config files,
// using XDG_CONFIG_HOME or falling back to ~/.config.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "lightbox"), nil
}

// DefaultPath returns the config file used when neither a flag nor
// LIGHTBOX_CONFIG names one.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, "lightbox")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lightbox")
	}
	return filepath.Join(append([]string{home}, append(fallback, "lightbox")...)...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gallery.catalog", "")
	v.SetDefault("gallery.category", "all")
	v.SetDefault("gesture.threshold", 50.0)
	v.SetDefault("gesture.cell_width", 8.0)
	v.SetDefault("gesture.cell_height", 16.0)
	v.SetDefault("effects.enabled", true)
	v.SetDefault("effects.typewriter_delay", 2*time.Second)
	v.SetDefault("effects.typewriter_interval", 100*time.Millisecond)
	v.SetDefault("effects.hearts_interval", 3*time.Second)
	v.SetDefault("effects.rain_count", 50)
	v.SetDefault("effects.rain_spacing", 100*time.Millisecond)
	v.SetDefault("preload.workers", 2)
	v.SetDefault("preload.cache_size", 32)
	v.SetDefault("preload.max_dimension", 1024)
	v.SetDefault("viewlog.enabled", true)
	v.SetDefault("viewlog.path", filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "views.db"))
	v.SetDefault("log.path", filepath.Join(xdgDir("XDG_STATE_HOME", ".local", "state"), "lightbox.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.lang", "en")
}

// Load reads configuration from path (or LIGHTBOX_CONFIG, or the default
// location) and the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		def, err := DefaultPath()
		if err == nil {
			path = def
		}
	}
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	return c, c.Validate()
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Gesture.Threshold <= 0:
		return fmt.Errorf("gesture.threshold must be positive, got %v", c.Gesture.Threshold)
	case c.Gesture.CellWidth <= 0 || c.Gesture.CellHeight <= 0:
		return fmt.Errorf("gesture cell sizes must be positive")
	case c.Preload.Workers < 1:
		return fmt.Errorf("preload.workers must be at least 1, got %d", c.Preload.Workers)
	case c.Preload.CacheSize < 1:
		return fmt.Errorf("preload.cache_size must be at least 1, got %d", c.Preload.CacheSize)
	case c.Preload.MaxDimension < 16:
		return fmt.Errorf("preload.max_dimension must be at least 16, got %d", c.Preload.MaxDimension)
	case c.Effects.RainCount < 0:
		return fmt.Errorf("effects.rain_count must not be negative")
	case !validLevels[c.Log.Level]:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
