// Package config loads rotator settings from YAML.
//
// Files are decoded into a generic map first and then into Config with
// mapstructure, so durations ("5s") and reading directions ("rtl") can be
// written as plain strings. Unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/pkg/autoplay"
	"github.com/aretw0/rotator/pkg/gesture"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Name     string         `mapstructure:"name" yaml:"name"`
	Carousel CarouselConfig `mapstructure:"carousel" yaml:"carousel"`
	Deck     DeckConfig     `mapstructure:"deck" yaml:"deck"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// CarouselConfig holds the controller settings.
type CarouselConfig struct {
	Interval       time.Duration            `mapstructure:"interval" yaml:"interval"`
	SwipeThreshold float64                  `mapstructure:"swipe_threshold" yaml:"swipe_threshold"`
	QuietPeriod    time.Duration            `mapstructure:"quiet_period" yaml:"quiet_period"`
	Reading        gesture.ReadingDirection `mapstructure:"reading_direction" yaml:"reading_direction"`
	StartIndex     int                      `mapstructure:"start_index" yaml:"start_index"`
	Autoplay       bool                     `mapstructure:"autoplay" yaml:"autoplay"`
}

// DeckConfig selects the item source. Path is a YAML deck file, Dir a
// directory of Markdown slides. Both empty means the built-in deck.
type DeckConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	Dir  string `mapstructure:"dir" yaml:"dir"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// RedisConfig configures the change fan-out. Empty Addr disables it.
type RedisConfig struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Channel string `mapstructure:"channel" yaml:"channel"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Name: "testimonials",
		Carousel: CarouselConfig{
			Interval:       autoplay.DefaultInterval,
			SwipeThreshold: gesture.DefaultThreshold,
			QuietPeriod:    gesture.DefaultQuietPeriod,
			Reading:        gesture.RTL,
			Autoplay:       true,
		},
		Server: ServerConfig{Addr: ":8080"},
		Redis:  RedisConfig{Channel: "rotator:changes"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file and decodes it over Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg, err := Decode(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode applies raw values over Default and validates the result.
func Decode(raw map[string]any) (Config, error) {
	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			readingDirectionHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readingDirectionHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(gesture.ReadingDirection(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return gesture.ParseReadingDirection(data.(string))
}

// Validate checks ranges that do not depend on the deck size.
// Every problem is reported, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Carousel.Interval <= 0 {
		errs = append(errs, fmt.Errorf("%w: carousel.interval must be positive, got %s", ErrInvalidConfig, c.Carousel.Interval))
	}
	if c.Carousel.SwipeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: carousel.swipe_threshold must be positive, got %g", ErrInvalidConfig, c.Carousel.SwipeThreshold))
	}
	if c.Carousel.QuietPeriod <= 0 {
		errs = append(errs, fmt.Errorf("%w: carousel.quiet_period must be positive, got %s", ErrInvalidConfig, c.Carousel.QuietPeriod))
	}
	if c.Carousel.StartIndex < 0 {
		errs = append(errs, fmt.Errorf("%w: carousel.start_index must not be negative", ErrInvalidConfig))
	}
	if c.Deck.Path != "" && c.Deck.Dir != "" {
		errs = append(errs, fmt.Errorf("%w: deck.path and deck.dir are mutually exclusive", ErrInvalidConfig))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format))
	}
	return errors.Join(errs...)
}

// ControllerOptions translates the carousel section into controller options.
func (c Config) ControllerOptions() []rotator.Option {
	return []rotator.Option{
		rotator.WithName(c.Name),
		rotator.WithInterval(c.Carousel.Interval),
		rotator.WithSwipeThreshold(c.Carousel.SwipeThreshold),
		rotator.WithQuietPeriod(c.Carousel.QuietPeriod),
		rotator.WithReadingDirection(c.Carousel.Reading),
		rotator.WithStartIndex(c.Carousel.StartIndex),
		rotator.WithAutoplay(c.Carousel.Autoplay),
	}
}
