// Package config loads flatpaint settings from FLATPAINT_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/gogpu/flatpaint"
)

// Config holds decomposition preferences and CLI settings.
type Config struct {
	MinColorDifference  float64 `envconfig:"MIN_COLOR_DIFFERENCE" default:"0.05"`
	MinGradientPartSize float64 `envconfig:"MIN_GRADIENT_PART_SIZE" default:"2.5"`
	ColorCount          int     `envconfig:"COLOR_COUNT" default:"256"`
	AdditionalPartSize  float64 `envconfig:"ADDITIONAL_PART_SIZE" default:"0.1"`
	PixelSize           float64 `envconfig:"PIXEL_SIZE" default:"5"`
	MinCurveLength      float64 `envconfig:"MIN_CURVE_LENGTH" default:"10"`
	MergePixels         bool    `envconfig:"MERGE_PIXELS" default:"false"`
	DoVectorizing       bool    `envconfig:"VECTORIZE" default:"true"`
	SmoothScaling       bool    `envconfig:"SMOOTH_SCALING" default:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Level settings written to the info record.
	Character      int  `envconfig:"CHARACTER" default:"3"`
	ForceCharacter bool `envconfig:"FORCE_CHARACTER" default:"false"`
	HideVehicle    bool `envconfig:"HIDE_VEHICLE" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("flatpaint", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if err := cfg.Preferences().Validate(); err != nil {
		return nil, err
	}
	if cfg.Character < int(flatpaint.CharacterWheelchairGuy) || cfg.Character > int(flatpaint.CharacterHelicopterMan) {
		return nil, fmt.Errorf("config: unknown character %d", cfg.Character)
	}
	return &cfg, nil
}

// Info returns the level settings, starting from flatpaint.DefaultInfo.
func (c *Config) Info() flatpaint.Info {
	info := flatpaint.DefaultInfo()
	info.Character = flatpaint.Character(c.Character)
	info.ForceCharacter = c.ForceCharacter
	info.HideVehicle = c.HideVehicle
	return info
}

// Preferences returns the decomposition preferences.
func (c *Config) Preferences() flatpaint.Preferences {
	return flatpaint.NewPreferences(
		flatpaint.WithMinColorDifference(c.MinColorDifference),
		flatpaint.WithMinGradientPartSize(c.MinGradientPartSize),
		flatpaint.WithColorCount(c.ColorCount),
		flatpaint.WithAdditionalPartSize(c.AdditionalPartSize),
		flatpaint.WithPixelSize(c.PixelSize),
		flatpaint.WithMinCurveLength(c.MinCurveLength),
		flatpaint.WithMergePixels(c.MergePixels),
		flatpaint.WithVectorizing(c.DoVectorizing),
		flatpaint.WithSmoothScaling(c.SmoothScaling),
	)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
}
