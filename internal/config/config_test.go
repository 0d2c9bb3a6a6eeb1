package config

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/gogpu/flatpaint"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg.Preferences(), flatpaint.DefaultPreferences(); got != want {
		t.Errorf("Preferences() = %+v, want %+v", got, want)
	}
	if got, want := cfg.Info(), flatpaint.DefaultInfo(); got != want {
		t.Errorf("Info() = %+v, want %+v", got, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FLATPAINT_PIXEL_SIZE", "12")
	t.Setenv("FLATPAINT_MERGE_PIXELS", "true")
	t.Setenv("FLATPAINT_VECTORIZE", "false")
	t.Setenv("FLATPAINT_COLOR_COUNT", "16")
	t.Setenv("FLATPAINT_LOG_LEVEL", "debug")
	t.Setenv("FLATPAINT_CHARACTER", "11")
	t.Setenv("FLATPAINT_HIDE_VEHICLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	prefs := cfg.Preferences()
	if prefs.PixelSize != 12 || !prefs.MergePixels || prefs.DoVectorizing || prefs.ColorCount != 16 {
		t.Errorf("Preferences() = %+v", prefs)
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", lvl)
	}
	if info := cfg.Info(); info.Character != flatpaint.CharacterHelicopterMan || !info.HideVehicle {
		t.Errorf("Info() = %+v", info)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		prefs bool
	}{
		{"malformed number", "FLATPAINT_PIXEL_SIZE", "big", false},
		{"color count out of range", "FLATPAINT_COLOR_COUNT", "1", true},
		{"negative pixel size", "FLATPAINT_PIXEL_SIZE", "-3", true},
		{"unknown log level", "FLATPAINT_LOG_LEVEL", "loud", false},
		{"unknown character", "FLATPAINT_CHARACTER", "12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("Load() returned nil error")
			}
			if got := errors.Is(err, flatpaint.ErrInvalidPreferences); got != tt.prefs {
				t.Errorf("errors.Is(ErrInvalidPreferences) = %v, want %v (err %v)", got, tt.prefs, err)
			}
		})
	}
}
