package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/simon/audio"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v, err := New("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	want := Defaults()
	if cfg != want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
audio:
  volume: 0.25
  enabled: false
game:
  seed: 99
ui:
  color: "256"
debug: true
`)

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	if cfg.Audio.MasterVolume != 0.25 || cfg.Audio.Enabled {
		t.Errorf("Audio = %+v, want volume 0.25 disabled", cfg.Audio)
	}
	if cfg.Audio.SampleRate != audio.DefaultAudioConfig().SampleRate {
		t.Errorf("Unset sample rate = %d, want default", cfg.Audio.SampleRate)
	}
	if cfg.Game.Seed != 99 || cfg.UI.Color != Color256 || !cfg.Debug {
		t.Errorf("Config = %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "audio:\n  volume: 0.25\n")
	t.Setenv("SIMON_AUDIO_VOLUME", "0.6")
	t.Setenv("SIMON_GAME_SEED", "7")

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	if cfg.Audio.MasterVolume != 0.6 {
		t.Errorf("Volume = %v, want env value 0.6", cfg.Audio.MasterVolume)
	}
	if cfg.Game.Seed != 7 {
		t.Errorf("Seed = %d, want env value 7", cfg.Game.Seed)
	}
}

func TestExplicitMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"volume too high", func(c *Config) { c.Audio.MasterVolume = 1.5 }, false},
		{"negative volume", func(c *Config) { c.Audio.MasterVolume = -0.1 }, false},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 100 }, false},
		{"buffer", func(c *Config) { c.Audio.BufferMs = 0 }, false},
		{"color truecolor", func(c *Config) { c.UI.Color = ColorTrueColor }, true},
		{"color unknown", func(c *Config) { c.UI.Color = "16" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "audio:\n  volume: 3\n")
	v, err := New(path)
	require.NoError(t, err)

	_, err = Load(v)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() = %v, want %v", err, ErrInvalidConfig)
	}
}

func TestColorEnv(t *testing.T) {
	if env := (UIConfig{Color: Color256}).ColorEnv(); env["TCELL_TRUECOLOR"] != "disable" {
		t.Errorf("256 env = %v", env)
	}
	if env := (UIConfig{Color: ColorTrueColor}).ColorEnv(); env["COLORTERM"] != "truecolor" {
		t.Errorf("truecolor env = %v", env)
	}
	if env := (UIConfig{Color: ColorAuto}).ColorEnv(); len(env) != 0 {
		t.Errorf("auto env = %v, want none", env)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	require.NoError(t, WriteDefault(path))
	require.Error(t, WriteDefault(path), "second write must not overwrite")

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	if cfg != Defaults() {
		t.Errorf("Template loads as %+v, want defaults", cfg)
	}
}

func TestWatchReloadsVolume(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "audio:\n  volume: 0.5\n")

	v, err := New(path)
	require.NoError(t, err)

	var got atomic.Uint64
	require.True(t, Watch(v, func(cfg Config) {
		got.Store(uint64(math.Round(cfg.Audio.MasterVolume * 100)))
	}))

	// Give the watcher time to register before editing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  volume: 0.2\n"), 0o644))

	require.Eventually(t, func() bool { return got.Load() == 20 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatchWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v, err := New("")
	require.NoError(t, err)
	if Watch(v, func(Config) {}) {
		t.Error("Watch should report false when no config file is in use")
	}
}
