package audio

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}
	if cfg.BufferDuration() != 50*time.Millisecond {
		t.Errorf("Expected 50ms buffer, got %v", cfg.BufferDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestAudioConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AudioConfig)
	}{
		{"negative volume", func(c *AudioConfig) { c.MasterVolume = -0.1 }},
		{"volume above one", func(c *AudioConfig) { c.MasterVolume = 1.5 }},
		{"tiny sample rate", func(c *AudioConfig) { c.SampleRate = 100 }},
		{"zero buffer", func(c *AudioConfig) { c.BufferMs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAudioConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
