package audio

import (
	"fmt"
	"time"

	"github.com/lixenwraith/simon/constant"
)

// AudioConfig holds output settings shared by every ToneEmitter of a session
type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	MasterVolume float64 `mapstructure:"volume"`
	SampleRate   int     `mapstructure:"sample_rate"`
	BufferMs     int     `mapstructure:"buffer_ms"`
}

// DefaultAudioConfig returns the config used when nothing is set
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constant.DefaultMasterVolume,
		SampleRate:   constant.AudioSampleRate,
		BufferMs:     int(constant.AudioBufferDuration / time.Millisecond),
	}
}

// Validate checks ranges
func (c *AudioConfig) Validate() error {
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("%w: volume %.2f outside [0,1]", ErrInvalidConfig, c.MasterVolume)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.BufferMs <= 0 {
		return fmt.Errorf("%w: buffer %dms", ErrInvalidConfig, c.BufferMs)
	}
	return nil
}

// BufferDuration returns the speaker buffer length
func (c *AudioConfig) BufferDuration() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}
