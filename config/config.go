package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/constant"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Color modes accepted by ui.color
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// EnvPrefix is prepended to every environment override, e.g. SIMON_AUDIO_VOLUME
const EnvPrefix = "SIMON"

// DefaultFileName is the config file looked up when --config is not given
const DefaultFileName = "simon.yaml"

// Config is the resolved session configuration
type Config struct {
	Audio audio.AudioConfig `mapstructure:"audio"`
	Game  GameConfig        `mapstructure:"game"`
	UI    UIConfig          `mapstructure:"ui"`
	Debug bool              `mapstructure:"debug"`
	Trace bool              `mapstructure:"trace"`
}

// GameConfig holds gameplay settings
type GameConfig struct {
	// Seed for the sequence generator, 0 picks one from the clock
	Seed uint64 `mapstructure:"seed"`
}

// UIConfig holds terminal settings
type UIConfig struct {
	Color string `mapstructure:"color"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Audio: *audio.DefaultAudioConfig(),
		UI:    UIConfig{Color: ColorAuto},
	}
}

// SetDefaults registers every key with viper so env overrides resolve on Unmarshal
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.volume", d.Audio.MasterVolume)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer_ms", d.Audio.BufferMs)
	v.SetDefault("game.seed", d.Game.Seed)
	v.SetDefault("ui.color", d.UI.Color)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("trace", d.Trace)
}

// New builds a viper instance with defaults, env binding and the config file if one exists
// An explicit path must exist; the default search locations may be empty
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
	v.SetConfigType("yaml")
	if dir := userConfigDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the current viper state
func Load(v *viper.Viper) (Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects out-of-range values
func (c Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.UI.Color {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		return fmt.Errorf("%w: ui.color %q (want auto, truecolor or 256)", ErrInvalidConfig, c.UI.Color)
	}
	return nil
}

// Watch reloads the config file on change and hands valid results to onChange
// Invalid edits are logged and ignored; the previous config stays in effect
func Watch(v *viper.Viper, onChange func(Config)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := Load(v)
		if err != nil {
			log.Printf("Config reload from %s rejected: %v", e.Name, err)
			return
		}
		log.Printf("Config reloaded from %s", e.Name)
		onChange(cfg)
	})
	v.WatchConfig()
	return true
}

// userConfigDir returns $XDG_CONFIG_HOME/simon or the OS equivalent
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "simon")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "simon")
}

// ColorEnv returns the environment tcell reads to pick a color mode
func (c UIConfig) ColorEnv() map[string]string {
	switch c.Color {
	case ColorTrueColor:
		return map[string]string{"COLORTERM": "truecolor"}
	case Color256:
		return map[string]string{"TCELL_TRUECOLOR": "disable"}
	}
	return nil
}

// Template is written by `simon config init`
func Template() string {
	d := Defaults()
	return fmt.Sprintf(`# simon configuration
audio:
  enabled: %t
  volume: %.2f        # 0.0 - 1.0, applied live on save
  sample_rate: %d
  buffer_ms: %d
game:
  seed: 0             # 0 = random per session
ui:
  color: %s           # auto, truecolor, 256
debug: false          # log to %s
trace: false          # write playback spans to the log
`, d.Audio.Enabled, d.Audio.MasterVolume, d.Audio.SampleRate, d.Audio.BufferMs, d.UI.Color, constant.LogFilePath)
}

// WriteDefault writes Template to path, refusing to overwrite an existing file
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(Template()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DefaultPath returns where `simon config init` writes when no path is given
func DefaultPath() string {
	if dir := userConfigDir(); dir != "" {
		return filepath.Join(dir, DefaultFileName)
	}
	return DefaultFileName
}
