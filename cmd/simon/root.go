package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/simon/config"
	"github.com/lixenwraith/simon/constant"
)

var (
	cfgFile string
	noAudio bool

	v   *viper.Viper
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "simon",
	Short: "Repeat the growing sequence of colors and tones",
	Long: `simon plays an ever longer sequence of colored, audible signals.
Reproduce it with the mouse or the keys r g b y (1-4) to advance a round.
Each round plays back a little faster; one wrong signal ends the game.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPlay,
}

// flagKeys binds persistent flags to config keys
var flagKeys = map[string]string{
	"debug":  "debug",
	"trace":  "trace",
	"volume": "audio.volume",
	"seed":   "game.seed",
	"color":  "ui.color",
}

func init() {
	d := config.Defaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+" or ./"+config.DefaultFileName+")")
	flags.BoolVar(&noAudio, "no-audio", false, "play without sound")
	flags.Bool("debug", d.Debug, "write logs to "+constant.LogFilePath)
	flags.Bool("trace", d.Trace, "write playback spans to the debug log (needs --debug)")
	flags.Float64("volume", d.Audio.MasterVolume, "master volume, 0.0-1.0")
	flags.Uint64("seed", d.Game.Seed, "sequence seed, 0 picks a random one")
	flags.String("color", d.UI.Color, "color mode: auto, truecolor, 256")
}

// loadConfig resolves defaults < config file < env < flags into cfg
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	v, err = config.New(cfgFile)
	if err != nil {
		return err
	}

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	if noAudio {
		v.Set("audio.enabled", false)
	}

	cfg, err = config.Load(v)
	return err
}
