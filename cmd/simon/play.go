package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/config"
	"github.com/lixenwraith/simon/core"
	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/service"
	"github.com/lixenwraith/simon/status"
	"github.com/lixenwraith/simon/telemetry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game (default)",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	sessionID := uuid.NewString()
	log.Printf("Session %s starting, config %+v", sessionID, cfg)

	// Trace output shares the debug log; nil leaves tracing off
	var traceOut io.Writer
	if logFile != nil {
		traceOut = logFile
	} else if cfg.Trace {
		fmt.Fprintln(cmd.ErrOrStderr(), "--trace needs --debug, tracing disabled")
	}

	audioSvc := audio.NewService()
	telemetrySvc := telemetry.NewService()

	hub := service.NewHub()
	if err := hub.Register(audioSvc, &cfg.Audio); err != nil {
		return err
	}
	if err := hub.Register(telemetrySvc, cfg.Trace && traceOut != nil, traceOut, sessionID); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		if errors.Is(err, audio.ErrNoAudioDevice) {
			return fmt.Errorf("%w (run with --no-audio to play silently)", err)
		}
		return err
	}
	defer hub.StopAll()

	if config.Watch(v, func(c config.Config) {
		audioSvc.SetVolume(c.Audio.MasterVolume)
		audioSvc.SetMuted(!c.Audio.Enabled)
	}) {
		log.Printf("Watching %s for changes", v.ConfigFileUsed())
	}

	for k, val := range cfg.UI.ColorEnv() {
		os.Setenv(k, val)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	core.RegisterCrashTerminal(screen)

	sess, err := newSession(sessionConfig{
		ID:     sessionID,
		Screen: screen,
		NewEmitter: func() (engine.ToneEmitter, error) {
			te, err := audioSvc.NewEmitter()
			if err != nil {
				return nil, err
			}
			return te, nil
		},
		Voices:   audioSvc.ActiveVoices,
		Seed:     cfg.Game.Seed,
		Registry: status.NewRegistry(),
	})
	if err != nil {
		return err
	}
	defer sess.close()

	err = sess.run(pollEvents(screen))
	log.Printf("Session %s ended: %v", sessionID, err)
	return err
}

// pollEvents forwards terminal events until the screen is finalized
func pollEvents(screen tcell.Screen) <-chan tcell.Event {
	events := make(chan tcell.Event, 256)
	core.Go(func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})
	return events
}
