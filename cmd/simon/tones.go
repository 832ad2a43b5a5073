package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/constant"
	"github.com/lixenwraith/simon/core"
)

const (
	toneCheckHold = 400 * time.Millisecond
	toneCheckGap  = 150 * time.Millisecond
)

var tonesList bool

var tonesCmd = &cobra.Command{
	Use:   "tones",
	Short: "Play each signal tone and the failure tone once",
	Long:  `Audio check: plays the four signal tones in order followed by the failure tone, using the same output as a game.`,
	Args:  cobra.NoArgs,
	RunE:  runTones,
}

func init() {
	tonesCmd.Flags().BoolVar(&tonesList, "list", false, "print the frequency table without playing")
	rootCmd.AddCommand(tonesCmd)
}

type toneEntry struct {
	name string
	freq float64
}

func toneTable() []toneEntry {
	entries := make([]toneEntry, 0, len(core.Signals)+1)
	for _, s := range core.Signals {
		entries = append(entries, toneEntry{name: s.Name(), freq: s.Frequency()})
	}
	return append(entries, toneEntry{name: "failure", freq: constant.FrequencyFailure})
}

func printToneTable(w io.Writer) {
	for _, e := range toneTable() {
		fmt.Fprintf(w, "%-8s %8.3f Hz\n", e.name, e.freq)
	}
}

func runTones(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if tonesList {
		printToneTable(out)
		return nil
	}

	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	svc := audio.NewService()
	if err := svc.Init(&cfg.Audio); err != nil {
		return err
	}
	defer svc.Stop()

	te, err := svc.NewEmitter()
	if err != nil {
		return err
	}
	playToneTable(out, te, time.Sleep)
	return nil
}

// playToneTable sounds every entry in order; sleep is injected for tests
func playToneTable(w io.Writer, te interface{ Play(float64) audio.StopFunc }, sleep func(time.Duration)) {
	for _, e := range toneTable() {
		fmt.Fprintf(w, "%-8s %8.3f Hz\n", e.name, e.freq)
		stop := te.Play(e.freq)
		sleep(toneCheckHold)
		stop()
		sleep(toneCheckGap + constant.ToneFadeDuration)
	}
}
