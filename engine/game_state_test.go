package engine

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to GamePhase
		want     bool
	}{
		{PhaseIdle, PhaseAwaitingPlayback, true},
		{PhaseIdle, PhasePlaying, false},
		{PhaseIdle, PhasePlayerTurn, false},
		{PhaseAwaitingPlayback, PhasePlaying, true},
		{PhaseAwaitingPlayback, PhasePlayerTurn, false},
		{PhasePlaying, PhasePlayerTurn, true},
		{PhasePlaying, PhaseAwaitingPlayback, true},
		{PhasePlaying, PhaseFailure, false},
		{PhasePlayerTurn, PhaseAwaitingPlayback, true},
		{PhasePlayerTurn, PhaseFailure, true},
		{PhasePlayerTurn, PhaseIdle, false},
		{PhaseFailure, PhaseIdle, true},
		{PhaseFailure, PhaseAwaitingPlayback, true},
		{PhaseFailure, PhasePlayerTurn, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPaceProgression(t *testing.T) {
	want := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.2, 0.2}
	p := StartPace
	for i, w := range want {
		if p.Seconds() != w {
			t.Errorf("Pace after %d playbacks = %v, want %v", i, p.Seconds(), w)
		}
		p = p.Next()
	}
}

func TestPaceHold(t *testing.T) {
	tests := []struct {
		pace Pace
		want time.Duration
	}{
		{StartPace, time.Second},
		{Pace(9), 900 * time.Millisecond},
		{Pace(2), 200 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := tt.pace.Hold(); got != tt.want {
			t.Errorf("Pace(%d).Hold() = %v, want %v", int(tt.pace), got, tt.want)
		}
	}
}

func TestTokenStale(t *testing.T) {
	tok := PlaybackToken{Round: 3, Epoch: 2}
	tests := []struct {
		name   string
		live   PlaybackToken
		length int
		want   bool
	}{
		{"unchanged", PlaybackToken{3, 2}, 3, false},
		{"epoch changed", PlaybackToken{3, 3}, 3, true},
		{"round changed", PlaybackToken{4, 2}, 3, true},
		{"round below length", PlaybackToken{3, 2}, 4, true},
	}
	for _, tt := range tests {
		if got := tok.Stale(tt.live, tt.length); got != tt.want {
			t.Errorf("%s: Stale = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormatRound(t *testing.T) {
	tests := map[int]string{0: "00", 1: "01", 9: "09", 10: "10", 123: "123"}
	for round, want := range tests {
		if got := FormatRound(round); got != want {
			t.Errorf("FormatRound(%d) = %q, want %q", round, got, want)
		}
	}
}

func TestGamePhaseString(t *testing.T) {
	if PhasePlayerTurn.String() != "PlayerTurn" {
		t.Errorf("PhasePlayerTurn.String() = %q", PhasePlayerTurn.String())
	}
	if GamePhase(42).String() != "GamePhase(42)" {
		t.Errorf("Unknown phase String() = %q", GamePhase(42).String())
	}
}
