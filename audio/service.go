package audio

import (
	"fmt"
	"sync"
)

// AudioService owns the audio config of a session and builds ToneEmitters on demand
// The game tears an emitter down and asks for a fresh one after every failure or reset
type AudioService struct {
	mu      sync.Mutex
	config  AudioConfig
	backend Backend
	current *ToneEmitter
	stopped bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{config: *DefaultAudioConfig()}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: *AudioConfig - output settings (default config if absent)
// args[1]: Backend - output override (speaker, or null backend when audio is disabled)
func (s *AudioService) Init(args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(args) > 0 {
		if cfg, ok := args[0].(*AudioConfig); ok && cfg != nil {
			if err := cfg.Validate(); err != nil {
				return err
			}
			s.config = *cfg
		}
	}
	if len(args) > 1 {
		if b, ok := args[1].(Backend); ok && b != nil {
			s.backend = b
		}
	}

	if s.backend == nil {
		if s.config.Enabled {
			s.backend = SpeakerBackend()
		} else {
			s.backend = NullBackend{}
		}
	}
	if _, ok := s.backend.(NullBackend); !ok {
		s.backend = Share(s.backend)
	}
	return nil
}

// Start implements Service
// Opens the output once so a missing device fails the session before the board opens
func (s *AudioService) Start() error {
	te, err := s.NewEmitter()
	if err != nil {
		return err
	}
	te.Teardown()
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	if s.current != nil {
		s.current.Teardown()
		s.current = nil
	}
	if s.backend != nil {
		s.backend.Close()
	}
	return nil
}

// NewEmitter acquires the output and returns a fresh emitter
// The previous emitter, if still open, is torn down first since emitters share one output
func (s *AudioService) NewEmitter() (*ToneEmitter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, ErrServiceStopped
	}
	if s.current != nil {
		s.current.Teardown()
		s.current = nil
	}

	cfg := s.config
	te, err := NewToneEmitter(&cfg, s.backend)
	if err != nil {
		return nil, fmt.Errorf("audio service: %w", err)
	}
	s.current = te
	return te, nil
}

// Config returns a copy of the active config
func (s *AudioService) Config() AudioConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetVolume updates the stored config and the live emitter
func (s *AudioService) SetVolume(vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	s.config.MasterVolume = vol
	if s.current != nil {
		s.current.SetVolume(vol)
	}
}

// SetMuted updates the stored config and the live emitter
func (s *AudioService) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Enabled = !muted
	if s.current != nil {
		s.current.SetMuted(muted)
	}
}

// ActiveVoices reports voices of the live emitter
func (s *AudioService) ActiveVoices() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0
	}
	return s.current.ActiveVoices()
}
