package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const shutdownTimeout = 2 * time.Second

// Service installs the global tracer provider that playback spans are recorded on
// Disabled, it leaves otel's no-op provider in place
type Service struct {
	mu        sync.Mutex
	enabled   bool
	out       io.Writer
	sessionID string
	provider  *sdktrace.TracerProvider
}

// NewService creates a disabled telemetry service
func NewService() *Service {
	return &Service{}
}

// Name implements Service
func (s *Service) Name() string {
	return "telemetry"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - tracing enabled
// args[1]: io.Writer - span destination
// args[2]: string - session id attached to every span
func (s *Service) Init(args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(args) > 0 {
		if enabled, ok := args[0].(bool); ok {
			s.enabled = enabled
		}
	}
	if len(args) > 1 {
		if w, ok := args[1].(io.Writer); ok {
			s.out = w
		}
	}
	if len(args) > 2 {
		if id, ok := args[2].(string); ok {
			s.sessionID = id
		}
	}

	if s.enabled && s.out == nil {
		return fmt.Errorf("telemetry: tracing enabled without an output")
	}
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.provider != nil {
		return nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(s.out))
	if err != nil {
		return fmt.Errorf("telemetry: creating exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", "simon"),
		attribute.String("session.id", s.sessionID),
	)

	// Syncer: spans are few and must survive an abrupt quit
	s.provider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(s.provider)
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.provider.Shutdown(ctx)
	s.provider = nil
	if err != nil {
		return fmt.Errorf("telemetry: shutdown: %w", err)
	}
	return nil
}

// Enabled reports whether spans are exported
func (s *Service) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}
