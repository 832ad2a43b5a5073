package service

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// Hub owns the session's services and drives their lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	args     map[string][]any
	sorted   []string // Topological order, computed on InitAll
	started  []string // Services that completed Start(), for rollback
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
		args:     make(map[string][]any),
	}
}

// Register adds a service with the args its Init will receive
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}

	h.services[name] = svc
	h.args[name] = args
	h.sorted = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet retrieves a service and casts to type T
// Panics if service not found or type mismatch
func MustGet[T any](h *Hub, name string) T {
	h.mu.RLock()
	svc, ok := h.services[name]
	h.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}

	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll resolves dependencies and calls Init on all services
// On failure, calls Stop on already-initialized services in reverse order
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	var initialized []string
	for _, name := range h.sorted {
		if err := h.services[name].Init(h.args[name]...); err != nil {
			for i := len(initialized) - 1; i >= 0; i-- {
				h.services[initialized[i]].Stop()
			}
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		initialized = append(initialized, name)
	}
	return nil
}

// StartAll calls Start on all services in topological order
// On failure, calls Stop on already-started services in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		return fmt.Errorf("services not initialized")
	}

	h.started = nil
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			for i := len(h.started) - 1; i >= 0; i-- {
				h.services[h.started[i]].Stop()
			}
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll calls Stop on all started services in reverse topological order
// Errors are logged so every service gets its Stop call
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			log.Printf("Service %s stop failed: %v", name, err)
		}
	}
	h.started = nil
}

// topologicalSort computes initialization order using Kahn's algorithm
// Ties are broken by name so the order is stable between runs
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int)
	dependents := make(map[string][]string)

	for name := range h.services {
		inDegree[name] = 0
	}

	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		next := dependents[name]
		sort.Strings(next)
		for _, dependent := range next {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("circular dependency detected in services")
	}
	return result, nil
}

// Names returns all registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
