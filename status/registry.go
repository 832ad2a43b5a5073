package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the central metrics facade
// Components cache pointers at construction and write directly to the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Value returns the formatted value of key from whichever map holds it
func (r *Registry) Value(key string) (string, bool) {
	switch {
	case r.Ints.Has(key):
		return fmt.Sprintf("%d", r.Ints.Get(key).Load()), true
	case r.Floats.Has(key):
		return fmt.Sprintf("%.1f", r.Floats.Get(key).Get()), true
	case r.Strings.Has(key):
		return r.Strings.Get(key).Load(), true
	case r.Bools.Has(key):
		return fmt.Sprintf("%t", r.Bools.Get(key).Load()), true
	}
	return "", false
}

// Line renders the given metrics as "label:value" pairs for a status bar
// labels maps metric keys to display labels; unregistered keys are skipped
func (r *Registry) Line(keys []string, labels map[string]string) string {
	var b strings.Builder
	for _, key := range keys {
		v, ok := r.Value(key)
		if !ok {
			continue
		}
		label := labels[key]
		if label == "" {
			label = key
		}
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		b.WriteString(label)
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}
