package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits; zero value reads 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add applies delta with a CAS loop and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// MaxStringLen bounds AtomicString values so the status line stays one row
const MaxStringLen = 20

// AtomicString holds a short label; zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncated to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
