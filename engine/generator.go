package engine

import (
	"time"

	"github.com/lixenwraith/simon/core"
)

// SequenceGenerator draws signals uniformly from the alphabet
// xorshift64 source; high bits are used, the alphabet size is a power of two so modulo carries no bias
type SequenceGenerator struct {
	state uint64
}

// NewSequenceGenerator seeds the source; seed 0 derives one from the clock
func NewSequenceGenerator(seed uint64) *SequenceGenerator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if seed == 0 {
		seed = 1
	}
	return &SequenceGenerator{state: seed}
}

// Next returns the next signal
func (g *SequenceGenerator) Next() core.Signal {
	return core.Signal((g.next() >> 32) % uint64(core.SignalCount))
}

func (g *SequenceGenerator) next() uint64 {
	x := g.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.state = x
	return x
}
