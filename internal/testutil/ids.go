package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator produces predictable record ids for tests.
//
// Ids are "<prefix>_<n>" where n counts per prefix from 1, so the third
// product created in a test is always "prod_3" and golden output stays
// byte-identical between runs.
//
// Thread-safety: SequenceGenerator is safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequenceGenerator creates a generator with every counter at zero.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{next: make(map[string]int)}
}

// NewID returns the next id for prefix.
func (g *SequenceGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return fmt.Sprintf("%s_%d", prefix, g.next[prefix])
}

// Reset sets every counter back to zero.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.next)
}
