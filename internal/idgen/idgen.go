// Package idgen supplies report object identifiers. Analysis outputs are
// otherwise deterministic, so id generation is the one piece of entropy and
// stays behind an interface callers can swap for a fixed sequence in tests.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique ids for analysis report objects
type Generator interface {
	NewID(prefix string) string
}

// UUID generates ids backed by random UUIDs
type UUID struct{}

// NewID returns "<prefix>-<uuid>"
func (UUID) NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// Sequence generates monotonically increasing ids, for deterministic output
type Sequence struct {
	counter atomic.Uint64
}

// NewID returns "<prefix>-<n>" with n increasing per call
func (s *Sequence) NewID(prefix string) string {
	n := s.counter.Add(1)
	return fmt.Sprintf("%s-%d", prefix, n)
}
