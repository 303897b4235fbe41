package estimate

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"
)

// Memo caches the most recent result of a pure computation, keyed by the
// structural hash of its input. It is safe for concurrent use.
type Memo[V any] struct {
	mu     sync.Mutex
	key    uint64
	val    V
	valid  bool
	hits   int
	misses int
}

// Get returns the cached value when input hashes to the last key, otherwise
// it runs compute and stores the result. Inputs that cannot be hashed are
// computed every time and never cached. Failed computations are not cached.
func (m *Memo[V]) Get(input any, compute func() (V, error)) (V, error) {
	key, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		return compute()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.key == key {
		m.hits++
		return m.val, nil
	}
	m.misses++
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	m.key, m.val, m.valid = key, v, true
	return v, nil
}

// Changed reports whether input differs from the last cached input.
func (m *Memo[V]) Changed(input any) bool {
	key, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.valid || m.key != key
}

// Reset drops the cached entry.
func (m *Memo[V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero V
	m.val, m.valid = zero, false
}

// Stats returns hit and miss counters.
func (m *Memo[V]) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
