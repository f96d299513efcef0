// Package resultcache provides a pure memoization layer keyed on input tuples.
//
// A Store has no eviction policy; it is bounded by the number of distinct
// calls in a session and may be reset explicitly by a caller for testing. The
// only observable effect of the store is reference identity of repeated
// results, never value change.
package resultcache

import (
	"strconv"
	"strings"
	"sync"
)

// Store is an injectable key-value store used to avoid recomputation for
// repeated identical calls. The zero value is not usable; construct with New.
type Store struct {
	mu      sync.RWMutex
	entries map[string]interface{}
	hits    uint64
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]interface{})}
}

// Get returns the cached value for key, if present. Hits are counted so that
// memoization is observable without relying on timing.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if ok {
		s.hits++
	}
	return value, ok
}

// Put stores a value under key, replacing any previous entry.
func (s *Store) Put(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Reset clears all entries and the hit counter.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]interface{})
	s.hits = 0
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Hits returns how many Get calls found an existing entry.
func (s *Store) Hits() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits
}

// Key builds a deterministic serialization of an input tuple. Floats are
// rendered with strconv.FormatFloat in 'g' format with full precision, and
// slices carry a length prefix, so structurally different tuples can never
// produce the same key.
type Key struct {
	parts []string
}

// NewKey starts a key for the named operation.
func NewKey(operation string) *Key {
	return &Key{parts: []string{operation}}
}

// Float appends a float64 component.
func (k *Key) Float(v float64) *Key {
	k.parts = append(k.parts, strconv.FormatFloat(v, 'g', -1, 64))
	return k
}

// String appends a string component.
func (k *Key) String(s string) *Key {
	k.parts = append(k.parts, s)
	return k
}

// Floats appends a float64 slice component with a length prefix.
func (k *Key) Floats(vs []float64) *Key {
	k.parts = append(k.parts, "#"+strconv.Itoa(len(vs)))
	for _, v := range vs {
		k.parts = append(k.parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return k
}

// Build renders the accumulated components into the final key.
func (k *Key) Build() string {
	return strings.Join(k.parts, "|")
}
